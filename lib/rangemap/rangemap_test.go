package rangemap

import (
	"testing"

	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmented() *doctree.Node {
	p := doctree.NewElement("p")
	p.AppendChild(doctree.NewText("The "))
	p.AppendChild(doctree.NewText("cat "))
	p.AppendChild(doctree.NewText("sat on the mat"))
	return p
}

func TestRangeFromOffsetsRoundTrip(t *testing.T) {
	p := fragmented()
	full := doctree.Collect(p)
	total := utils.RuneCount(full)

	for start := 0; start < total; start++ {
		for end := start + 1; end <= total; end++ {
			r := RangeFromOffsets(p, start, end)
			require.NotNil(t, r, "expected range for [%d, %d)", start, end)
			assert.Equal(t, utils.RuneSlice(full, start, end), r.Text(),
				"substring mismatch for [%d, %d)", start, end)
		}
	}
}

func TestRangeFromOffsetsTieBreak(t *testing.T) {
	p := fragmented()

	// offset 4 sits on the boundary between "The " and "cat "; the later
	// node wins
	r := RangeFromOffsets(p, 4, 7)
	require.NotNil(t, r)
	assert.Equal(t, "cat ", r.StartNode.Text)
	assert.Equal(t, 0, r.StartOffset)
	assert.Equal(t, "cat", r.Text())
}

func TestRangeFromOffsetsEndOfText(t *testing.T) {
	p := fragmented()
	total := doctree.CollectLen(p)

	r := RangeFromOffsets(p, total-3, total)
	require.NotNil(t, r)
	assert.Equal(t, "mat", r.Text())
	assert.Equal(t, r.EndNode.TextLen(), r.EndOffset)
}

func TestRangeFromOffsetsInvalid(t *testing.T) {
	p := fragmented()
	total := doctree.CollectLen(p)

	assert.Nil(t, RangeFromOffsets(p, 5, 4))
	assert.Nil(t, RangeFromOffsets(p, -1, 4))
	assert.Nil(t, RangeFromOffsets(p, 0, total+1))
	assert.Nil(t, RangeFromOffsets(nil, 0, 1))
	assert.Nil(t, RangeFromOffsets(doctree.NewElement("p"), 0, 1))
}

func TestRangeSkipsDecoration(t *testing.T) {
	p := doctree.NewElement("p")
	p.AppendChild(doctree.NewText("The "))
	mark := doctree.NewElement("mark")
	mark.Annotation = &doctree.AnnotationAttrs{Id: "a1"}
	mark.AppendChild(doctree.NewText("cat"))
	glyph := doctree.NewElement("span")
	glyph.Role = doctree.RoleGlyph
	glyph.AppendChild(doctree.NewText("✎"))
	mark.AppendChild(glyph)
	p.AppendChild(mark)
	p.AppendChild(doctree.NewText(" sat"))

	r := RangeFromOffsets(p, 4, 11)
	require.NotNil(t, r)
	assert.Equal(t, "cat sat", r.Text())
}

func TestOffsetAtPointNative(t *testing.T) {
	root := doctree.NewElement("body")
	p := doctree.NewElement("p")
	p.AppendChild(doctree.NewText("The cat sat"))
	root.AppendChild(p)
	layout := doctree.NewMonoLayout(root)

	assert.Equal(t, 4, OffsetAtPoint(layout, p, 4, 0))
	assert.Equal(t, 0, OffsetAtPoint(layout, p, -3, 0))
	assert.Equal(t, 11, OffsetAtPoint(layout, p, 99, 0))
}

func TestOffsetAtPointProportionalFallback(t *testing.T) {
	root := doctree.NewElement("body")
	first := doctree.NewElement("p")
	first.AppendChild(doctree.NewText("0123456789"))
	second := doctree.NewElement("p")
	second.AppendChild(doctree.NewText("other line"))
	root.AppendChild(first)
	root.AppendChild(second)
	layout := doctree.NewMonoLayout(root)

	// caret resolves into the second line, outside the queried node, so the
	// horizontal proportion over the first line's box decides
	got := OffsetAtPoint(layout, first, 5, 1)
	assert.Equal(t, 5, got)

	got = OffsetAtPoint(layout, first, 999, 1)
	assert.Equal(t, 10, got)
}

func TestOffsetAtPointDegenerate(t *testing.T) {
	assert.Equal(t, 0, OffsetAtPoint(nil, nil, 0, 0))
	assert.Equal(t, 0, OffsetAtPoint(doctree.NewMonoLayout(nil), doctree.NewElement("p"), 1, 1))
}

func TestFlatOffset(t *testing.T) {
	p := fragmented()
	third := p.Children()[2]
	assert.Equal(t, 8+4, FlatOffset(p, third, 4))
}
