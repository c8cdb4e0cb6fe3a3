package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func annotated(text string) *Node {
	mark := NewElement("mark")
	mark.Annotation = &AnnotationAttrs{Id: "a1"}
	mark.AppendChild(NewText(text))

	glyph := NewElement("span")
	glyph.Role = RoleGlyph
	glyph.AppendChild(NewText("✎"))
	mark.AppendChild(glyph)

	tooltip := NewElement("div")
	tooltip.Role = RoleTooltip
	tooltip.AppendChild(NewText("Method"))
	mark.AppendChild(tooltip)

	return mark
}

func TestCollectSkipsDecoration(t *testing.T) {
	mark := annotated("cat")
	assert.Equal(t, "cat", Collect(mark))
	assert.Equal(t, 3, CollectLen(mark))
}

func TestCollectNested(t *testing.T) {
	p := NewElement("p")
	p.AppendChild(NewText("The "))
	p.AppendChild(annotated("cat"))
	p.AppendChild(NewText(" sat"))

	assert.Equal(t, "The cat sat", Collect(p))
}

func TestCollectNilAndEmpty(t *testing.T) {
	assert.Equal(t, "", Collect(nil))
	assert.Equal(t, "", Collect(NewElement("p")))
	assert.Equal(t, 0, CollectLen(nil))
}

func TestCollectDecorationRoot(t *testing.T) {
	glyph := NewElement("span")
	glyph.Role = RoleGlyph
	glyph.AppendChild(NewText("✎"))
	if got := Collect(glyph); got != "" {
		t.Error("Expected empty collect for decoration root, got ", got)
	}
}

func TestTextNodesRestartable(t *testing.T) {
	p := NewElement("p")
	p.AppendChild(NewText("a"))
	p.AppendChild(NewText("b"))

	for run := 0; run < 2; run++ {
		var seen []string
		for textNode := range TextNodes(p) {
			seen = append(seen, textNode.Text)
		}
		assert.Equal(t, []string{"a", "b"}, seen)
	}
}

func TestTextNodesEarlyStop(t *testing.T) {
	p := NewElement("p")
	p.AppendChild(NewText("a"))
	p.AppendChild(NewText("b"))

	count := 0
	for range TextNodes(p) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestCollectLenMultibyte(t *testing.T) {
	p := NewElement("p")
	p.AppendChild(NewText("héllo"))
	assert.Equal(t, 5, CollectLen(p))
}
