package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonoLayoutCaretAtPoint(t *testing.T) {
	root := NewElement("body")
	p := NewElement("p")
	p.AppendChild(NewText("The cat"))
	root.AppendChild(p)

	layout := NewMonoLayout(root)

	node, offset, ok := layout.CaretAtPoint(4, 0)
	require.True(t, ok)
	assert.Equal(t, p.FirstChild(), node)
	assert.Equal(t, 4, offset)

	// beyond line end clamps to the last text node's end
	node, offset, ok = layout.CaretAtPoint(50, 0)
	require.True(t, ok)
	assert.Equal(t, p.FirstChild(), node)
	assert.Equal(t, 7, offset)

	// outside any line
	_, _, ok = layout.CaretAtPoint(0, 5)
	assert.False(t, ok)
}

func TestMonoLayoutSecondLine(t *testing.T) {
	root := NewElement("body")
	first := NewElement("p")
	first.AppendChild(NewText("first"))
	second := NewElement("p")
	second.AppendChild(NewText("second"))
	root.AppendChild(first)
	root.AppendChild(second)

	layout := NewMonoLayout(root)
	node, offset, ok := layout.CaretAtPoint(2, 1)
	require.True(t, ok)
	assert.Equal(t, second.FirstChild(), node)
	assert.Equal(t, 2, offset)
}

func TestMonoLayoutBoundingBox(t *testing.T) {
	root := NewElement("body")
	p := NewElement("p")
	p.AppendChild(NewText("The "))
	mark := NewElement("mark")
	mark.Annotation = &AnnotationAttrs{Id: "a1"}
	mark.AppendChild(NewText("cat"))
	p.AppendChild(mark)
	root.AppendChild(p)

	layout := NewMonoLayout(root)

	box, ok := layout.BoundingBox(mark)
	require.True(t, ok)
	assert.Equal(t, 4.0, box.X)
	assert.Equal(t, 3.0, box.W)
	assert.Equal(t, 0.0, box.Y)

	_, ok = layout.BoundingBox(NewElement("p"))
	assert.False(t, ok)
}
