package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraph(texts ...string) *Node {
	p := NewElement("p")
	for _, text := range texts {
		p.AppendChild(NewText(text))
	}
	return p
}

func TestAppendAndDetach(t *testing.T) {
	p := paragraph("one", "two")
	require.Len(t, p.Children(), 2)

	first := p.FirstChild()
	first.Detach()
	assert.Len(t, p.Children(), 1)
	assert.Nil(t, first.Parent())
	assert.Equal(t, "two", p.FirstChild().Text)

	// detaching again is a no-op
	first.Detach()
	assert.Len(t, p.Children(), 1)
}

func TestInsertBefore(t *testing.T) {
	p := paragraph("b")
	a := NewText("a")
	p.InsertBefore(a, p.FirstChild())
	assert.Equal(t, "a", p.Children()[0].Text)
	assert.Equal(t, "b", p.Children()[1].Text)

	c := NewText("c")
	p.InsertBefore(c, nil)
	assert.Equal(t, "c", p.Children()[2].Text)
}

func TestReplaceWith(t *testing.T) {
	p := paragraph("a", "b", "c")
	middle := p.Children()[1]
	middle.ReplaceWith(NewText("x"), NewText("y"))

	var texts []string
	for _, child := range p.Children() {
		texts = append(texts, child.Text)
	}
	assert.Equal(t, []string{"a", "x", "y", "c"}, texts)

	// empty replacement removes the node
	p.Children()[1].ReplaceWith()
	assert.Len(t, p.Children(), 3)
}

func TestSplitText(t *testing.T) {
	p := paragraph("hello world")
	text := p.FirstChild()

	tail := text.SplitText(5)
	require.NotNil(t, tail)
	assert.Equal(t, "hello", text.Text)
	assert.Equal(t, " world", tail.Text)
	assert.Equal(t, p, tail.Parent())
	assert.Len(t, p.Children(), 2)

	// boundary offsets do not split
	assert.Nil(t, text.SplitText(0))
	assert.Nil(t, text.SplitText(5))
	assert.Len(t, p.Children(), 2)
}

func TestSplitTextMultibyte(t *testing.T) {
	p := paragraph("héllo")
	tail := p.FirstChild().SplitText(2)
	require.NotNil(t, tail)
	assert.Equal(t, "hé", p.FirstChild().Text)
	assert.Equal(t, "llo", tail.Text)
}

func TestNormalizeMergesAdjacentText(t *testing.T) {
	p := paragraph("The ", "cat", " sat")
	p.AppendChild(NewText(""))
	p.Normalize()

	require.Len(t, p.Children(), 1)
	assert.Equal(t, "The cat sat", p.FirstChild().Text)
}

func TestNormalizeStopsAtElements(t *testing.T) {
	p := paragraph("before ")
	mark := NewElement("mark")
	mark.Annotation = &AnnotationAttrs{Id: "a1"}
	mark.AppendChild(NewText("cat"))
	p.AppendChild(mark)
	p.AppendChild(NewText(" after"))
	p.Normalize()

	require.Len(t, p.Children(), 3)
	assert.Equal(t, "before ", p.Children()[0].Text)
	assert.Equal(t, " after", p.Children()[2].Text)
}

func TestAttached(t *testing.T) {
	root := NewElement("body")
	p := paragraph("text")
	root.AppendChild(p)

	assert.True(t, p.FirstChild().Attached(root))

	p.Detach()
	assert.False(t, p.FirstChild().Attached(root))
	assert.True(t, p.FirstChild().Attached(p))
}

func TestFindAnnotation(t *testing.T) {
	root := NewElement("body")
	p := paragraph("before ")
	mark := NewElement("mark")
	mark.Annotation = &AnnotationAttrs{Id: "a1"}
	mark.AppendChild(NewText("cat"))
	p.AppendChild(mark)
	root.AppendChild(p)

	assert.Equal(t, mark, FindAnnotation(root, "a1"))
	assert.Nil(t, FindAnnotation(root, "missing"))
	assert.Nil(t, FindAnnotation(nil, "a1"))
}

func TestFindById(t *testing.T) {
	root := NewElement("body")
	p := paragraph("text")
	p.Id = "intro"
	root.AppendChild(p)

	assert.Equal(t, p, FindById(root, "intro"))
	assert.Nil(t, FindById(root, ""))
	assert.Nil(t, FindById(root, "other"))
}

func TestContainsAnnotation(t *testing.T) {
	p := paragraph("before ")
	mark := NewElement("mark")
	mark.Annotation = &AnnotationAttrs{Id: "a1"}
	inner := NewText("cat")
	mark.AppendChild(inner)
	p.AppendChild(mark)

	assert.True(t, ContainsAnnotation(inner))
	assert.True(t, ContainsAnnotation(p))
	assert.False(t, ContainsAnnotation(paragraph("plain")))
}
