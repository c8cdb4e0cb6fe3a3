package doctree

import "math"

// Rect is a node bounding box in layout coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Layout is the host platform's geometry surface: a caret-from-point query
// plus node bounding boxes. Implementations answer synchronously; a false
// second return means the question had no answer, never an error.
type Layout interface {
	CaretAtPoint(x float64, y float64) (*Node, int, bool)
	BoundingBox(n *Node) (Rect, bool)
}

// MonoLayout is a fixed-grid reference layout: each direct child of Root is
// one line, every rune occupies CellWidth x LineHeight. It backs headless
// runs and tests; real hosts supply their own Layout.
type MonoLayout struct {
	Root       *Node
	CellWidth  float64
	LineHeight float64
}

func NewMonoLayout(root *Node) *MonoLayout {
	return &MonoLayout{Root: root, CellWidth: 1, LineHeight: 1}
}

func (l *MonoLayout) CaretAtPoint(x float64, y float64) (*Node, int, bool) {
	if l.Root == nil {
		return nil, 0, false
	}
	line := int(math.Floor(y / l.LineHeight))
	if line < 0 || line >= len(l.Root.children) {
		return nil, 0, false
	}
	block := l.Root.children[line]
	col := int(math.Round(x / l.CellWidth))
	if col < 0 {
		col = 0
	}
	running := 0
	var last *Node
	for textNode := range TextNodes(block) {
		length := textNode.TextLen()
		if col < running+length {
			return textNode, col - running, true
		}
		running += length
		last = textNode
	}
	if last == nil {
		return nil, 0, false
	}
	return last, last.TextLen(), true
}

func (l *MonoLayout) BoundingBox(n *Node) (Rect, bool) {
	if l.Root == nil || n == nil {
		return Rect{}, false
	}
	for line, block := range l.Root.children {
		col := 0
		found := false
		for textNode := range TextNodes(block) {
			if textNode == n || textNode.Attached(n) {
				found = true
				break
			}
			col += textNode.TextLen()
		}
		if !found && block != n {
			continue
		}
		width := float64(CollectLen(n)) * l.CellWidth
		if block == n {
			col = 0
			width = float64(CollectLen(block)) * l.CellWidth
		}
		return Rect{
			X: float64(col) * l.CellWidth,
			Y: float64(line) * l.LineHeight,
			W: width,
			H: l.LineHeight,
		}, true
	}
	return Rect{}, false
}
