package rangemap

import (
	"math"

	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/utils"
)

// TreeRange anchors a half-open span [Start, End) of the flat offset space
// onto concrete text nodes. Anchor offsets are rune offsets within the
// anchor's own text.
type TreeRange struct {
	StartNode   *doctree.Node
	StartOffset int
	EndNode     *doctree.Node
	EndOffset   int
}

// RangeFromOffsets maps flat offsets over node's collected text onto tree
// anchors. It returns nil when start > end, offsets fall outside the
// collected text, or the node holds no collectible text at all. When an
// offset lands exactly on a node boundary the later node is chosen, which
// keeps insertion points stable across splits.
func RangeFromOffsets(node *doctree.Node, start int, end int) *TreeRange {
	if node == nil || start < 0 || start > end {
		return nil
	}
	total := doctree.CollectLen(node)
	if total == 0 || end > total {
		return nil
	}
	startNode, startOffset := resolveOffset(node, start)
	endNode, endOffset := resolveOffset(node, end)
	if startNode == nil || endNode == nil {
		return nil
	}
	return &TreeRange{
		StartNode:   startNode,
		StartOffset: startOffset,
		EndNode:     endNode,
		EndOffset:   endOffset,
	}
}

// resolveOffset walks the filtered text-node sequence until the running total
// first exceeds the target, anchoring boundary hits in the later node. An
// offset equal to the total length anchors at the end of the last node.
func resolveOffset(node *doctree.Node, target int) (*doctree.Node, int) {
	running := 0
	var last *doctree.Node
	for textNode := range doctree.TextNodes(node) {
		length := textNode.TextLen()
		if target < running+length {
			return textNode, target - running
		}
		running += length
		last = textNode
	}
	if last != nil && target == running {
		return last, last.TextLen()
	}
	return nil, 0
}

// Text collects the exact substring the range spans, walking the same
// filtered sequence the anchors were resolved against. A malformed range
// collects to the empty string.
func (r *TreeRange) Text() string {
	if r == nil || r.StartNode == nil || r.EndNode == nil {
		return ""
	}
	var out string
	started := false
	root := topmost(r.StartNode)
	for textNode := range doctree.TextNodes(root) {
		if !started {
			if textNode != r.StartNode {
				continue
			}
			started = true
			if textNode == r.EndNode {
				return utils.RuneSlice(textNode.Text, r.StartOffset, r.EndOffset)
			}
			out += utils.RuneSlice(textNode.Text, r.StartOffset, textNode.TextLen())
			continue
		}
		if textNode == r.EndNode {
			out += utils.RuneSlice(textNode.Text, 0, r.EndOffset)
			return out
		}
		out += textNode.Text
	}
	if !started {
		return ""
	}
	return out
}

func topmost(n *doctree.Node) *doctree.Node {
	cur := n
	for cur.Parent() != nil {
		cur = cur.Parent()
	}
	return cur
}

// OffsetAtPoint maps a pointer location to the nearest flat offset within
// node's collected text. The host caret query is preferred; when it answers
// with a position outside node, the offset degrades to a proportional
// estimate over node's bounding box. The result is always clamped to
// [0, CollectLen(node)].
func OffsetAtPoint(layout doctree.Layout, node *doctree.Node, x float64, y float64) int {
	total := doctree.CollectLen(node)
	if layout == nil || node == nil || total == 0 {
		return 0
	}
	if caretNode, caretOffset, ok := layout.CaretAtPoint(x, y); ok && caretNode.Attached(node) {
		return utils.ClampInt(FlatOffset(node, caretNode, caretOffset), 0, total)
	}
	box, ok := layout.BoundingBox(node)
	if !ok || box.W <= 0 {
		return 0
	}
	ratio := (x - box.X) / box.W
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return utils.ClampInt(int(math.Round(ratio*float64(total))), 0, total)
}

// FlatOffset converts a (text node, intra-node offset) anchor back to the
// flat offset space of container.
func FlatOffset(container *doctree.Node, anchor *doctree.Node, offset int) int {
	running := 0
	for textNode := range doctree.TextNodes(container) {
		if textNode == anchor {
			return running + offset
		}
		running += textNode.TextLen()
	}
	return running
}
