package doctree

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// TextNodes yields the text-bearing leaves under n in document order,
// skipping decoration subtrees entirely. The sequence is lazy and restartable;
// no iterator state survives between calls.
func TextNodes(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walkText(n, yield)
	}
}

func walkText(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if n.Kind == TextNode {
		return yield(n)
	}
	if n.Role.IsDecoration() {
		return true
	}
	for _, child := range n.children {
		if !walkText(child, yield) {
			return false
		}
	}
	return true
}

// Collect flattens the decoration-excluded text content of n. Missing or
// detached nodes collect to the empty string rather than failing.
func Collect(n *Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for textNode := range TextNodes(n) {
		sb.WriteString(textNode.Text)
	}
	return sb.String()
}

// CollectLen returns the rune length of Collect(n) without building the
// string.
func CollectLen(n *Node) int {
	total := 0
	for textNode := range TextNodes(n) {
		total += utf8.RuneCountInString(textNode.Text)
	}
	return total
}
