package doctree

import (
	"slices"
	"unicode/utf8"
)

type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// Role classifies a node for traversal filtering. Decoration roles form a
// closed set; membership is checked structurally, never by tag or class name.
type Role int

const (
	RolePlain Role = iota
	RoleGlyph
	RoleMenu
	RoleTooltip
	RoleTypeIndicator
)

func (r Role) IsDecoration() bool {
	switch r {
	case RoleGlyph, RoleMenu, RoleTooltip, RoleTypeIndicator:
		return true
	}
	return false
}

// AnnotationAttrs marks an element node as an annotation container. The
// source offsets are recorded at creation time only; offsets are always
// recomputed live, so they are never authoritative after an edit.
type AnnotationAttrs struct {
	Id            string
	PropertyId    string
	PropertyLabel string
	Color         string
	SourceStart   int
	SourceEnd     int
}

type Node struct {
	Kind       NodeKind
	Tag        string
	Id         string
	Text       string
	Role       Role
	Annotation *AnnotationAttrs

	parent   *Node
	children []*Node
}

func NewElement(tag string) *Node {
	return &Node{Kind: ElementNode, Tag: tag}
}

func NewText(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// IsAnnotation reports whether n is an annotation container node.
func (n *Node) IsAnnotation() bool {
	return n != nil && n.Kind == ElementNode && n.Annotation != nil
}

// TextLen is the rune length of a text node's content.
func (n *Node) TextLen() int {
	if n == nil || n.Kind != TextNode {
		return 0
	}
	return utf8.RuneCountInString(n.Text)
}

func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertBefore inserts child immediately before ref among n's children. A nil
// ref appends.
func (n *Node) InsertBefore(child *Node, ref *Node) {
	if child == nil {
		return
	}
	if ref == nil {
		n.AppendChild(child)
		return
	}
	idx := n.indexOf(ref)
	if idx < 0 {
		n.AppendChild(child)
		return
	}
	child.Detach()
	child.parent = n
	n.children = slices.Insert(n.children, idx, child)
}

// Detach removes n from its parent. Detaching an already-detached node is a
// no-op.
func (n *Node) Detach() {
	if n == nil || n.parent == nil {
		return
	}
	p := n.parent
	idx := p.indexOf(n)
	if idx >= 0 {
		p.children = slices.Delete(p.children, idx, idx+1)
	}
	n.parent = nil
}

// ReplaceWith substitutes n with the given nodes at n's position. Nil entries
// are skipped; an empty list simply removes n.
func (n *Node) ReplaceWith(nodes ...*Node) {
	p := n.parent
	if p == nil {
		return
	}
	idx := p.indexOf(n)
	if idx < 0 {
		return
	}
	n.Detach()
	var ref *Node
	if idx < len(p.children) {
		ref = p.children[idx]
	}
	for _, node := range nodes {
		if node == nil {
			continue
		}
		p.InsertBefore(node, ref)
	}
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// SplitText splits a text node at the given rune offset and returns the
// trailing node, inserted as n's next sibling. Offsets at or beyond the
// boundaries return nil and leave the tree untouched.
func (n *Node) SplitText(offset int) *Node {
	if n == nil || n.Kind != TextNode || n.parent == nil {
		return nil
	}
	runes := []rune(n.Text)
	if offset <= 0 || offset >= len(runes) {
		return nil
	}
	tail := NewText(string(runes[offset:]))
	n.Text = string(runes[:offset])
	p := n.parent
	idx := p.indexOf(n)
	var ref *Node
	if idx+1 < len(p.children) {
		ref = p.children[idx+1]
	}
	p.InsertBefore(tail, ref)
	return tail
}

// Attached reports whether n is reachable by parent links from root.
func (n *Node) Attached(root *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Normalize merges adjacent plain text children and removes empty text nodes,
// recursing into non-decoration element children. Annotation boundaries stop
// merging naturally because the annotation element sits between the runs.
func (n *Node) Normalize() {
	if n == nil || n.Kind != ElementNode {
		return
	}
	merged := make([]*Node, 0, len(n.children))
	for _, child := range n.children {
		if child.Kind == TextNode {
			if child.Text == "" {
				child.parent = nil
				continue
			}
			if len(merged) > 0 && merged[len(merged)-1].Kind == TextNode {
				merged[len(merged)-1].Text += child.Text
				child.parent = nil
				continue
			}
		}
		merged = append(merged, child)
	}
	n.children = merged
	for _, child := range n.children {
		if child.Kind == ElementNode && !child.Role.IsDecoration() {
			child.Normalize()
		}
	}
}

// FindAnnotation resolves an annotation node by id with a fresh traversal.
// Anchors are lookup keys revalidated per call, never long-lived pointers.
func FindAnnotation(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.IsAnnotation() && root.Annotation.Id == id {
		return root
	}
	for _, child := range root.children {
		if found := FindAnnotation(child, id); found != nil {
			return found
		}
	}
	return nil
}

// FindById resolves any node by its host id attribute.
func FindById(root *Node, id string) *Node {
	if root == nil || id == "" {
		return nil
	}
	if root.Id == id {
		return root
	}
	for _, child := range root.children {
		if found := FindById(child, id); found != nil {
			return found
		}
	}
	return nil
}

// ContainsAnnotation reports whether n is an annotation node, sits inside
// one, or has one anywhere among its non-decoration descendants.
func ContainsAnnotation(n *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.IsAnnotation() {
			return true
		}
	}
	return hasAnnotationBelow(n)
}

func hasAnnotationBelow(n *Node) bool {
	if n == nil || n.Role.IsDecoration() {
		return false
	}
	if n.IsAnnotation() {
		return true
	}
	for _, child := range n.children {
		if hasAnnotationBelow(child) {
			return true
		}
	}
	return false
}
