package overlay

import (
	"sync"

	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/models/annotation"
)

// Binder attaches and detaches the decoration subtree (glyph, tooltip, menu)
// inside annotation nodes. It is purely reactive: only the lifecycle
// controller invokes it, always after the tree mutation has committed.
// Attach and detach are idempotent and order-tolerant, so a node removed
// right after attach is harmless.
type Binder struct {
	mu    sync.Mutex
	bound map[string]*doctree.Node
}

func NewBinder() *Binder {
	return &Binder{
		bound: make(map[string]*doctree.Node),
	}
}

// Attach builds the decoration subtree inside node. An existing decoration
// for the same id is rebuilt in place.
func (b *Binder) Attach(node *doctree.Node, record *annotation.Record) {
	if node == nil || record == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	removeDecoration(node)

	glyph := doctree.NewElement("span")
	glyph.Role = doctree.RoleGlyph
	glyph.AppendChild(doctree.NewText("✎"))

	indicator := doctree.NewElement("span")
	indicator.Role = doctree.RoleTypeIndicator
	indicator.AppendChild(doctree.NewText(string(record.Type)))

	tooltip := doctree.NewElement("div")
	tooltip.Role = doctree.RoleTooltip
	tooltip.AppendChild(doctree.NewText(record.Property.Label))

	menu := doctree.NewElement("div")
	menu.Role = doctree.RoleMenu

	node.AppendChild(glyph)
	node.AppendChild(indicator)
	node.AppendChild(tooltip)
	node.AppendChild(menu)

	b.bound[record.Id] = node
}

// Detach removes the decoration subtree for id. Unknown ids and nodes that
// have already left the tree are no-ops.
func (b *Binder) Detach(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	node, ok := b.bound[id]
	if !ok {
		return
	}
	delete(b.bound, id)
	removeDecoration(node)
}

// Bound reports whether id currently has decoration attached.
func (b *Binder) Bound(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.bound[id]
	return ok
}

func removeDecoration(node *doctree.Node) {
	if node == nil {
		return
	}
	children := append([]*doctree.Node(nil), node.Children()...)
	for _, child := range children {
		if child.Role.IsDecoration() {
			child.Detach()
		}
	}
}
