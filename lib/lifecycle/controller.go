package lifecycle

import (
	"time"

	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/exception"
	"github.com/hilite/hilite-go/lib/models/annotation"
	"github.com/hilite/hilite-go/lib/notify"
	"github.com/hilite/hilite-go/lib/overlay"
	"github.com/hilite/hilite-go/lib/rangemap"
	"github.com/hilite/hilite-go/lib/registry"
	"github.com/hilite/hilite-go/lib/store"
	"github.com/hilite/hilite-go/lib/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const annotationTag = "mark"

// Controller orchestrates annotation lifecycle mutations against the host
// tree. Every operation validates all of its preconditions before touching
// the tree, so a failed call leaves state unchanged. Storage and notification
// are best-effort collaborators invoked only after a mutation has committed.
type Controller struct {
	// Store receives save/remove calls after each successful operation.
	// Failures are logged, never rolled back; the tree stays authoritative.
	Store store.DataStore
	// Notifier is called fire-and-forget after create/update/delete.
	Notifier notify.Notifier
	// Tab context stamped onto records at creation.
	Tab annotation.TabContext
	// DefaultColor applies when neither the caller nor the property has one.
	DefaultColor string

	root     *doctree.Node
	registry *registry.Registry
	binder   *overlay.Binder
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewController(root *doctree.Node, reg *registry.Registry, binder *overlay.Binder, logger *zap.SugaredLogger) *Controller {
	return &Controller{
		Notifier: notify.NoopNotifier{},
		root:     root,
		registry: reg,
		binder:   binder,
		logger:   logger,
		now:      time.Now,
	}
}

// Create wraps rng in a new annotation node, registers a record and attaches
// decoration. The caller keeps responsibility for any persistence beyond the
// best-effort store call.
func (c *Controller) Create(rng *rangemap.TreeRange, property annotation.PropertyRef, color string) (*annotation.Record, error) {
	if rng == nil || rng.StartNode == nil || rng.EndNode == nil {
		return nil, exception.NewAnchorLostError("")
	}
	if !rng.StartNode.Attached(c.root) || !rng.EndNode.Attached(c.root) {
		return nil, exception.NewAnchorLostError("")
	}
	rng = reanchorEnd(c.root, rng)
	if id, inside := annotationAncestor(rng.StartNode); inside {
		return nil, exception.NewRangeConflictError(id)
	}
	if id, inside := annotationAncestor(rng.EndNode); inside {
		return nil, exception.NewRangeConflictError(id)
	}
	parent := rng.StartNode.Parent()
	if parent == nil || rng.EndNode.Parent() != parent {
		return nil, exception.NewInvalidOffsetsError(rng.StartOffset, rng.EndOffset)
	}
	if rng.StartNode == rng.EndNode && rng.StartOffset >= rng.EndOffset {
		return nil, exception.NewInvalidOffsetsError(rng.StartOffset, rng.EndOffset)
	}
	if conflictId, conflict := findConflict(parent, rng.StartNode, rng.EndNode); conflict {
		return nil, exception.NewRangeConflictError(conflictId)
	}

	sourceStart := rangemap.FlatOffset(parent, rng.StartNode, rng.StartOffset)
	sourceEnd := rangemap.FlatOffset(parent, rng.EndNode, rng.EndOffset)

	node := c.wrapRange(parent, rng)
	if node == nil {
		return nil, exception.NewAnchorLostError("")
	}

	createdAt := c.now()
	record := &annotation.Record{
		Id:           uuid.New().String(),
		Type:         annotation.TypeText,
		Property:     property,
		Color:        c.pickColor(color, property),
		TextSnapshot: doctree.Collect(node),
		Tab:          c.Tab,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
		Node:         node,
	}
	node.Annotation = &doctree.AnnotationAttrs{
		Id:            record.Id,
		PropertyId:    property.Id,
		PropertyLabel: property.Label,
		Color:         record.Color,
		SourceStart:   sourceStart,
		SourceEnd:     sourceEnd,
	}

	c.registry.Register(record)
	c.binder.Attach(node, record)
	c.persist(record)
	c.Notifier.AnnotationCreated(record)
	c.logger.Debugw("annotation created", "id", record.Id, "text", record.TextSnapshot)
	return record, nil
}

// Update replaces the annotation node wholesale: the previous node's full
// collected text is split into before/selected/after by the new offsets, the
// old node is removed, and plain text plus a fresh node carrying the same id
// are inserted at its former position. The record identity survives.
func (c *Controller) Update(id string, newStart int, newEnd int) (*annotation.Record, error) {
	record := c.registry.Get(id)
	if record == nil {
		return nil, exception.NewNotFoundError(id)
	}
	node := c.resolveNode(record)
	if node == nil || node.Parent() == nil {
		return nil, exception.NewAnchorLostError(id)
	}

	full := doctree.Collect(node)
	total := utils.RuneCount(full)
	if newStart < 0 || newStart >= newEnd || newEnd > total {
		return nil, exception.NewInvalidOffsetsError(newStart, newEnd)
	}

	before := utils.RuneSlice(full, 0, newStart)
	selected := utils.RuneSlice(full, newStart, newEnd)
	after := utils.RuneSlice(full, newEnd, total)

	parent := node.Parent()
	c.binder.Detach(id)

	newNode := doctree.NewElement(annotationTag)
	newNode.Annotation = node.Annotation
	newNode.AppendChild(doctree.NewText(selected))

	replacement := make([]*doctree.Node, 0, 3)
	if before != "" {
		replacement = append(replacement, doctree.NewText(before))
	}
	replacement = append(replacement, newNode)
	if after != "" {
		replacement = append(replacement, doctree.NewText(after))
	}
	node.ReplaceWith(replacement...)
	parent.Normalize()

	record.TextSnapshot = selected
	record.UpdatedAt = c.now()
	record.Node = newNode

	c.binder.Attach(newNode, record)
	c.persist(record)
	c.Notifier.AnnotationUpdated(record)
	c.logger.Debugw("annotation updated", "id", id, "start", newStart, "end", newEnd)
	return record, nil
}

// Delete unwraps the annotation back into plain text. When the node has
// already vanished from the tree the record is still unregistered, so a
// delete after external removal converges to the same end state.
func (c *Controller) Delete(id string) error {
	record := c.registry.Get(id)
	if record == nil {
		return exception.NewNotFoundError(id)
	}

	node := c.resolveNode(record)
	if node != nil && node.Parent() != nil {
		parent := node.Parent()
		text := doctree.Collect(node)
		c.binder.Detach(id)
		if text != "" {
			node.ReplaceWith(doctree.NewText(text))
		} else {
			node.ReplaceWith()
		}
		parent.Normalize()
	} else {
		c.binder.Detach(id)
	}

	c.registry.Unregister(id)
	if c.Store != nil {
		if err := c.Store.RemoveAnnotation(id); err != nil {
			c.logger.Warnw("store remove failed", "id", id, "error", err)
		}
	}
	c.Notifier.AnnotationDeleted(id, record.Tab.TabId)
	c.logger.Debugw("annotation deleted", "id", id)
	return nil
}

func (c *Controller) Get(id string) *annotation.Record {
	return c.registry.Get(id)
}

func (c *Controller) All() []*annotation.Record {
	return c.registry.All()
}

func (c *Controller) GetByTab(tabId string) []*annotation.Record {
	return c.registry.GetByTab(tabId)
}

// Root exposes the host tree the controller mutates.
func (c *Controller) Root() *doctree.Node {
	return c.root
}

// RestoreFromStore repopulates the registry from persisted rows. Restored
// records carry no node hint; their tree nodes are resolved lazily, and the
// text snapshot stands in when resolution fails.
func (c *Controller) RestoreFromStore() error {
	if c.Store == nil {
		return nil
	}
	rows, err := c.Store.ListAnnotations()
	if err != nil {
		return err
	}
	for i := range rows {
		c.registry.Register(annotation.MapDBToRecord(&rows[i]))
	}
	return nil
}

// resolveNode revalidates the record's node hint against the live tree and
// falls back to a fresh traversal. Hints are never trusted blindly.
func (c *Controller) resolveNode(record *annotation.Record) *doctree.Node {
	if record.Node != nil && record.Node.IsAnnotation() &&
		record.Node.Annotation.Id == record.Id && record.Node.Attached(c.root) {
		return record.Node
	}
	return doctree.FindAnnotation(c.root, record.Id)
}

func (c *Controller) pickColor(color string, property annotation.PropertyRef) string {
	if color != "" {
		return color
	}
	if property.Color != "" {
		return property.Color
	}
	return c.DefaultColor
}

func (c *Controller) persist(record *annotation.Record) {
	if c.Store == nil {
		return
	}
	if err := c.Store.SaveAnnotation(annotation.MapRecordToDB(record)); err != nil {
		c.logger.Warnw("store save failed", "id", record.Id, "error", err)
	}
}

// reanchorEnd pulls an end anchor sitting on the leading boundary of a later
// node back to the end of the previous collectible text node. The half-open
// range covers nothing of the later node there, so the earlier anchor is
// equivalent and keeps both ends inside one sibling run even when the later
// node lives inside a nested element.
func reanchorEnd(root *doctree.Node, rng *rangemap.TreeRange) *rangemap.TreeRange {
	if rng.EndOffset != 0 || rng.EndNode == rng.StartNode {
		return rng
	}
	var prev *doctree.Node
	for textNode := range doctree.TextNodes(root) {
		if textNode == rng.EndNode {
			break
		}
		prev = textNode
	}
	if prev == nil {
		return rng
	}
	return &rangemap.TreeRange{
		StartNode:   rng.StartNode,
		StartOffset: rng.StartOffset,
		EndNode:     prev,
		EndOffset:   prev.TextLen(),
	}
}

func annotationAncestor(n *doctree.Node) (string, bool) {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cur.IsAnnotation() {
			return cur.Annotation.Id, true
		}
	}
	return "", false
}

// findConflict scans the sibling span the range covers, plus the ancestor
// chain, for an existing annotation. Overlap and nesting are both conflicts.
func findConflict(parent *doctree.Node, startNode *doctree.Node, endNode *doctree.Node) (string, bool) {
	for cur := parent; cur != nil; cur = cur.Parent() {
		if cur.IsAnnotation() {
			return cur.Annotation.Id, true
		}
	}
	inSpan := false
	for _, child := range parent.Children() {
		if child == startNode {
			inSpan = true
		}
		if inSpan {
			if id, found := firstAnnotationBelow(child); found {
				return id, true
			}
		}
		if child == endNode {
			break
		}
	}
	return "", false
}

func firstAnnotationBelow(n *doctree.Node) (string, bool) {
	if n == nil || n.Role.IsDecoration() {
		return "", false
	}
	if n.IsAnnotation() {
		return n.Annotation.Id, true
	}
	for _, child := range n.Children() {
		if id, found := firstAnnotationBelow(child); found {
			return id, true
		}
	}
	return "", false
}

// wrapRange splits the boundary text nodes and moves the covered siblings
// into a fresh annotation element at the range's position. Returns nil if the
// range cannot be realized; no partial mutation escapes because the split
// preconditions were validated by the caller.
func (c *Controller) wrapRange(parent *doctree.Node, rng *rangemap.TreeRange) *doctree.Node {
	startNode := rng.StartNode
	endNode := rng.EndNode

	if startNode == endNode {
		startNode.SplitText(rng.EndOffset)
		selected := startNode
		if tail := startNode.SplitText(rng.StartOffset); tail != nil {
			selected = tail
		}
		node := doctree.NewElement(annotationTag)
		parent.InsertBefore(node, selected)
		node.AppendChild(selected)
		return node
	}

	if tail := startNode.SplitText(rng.StartOffset); tail != nil {
		startNode = tail
	}
	endNode.SplitText(rng.EndOffset)
	if rng.EndOffset == 0 {
		// the range ends on the boundary before endNode; nothing of it is
		// covered
		endNode = previousSibling(parent, endNode)
		if endNode == nil {
			return nil
		}
	}

	node := doctree.NewElement(annotationTag)
	parent.InsertBefore(node, startNode)

	covered := make([]*doctree.Node, 0, 4)
	inSpan := false
	for _, child := range parent.Children() {
		if child == startNode {
			inSpan = true
		}
		if inSpan {
			covered = append(covered, child)
		}
		if child == endNode {
			break
		}
	}
	for _, child := range covered {
		node.AppendChild(child)
	}
	return node
}

func previousSibling(parent *doctree.Node, n *doctree.Node) *doctree.Node {
	children := parent.Children()
	for i, child := range children {
		if child == n {
			if i == 0 {
				return nil
			}
			return children[i-1]
		}
	}
	return nil
}
