package gesture

import (
	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/exception"
	"github.com/hilite/hilite-go/lib/lifecycle"
	"github.com/hilite/hilite-go/lib/models/annotation"
	"github.com/hilite/hilite-go/lib/rangemap"
	"github.com/hilite/hilite-go/lib/utils"
	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateDragging
	StateCommitting
)

type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Selection is the host's native selection surface used for drag previews.
// Previews never mutate the tree.
type Selection interface {
	Select(r *rangemap.TreeRange)
	Clear()
}

type NopSelection struct{}

func (NopSelection) Select(*rangemap.TreeRange) {}
func (NopSelection) Clear()                     {}

type gestureState struct {
	id        string
	edge      Edge
	origStart int
	origEnd   int
	start     int
	end       int
	total     int
}

// Resizer drives the interactive resize of one annotation at a time. It owns
// a single active-gesture slot; beginning a new gesture cancels the previous
// one. Commit calls the lifecycle controller exactly once.
type Resizer struct {
	controller *lifecycle.Controller
	layout     doctree.Layout
	selection  Selection
	logger     *zap.SugaredLogger

	state  State
	active *gestureState
}

func NewResizer(controller *lifecycle.Controller, layout doctree.Layout, selection Selection, logger *zap.SugaredLogger) *Resizer {
	if selection == nil {
		selection = NopSelection{}
	}
	return &Resizer{
		controller: controller,
		layout:     layout,
		selection:  selection,
		logger:     logger,
		state:      StateIdle,
	}
}

func (r *Resizer) State() State {
	return r.state
}

// Begin captures the annotation's current extent and enters Dragging. An
// already-active gesture is aborted first.
func (r *Resizer) Begin(id string, edge Edge) error {
	if r.active != nil {
		r.Abort()
	}
	record := r.controller.Get(id)
	if record == nil {
		return exception.NewNotFoundError(id)
	}
	node := doctree.FindAnnotation(r.controller.Root(), id)
	if node == nil {
		return exception.NewAnchorLostError(id)
	}
	total := doctree.CollectLen(node)
	if total == 0 {
		return exception.NewAnchorLostError(id)
	}
	r.active = &gestureState{
		id:        id,
		edge:      edge,
		origStart: 0,
		origEnd:   total,
		start:     0,
		end:       total,
		total:     total,
	}
	r.state = StateDragging
	return nil
}

// Move re-anchors the moving boundary to the pointer and refreshes the
// preview selection. The moving boundary can never cross the fixed one. A
// vanished anchor node aborts the gesture.
func (r *Resizer) Move(x float64, y float64) {
	if r.active == nil || r.state != StateDragging {
		return
	}
	node := doctree.FindAnnotation(r.controller.Root(), r.active.id)
	if node == nil {
		r.logger.Debugw("gesture anchor lost, aborting", "id", r.active.id)
		r.Abort()
		return
	}
	offset := rangemap.OffsetAtPoint(r.layout, node, x, y)
	if r.active.edge == EdgeStart {
		r.active.start = utils.ClampInt(offset, 0, r.active.end-1)
	} else {
		r.active.end = utils.ClampInt(offset, r.active.start+1, r.active.total)
	}
	if preview := rangemap.RangeFromOffsets(node, r.active.start, r.active.end); preview != nil {
		r.selection.Select(preview)
	}
}

// End commits the gesture with a single Update call, or aborts when the net
// change is zero or the span has become invalid.
func (r *Resizer) End() (*annotation.Record, error) {
	if r.active == nil {
		return nil, nil
	}
	state := r.active
	if state.start == state.origStart && state.end == state.origEnd {
		r.Abort()
		return nil, nil
	}
	if state.start >= state.end {
		r.Abort()
		return nil, nil
	}
	r.state = StateCommitting
	record, err := r.controller.Update(state.id, state.start, state.end)
	r.selection.Clear()
	r.active = nil
	r.state = StateIdle
	return record, err
}

// Abort drops the gesture and clears the preview; the tree is untouched.
func (r *Resizer) Abort() {
	r.selection.Clear()
	r.active = nil
	r.state = StateIdle
}
