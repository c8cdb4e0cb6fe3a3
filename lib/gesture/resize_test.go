package gesture

import (
	"testing"

	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/exception"
	"github.com/hilite/hilite-go/lib/lifecycle"
	"github.com/hilite/hilite-go/lib/models/annotation"
	"github.com/hilite/hilite-go/lib/overlay"
	"github.com/hilite/hilite-go/lib/rangemap"
	"github.com/hilite/hilite-go/lib/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSelection struct {
	selected []*rangemap.TreeRange
	cleared  int
}

func (s *recordingSelection) Select(r *rangemap.TreeRange) {
	s.selected = append(s.selected, r)
}

func (s *recordingSelection) Clear() {
	s.cleared++
}

type fixture struct {
	root       *doctree.Node
	para       *doctree.Node
	controller *lifecycle.Controller
	selection  *recordingSelection
	resizer    *Resizer
	record     *annotation.Record
}

// newFixture annotates "sat on" inside "The cat sat on the mat" and wires a
// resizer over a monospace layout.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := doctree.NewElement("body")
	para := doctree.NewElement("p")
	para.AppendChild(doctree.NewText("The cat sat on the mat"))
	root.AppendChild(para)

	controller := lifecycle.NewController(root, registry.NewRegistry(), overlay.NewBinder(), zap.NewNop().Sugar())
	rng := rangemap.RangeFromOffsets(para, 8, 14)
	require.NotNil(t, rng)
	record, err := controller.Create(rng, annotation.PropertyRef{Id: "p1", Label: "Method"}, "#fff")
	require.NoError(t, err)

	selection := &recordingSelection{}
	resizer := NewResizer(controller, doctree.NewMonoLayout(root), selection, zap.NewNop().Sugar())
	return &fixture{
		root:       root,
		para:       para,
		controller: controller,
		selection:  selection,
		resizer:    resizer,
		record:     record,
	}
}

func TestBeginCapturesExtent(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeEnd))
	assert.Equal(t, StateDragging, f.resizer.State())
}

func TestBeginUnknownId(t *testing.T) {
	f := newFixture(t)
	err := f.resizer.Begin("missing", EdgeEnd)
	var notFound *exception.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, StateIdle, f.resizer.State())
}

func TestBeginCancelsActiveGesture(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeEnd))
	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeStart))

	assert.Equal(t, StateDragging, f.resizer.State())
	assert.Equal(t, 1, f.selection.cleared)
}

func TestDragNarrowsFromEnd(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeEnd))

	// "sat on" spans columns 8..14; drag the end handle to column 11
	f.resizer.Move(11, 0)
	require.NotEmpty(t, f.selection.selected)

	record, err := f.resizer.End()
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "sat", record.TextSnapshot)
	assert.Equal(t, StateIdle, f.resizer.State())
	assert.Equal(t, "The cat sat on the mat", doctree.Collect(f.para))
}

func TestDragClampsAtFixedBoundary(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeEnd))

	// dragging the end handle all the way across the start must clamp to
	// start+1
	f.resizer.Move(0, 0)
	record, err := f.resizer.End()
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "s", record.TextSnapshot)
}

func TestDragStartEdge(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeStart))

	// annotation text is "sat on"; move the start to column 12 ("on")
	f.resizer.Move(12, 0)
	record, err := f.resizer.End()
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "on", record.TextSnapshot)
	assert.Equal(t, "The cat sat on the mat", doctree.Collect(f.para))
}

func TestEndWithoutChangeAborts(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeEnd))

	record, err := f.resizer.End()
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, 1, f.selection.cleared)
	assert.Equal(t, "sat on", f.controller.Get(f.record.Id).TextSnapshot)
}

func TestEndWithoutGesture(t *testing.T) {
	f := newFixture(t)
	record, err := f.resizer.End()
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestMoveAfterAnchorVanishesAborts(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeEnd))

	doctree.FindAnnotation(f.root, f.record.Id).Detach()
	f.resizer.Move(11, 0)

	assert.Equal(t, StateIdle, f.resizer.State())
	assert.Equal(t, 1, f.selection.cleared)

	// a later End is a no-op, no second update attempt
	record, err := f.resizer.End()
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestAbortClearsPreview(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.resizer.Begin(f.record.Id, EdgeEnd))
	f.resizer.Move(11, 0)

	f.resizer.Abort()
	assert.Equal(t, StateIdle, f.resizer.State())
	assert.Equal(t, 1, f.selection.cleared)
	assert.Equal(t, "sat on", f.controller.Get(f.record.Id).TextSnapshot)
}

func TestMoveWhileIdleIsNoop(t *testing.T) {
	f := newFixture(t)
	f.resizer.Move(11, 0)
	assert.Empty(t, f.selection.selected)
}
