package notify

import (
	"encoding/json"

	"github.com/hilite/hilite-go/lib/hooks"
	"github.com/hilite/hilite-go/lib/hooks/events"
	"github.com/hilite/hilite-go/lib/models/annotation"
	"github.com/hilite/hilite-go/lib/ws"
)

// Notifier lets other UI surfaces refresh after a lifecycle mutation. Calls
// are fire-and-forget; implementations must swallow delivery failures.
type Notifier interface {
	AnnotationCreated(record *annotation.Record)
	AnnotationUpdated(record *annotation.Record)
	AnnotationDeleted(id string, tabId string)
}

type NoopNotifier struct{}

func (NoopNotifier) AnnotationCreated(*annotation.Record) {}
func (NoopNotifier) AnnotationUpdated(*annotation.Record) {}
func (NoopNotifier) AnnotationDeleted(string, string)     {}

// HookNotifier fans events out to in-process hook listeners.
type HookNotifier struct {
	Hooks *hooks.Hook
}

func NewHookNotifier(h *hooks.Hook) *HookNotifier {
	return &HookNotifier{Hooks: h}
}

func (n *HookNotifier) AnnotationCreated(record *annotation.Record) {
	n.execute(events.AnnotationCreated, record.Id, record.Tab.TabId, record)
}

func (n *HookNotifier) AnnotationUpdated(record *annotation.Record) {
	n.execute(events.AnnotationUpdated, record.Id, record.Tab.TabId, record)
}

func (n *HookNotifier) AnnotationDeleted(id string, tabId string) {
	n.execute(events.AnnotationDeleted, id, tabId, nil)
}

func (n *HookNotifier) execute(kind events.AnnotationEventKind, id string, tabId string, record *annotation.Record) {
	if n.Hooks == nil {
		return
	}
	n.Hooks.ExecuteAnnotationChangedHooks(&events.AnnotationEventContext{
		Kind:         kind,
		AnnotationId: id,
		TabId:        tabId,
		Record:       record.Clone(),
	})
}

// WSNotifier broadcasts events as JSON through the websocket hub. A full or
// absent hub drops the event silently.
type WSNotifier struct {
	Hub *ws.Hub
}

func NewWSNotifier(hub *ws.Hub) *WSNotifier {
	return &WSNotifier{Hub: hub}
}

type wsEvent struct {
	Kind         events.AnnotationEventKind `json:"kind"`
	AnnotationId string                     `json:"annotationId"`
	TabId        string                     `json:"tabId"`
	Record       *annotation.Record         `json:"record,omitempty"`
}

func (n *WSNotifier) AnnotationCreated(record *annotation.Record) {
	n.broadcast(wsEvent{Kind: events.AnnotationCreated, AnnotationId: record.Id, TabId: record.Tab.TabId, Record: record.Clone()})
}

func (n *WSNotifier) AnnotationUpdated(record *annotation.Record) {
	n.broadcast(wsEvent{Kind: events.AnnotationUpdated, AnnotationId: record.Id, TabId: record.Tab.TabId, Record: record.Clone()})
}

func (n *WSNotifier) AnnotationDeleted(id string, tabId string) {
	n.broadcast(wsEvent{Kind: events.AnnotationDeleted, AnnotationId: id, TabId: tabId})
}

func (n *WSNotifier) broadcast(event wsEvent) {
	if n.Hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case n.Hub.Broadcast <- payload:
	default:
	}
}

// MultiNotifier fans out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) AnnotationCreated(record *annotation.Record) {
	for _, n := range m {
		n.AnnotationCreated(record)
	}
}

func (m MultiNotifier) AnnotationUpdated(record *annotation.Record) {
	for _, n := range m {
		n.AnnotationUpdated(record)
	}
}

func (m MultiNotifier) AnnotationDeleted(id string, tabId string) {
	for _, n := range m {
		n.AnnotationDeleted(id, tabId)
	}
}
