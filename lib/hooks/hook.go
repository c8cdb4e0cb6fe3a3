package hooks

import (
	"github.com/hilite/hilite-go/lib/hooks/events"
	uuid2 "github.com/google/uuid"
)

type Hook struct {
	hooks map[string]map[string]func(ctx any)
}

func NewHook() *Hook {
	return &Hook{
		hooks: make(map[string]map[string]func(ctx any)),
	}
}

func (h *Hook) EnqueueAnnotationChangedHook(kind events.AnnotationEventKind, cb func(ctx *events.AnnotationEventContext)) string {
	return h.EnqueueHook(string(kind), func(ctx any) {
		if eventCtx, ok := ctx.(*events.AnnotationEventContext); ok {
			cb(eventCtx)
		}
	})
}

func (h *Hook) ExecuteAnnotationChangedHooks(ctx *events.AnnotationEventContext) {
	h.ExecuteHooks(string(ctx.Kind), ctx)
}

func (h *Hook) EnqueueHook(key string, ctx func(ctx any)) string {
	var uuid = uuid2.New()
	var _, ok = h.hooks[key]

	if !ok {
		h.hooks[key] = make(map[string]func(ctx any))
	}

	h.hooks[key][uuid.String()] = ctx

	return uuid.String()
}

func (h *Hook) DequeueHook(key, id string) {
	delete(h.hooks[key], id)
}

func (h *Hook) ExecuteHooks(key string, ctx any) {
	var _, ok = h.hooks[key]

	if !ok {
		return
	}

	for _, v := range h.hooks[key] {
		v(ctx)
	}
}
