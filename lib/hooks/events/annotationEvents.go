package events

import "github.com/hilite/hilite-go/lib/models/annotation"

type AnnotationEventKind string

const (
	AnnotationCreated AnnotationEventKind = "annotationCreated"
	AnnotationUpdated AnnotationEventKind = "annotationUpdated"
	AnnotationDeleted AnnotationEventKind = "annotationDeleted"
)

// AnnotationEventContext is handed to listeners after a lifecycle mutation
// has committed. Record is nil for deletions.
type AnnotationEventContext struct {
	Kind         AnnotationEventKind
	AnnotationId string
	TabId        string
	Record       *annotation.Record
}
