package store

import "github.com/hilite/hilite-go/lib/models/db"

// DataStore is the persistence collaborator. The tree stays authoritative;
// every store call is best-effort cache maintenance, so callers log failures
// and move on instead of rolling back tree mutations.
type DataStore interface {
	SaveAnnotation(row *db.AnnotationDB) error
	GetAnnotation(id string) (*db.AnnotationDB, error)
	ListAnnotations() ([]db.AnnotationDB, error)
	ListAnnotationsByTab(tabId string) ([]db.AnnotationDB, error)
	RemoveAnnotation(id string) error
	Close() error
}
