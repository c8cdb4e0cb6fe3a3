package annotation

import (
	"time"

	"github.com/hilite/hilite-go/lib/doctree"
)

type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeTable Type = "table"
)

// PropertyRef is the semantic tag applied to a span, supplied by the
// property source collaborator.
type PropertyRef struct {
	Id    string `json:"id" validate:"required"`
	Label string `json:"label" validate:"required"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// TabContext identifies the page an annotation was made on.
type TabContext struct {
	TabId string `json:"tabId"`
	Url   string `json:"url"`
	Title string `json:"title"`
}

// Record is the registry's view of one annotation. The tree is the source of
// truth for existence; TextSnapshot is a best-effort cache used when the tree
// reference has gone stale, and Node is a lookup hint that the lifecycle
// controller revalidates on every use — never an ownership edge.
type Record struct {
	Id           string      `json:"id" validate:"required"`
	Type         Type        `json:"type" validate:"required,oneof=text image table"`
	Property     PropertyRef `json:"property" validate:"required"`
	Color        string      `json:"color" validate:"required"`
	TextSnapshot string      `json:"textSnapshot"`
	Tab          TabContext  `json:"tab"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	Node *doctree.Node `json:"-"`
}

// Clone returns a copy safe to hand across the API boundary. The node hint is
// deliberately not carried along.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Node = nil
	return &clone
}
