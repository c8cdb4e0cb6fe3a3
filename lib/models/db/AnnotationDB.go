package db

import "time"

// AnnotationDB is the persisted row shape shared by every store backend.
type AnnotationDB struct {
	Id            string
	Type          string
	PropertyId    string
	PropertyLabel string
	PropertyColor string
	Color         string
	TextSnapshot  string
	TabId         string
	TabUrl        string
	TabTitle      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
