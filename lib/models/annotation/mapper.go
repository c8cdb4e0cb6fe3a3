package annotation

import (
	"github.com/hilite/hilite-go/lib/models/db"
)

func MapRecordToDB(record *Record) *db.AnnotationDB {
	return &db.AnnotationDB{
		Id:            record.Id,
		Type:          string(record.Type),
		PropertyId:    record.Property.Id,
		PropertyLabel: record.Property.Label,
		PropertyColor: record.Property.Color,
		Color:         record.Color,
		TextSnapshot:  record.TextSnapshot,
		TabId:         record.Tab.TabId,
		TabUrl:        record.Tab.Url,
		TabTitle:      record.Tab.Title,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func MapDBToRecord(row *db.AnnotationDB) *Record {
	return &Record{
		Id:   row.Id,
		Type: Type(row.Type),
		Property: PropertyRef{
			Id:    row.PropertyId,
			Label: row.PropertyLabel,
			Color: row.PropertyColor,
		},
		Color:        row.Color,
		TextSnapshot: row.TextSnapshot,
		Tab: TabContext{
			TabId: row.TabId,
			Url:   row.TabUrl,
			Title: row.TabTitle,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
