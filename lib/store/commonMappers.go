package store

import (
	"database/sql"

	"github.com/hilite/hilite-go/lib/models/db"
)

var annotationColumns = []string{
	"id", "type", "property_id", "property_label", "property_color",
	"color", "text_snapshot", "tab_id", "tab_url", "tab_title",
	"created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnotation(scanner rowScanner) (*db.AnnotationDB, error) {
	var row db.AnnotationDB
	var propertyColor, textSnapshot, tabId, tabUrl, tabTitle sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := scanner.Scan(
		&row.Id, &row.Type, &row.PropertyId, &row.PropertyLabel, &propertyColor,
		&row.Color, &textSnapshot, &tabId, &tabUrl, &tabTitle,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	row.PropertyColor = propertyColor.String
	row.TextSnapshot = textSnapshot.String
	row.TabId = tabId.String
	row.TabUrl = tabUrl.String
	row.TabTitle = tabTitle.String
	if createdAt.Valid {
		row.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		row.UpdatedAt = updatedAt.Time
	}
	return &row, nil
}

func scanAnnotations(rows *sql.Rows) ([]db.AnnotationDB, error) {
	var annotations []db.AnnotationDB
	for rows.Next() {
		row, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, *row)
	}
	return annotations, rows.Err()
}
