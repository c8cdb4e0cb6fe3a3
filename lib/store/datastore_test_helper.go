package store

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	db2 "github.com/hilite/hilite-go/lib/models/db"
)

func CreateRandomAnnotation() db2.AnnotationDB {
	now := time.Now().UTC().Truncate(time.Second)
	return db2.AnnotationDB{
		Id:            gofakeit.UUID(),
		Type:          "text",
		PropertyId:    gofakeit.UUID(),
		PropertyLabel: gofakeit.Word(),
		PropertyColor: gofakeit.HexColor(),
		Color:         gofakeit.HexColor(),
		TextSnapshot:  gofakeit.Sentence(4),
		TabId:         gofakeit.UUID(),
		TabUrl:        gofakeit.URL(),
		TabTitle:      gofakeit.Sentence(3),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
