package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/hilite/hilite-go/lib/models/db"
	"github.com/hilite/hilite-go/lib/store/migrations"
	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	path  string
	sqlDB *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	if path == ":memory" {
		path = "file::memory:?cache=shared"
	}

	sqlDb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if strings.Contains(path, ":memory:") {
		sqlDb.SetMaxOpenConns(1)
	}

	if _, err = sqlDb.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDb.Close()
		return nil, err
	}
	if _, err = sqlDb.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		sqlDb.Close()
		return nil, err
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectSQLite)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteDB{
		path:  path,
		sqlDB: sqlDb,
	}, nil
}

func (d *SQLiteDB) SaveAnnotation(row *db.AnnotationDB) error {
	resultedSQL, args, err := sq.
		Insert("annotation").
		Columns("id", "type", "property_id", "property_label", "property_color",
			"color", "text_snapshot", "tab_id", "tab_url", "tab_title",
			"created_at", "updated_at").
		Values(row.Id, row.Type, row.PropertyId, row.PropertyLabel, row.PropertyColor,
			row.Color, row.TextSnapshot, row.TabId, row.TabUrl, row.TabTitle,
			row.CreatedAt, row.UpdatedAt).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			property_id = excluded.property_id,
			property_label = excluded.property_label,
			property_color = excluded.property_color,
			color = excluded.color,
			text_snapshot = excluded.text_snapshot,
			tab_id = excluded.tab_id,
			tab_url = excluded.tab_url,
			tab_title = excluded.tab_title,
			updated_at = excluded.updated_at`).
		ToSql()

	if err != nil {
		return err
	}

	_, err = d.sqlDB.Exec(resultedSQL, args...)
	return err
}

func (d *SQLiteDB) GetAnnotation(id string) (*db.AnnotationDB, error) {
	resultedSQL, args, err := sq.
		Select(annotationColumns...).
		From("annotation").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, err
	}

	row := d.sqlDB.QueryRow(resultedSQL, args...)
	annotationRow, err := scanAnnotation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(AnnotationDoesNotExistError)
		}
		return nil, err
	}
	return annotationRow, nil
}

func (d *SQLiteDB) ListAnnotations() ([]db.AnnotationDB, error) {
	resultedSQL, _, err := sq.
		Select(annotationColumns...).
		From("annotation").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := d.sqlDB.Query(resultedSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnnotations(rows)
}

func (d *SQLiteDB) ListAnnotationsByTab(tabId string) ([]db.AnnotationDB, error) {
	resultedSQL, args, err := sq.
		Select(annotationColumns...).
		From("annotation").
		Where(sq.Eq{"tab_id": tabId}).
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := d.sqlDB.Query(resultedSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnnotations(rows)
}

func (d *SQLiteDB) RemoveAnnotation(id string) error {
	resultedSQL, args, err := sq.
		Delete("annotation").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	_, err = d.sqlDB.Exec(resultedSQL, args...)
	return err
}

func (d *SQLiteDB) Close() error {
	return d.sqlDB.Close()
}
