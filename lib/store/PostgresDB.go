package store

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/hilite/hilite-go/lib/models/db"
	"github.com/hilite/hilite-go/lib/store/migrations"
	_ "github.com/lib/pq"
)

type PostgresOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

type PostgresDB struct {
	options PostgresOptions
	sqlDB   *sql.DB
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func NewPostgresDB(options PostgresOptions) (*PostgresDB, error) {
	dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		options.Username, options.Password, options.Host, options.Port, options.Database)
	sqlDb, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, err
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectPostgres)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresDB{
		options: options,
		sqlDB:   sqlDb,
	}, nil
}

func (d *PostgresDB) SaveAnnotation(row *db.AnnotationDB) error {
	resultedSQL, args, err := psql.
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

func (d *PostgresDB) GetAnnotation(id string) (*db.AnnotationDB, error) {
	resultedSQL, args, err := psql.
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

func (d *PostgresDB) ListAnnotations() ([]db.AnnotationDB, error) {
	resultedSQL, _, err := psql.
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

func (d *PostgresDB) ListAnnotationsByTab(tabId string) ([]db.AnnotationDB, error) {
	resultedSQL, args, err := psql.
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

func (d *PostgresDB) RemoveAnnotation(id string) error {
	resultedSQL, args, err := psql.
		Delete("annotation").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	_, err = d.sqlDB.Exec(resultedSQL, args...)
	return err
}

func (d *PostgresDB) Close() error {
	return d.sqlDB.Close()
}
