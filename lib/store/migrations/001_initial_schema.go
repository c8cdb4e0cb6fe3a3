package migrations

import (
	"database/sql"
)

// GetMigrations returns all available migrations
func GetMigrations() []Migration {
	return []Migration{
		migration001InitialSchema(),
	}
}

// migration001InitialSchema creates the annotation table
func migration001InitialSchema() Migration {
	return Migration{
		Version:     1,
		Description: "Initial schema - create annotation table",
		Up: func(db *sql.DB, dialect Dialect) error {
			var queries []string

			switch dialect {
			case DialectPostgres:
				queries = getPostgresInitialSchema()
			default:
				queries = getSQLiteInitialSchema()
			}

			for _, query := range queries {
				if _, err := db.Exec(query); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func getSQLiteInitialSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS annotation (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL DEFAULT 'text',
			property_id TEXT NOT NULL,
			property_label TEXT NOT NULL,
			property_color TEXT,
			color TEXT NOT NULL,
			text_snapshot TEXT,
			tab_id TEXT,
			tab_url TEXT,
			tab_title TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_annotation_tab_id ON annotation(tab_id)`,
	}
}

func getPostgresInitialSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS annotation (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL DEFAULT 'text',
			property_id TEXT NOT NULL,
			property_label TEXT NOT NULL,
			property_color TEXT,
			color TEXT NOT NULL,
			text_snapshot TEXT,
			tab_id TEXT,
			tab_url TEXT,
			tab_title TEXT,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_annotation_tab_id ON annotation(tab_id)`,
	}
}
