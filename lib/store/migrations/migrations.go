package migrations

import (
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// Migration represents a single database migration
type Migration struct {
	Version     int
	Description string
	Up          func(db *sql.DB, dialect Dialect) error
}

// Dialect represents the SQL dialect for different databases
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// MigrationManager handles database migrations
type MigrationManager struct {
	db         *sql.DB
	dialect    Dialect
	migrations []Migration
}

func NewMigrationManager(db *sql.DB, dialect Dialect) *MigrationManager {
	return &MigrationManager{
		db:         db,
		dialect:    dialect,
		migrations: GetMigrations(),
	}
}

// Run executes all pending migrations
func (m *MigrationManager) Run() error {
	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			if err := migration.Up(m.db, m.dialect); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}
			if err := m.setVersion(migration.Version, migration.Description); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *MigrationManager) createMigrationsTable() error {
	query := `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		description TEXT,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := m.db.Exec(query)
	return err
}

func (m *MigrationManager) getCurrentVersion() (int, error) {
	var version int
	row := m.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	err := row.Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (m *MigrationManager) setVersion(version int, description string) error {
	var query string
	switch m.dialect {
	case DialectPostgres:
		query = "INSERT INTO schema_migrations (version, description, applied_at) VALUES ($1, $2, $3)"
	default:
		query = "INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)"
	}
	_, err := m.db.Exec(query, version, description, time.Now())
	return err
}

// GetCurrentVersion returns the current migration version (public method)
func (m *MigrationManager) GetCurrentVersion() (int, error) {
	return m.getCurrentVersion()
}
