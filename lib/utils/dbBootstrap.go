package utils

import (
	"errors"

	"github.com/hilite/hilite-go/lib/exception"
	"github.com/hilite/hilite-go/lib/settings"
	"github.com/hilite/hilite-go/lib/store"
	"go.uber.org/zap"
)

// GetDB opens the configured datastore backend.
func GetDB(retrievedSettings *settings.Settings, logger *zap.SugaredLogger) (store.DataStore, error) {
	switch retrievedSettings.DBType {
	case settings.MEMORY:
		logger.Info("Using in-memory datastore")
		return store.NewMemoryDataStore(), nil
	case settings.SQLITE:
		logger.Infow("Using sqlite datastore", "filename", retrievedSettings.DBSettings.Filename)
		sqliteDB, err := store.NewSQLiteDB(retrievedSettings.DBSettings.Filename)
		if err != nil {
			return nil, exception.NewDatabaseError("opening sqlite datastore", err)
		}
		return sqliteDB, nil
	case settings.POSTGRES:
		logger.Infow("Using postgres datastore", "host", retrievedSettings.DBSettings.Host)
		postgresDB, err := store.NewPostgresDB(store.PostgresOptions{
			Host:     retrievedSettings.DBSettings.Host,
			Port:     retrievedSettings.DBSettings.Port,
			Username: retrievedSettings.DBSettings.User,
			Password: retrievedSettings.DBSettings.Password,
			Database: retrievedSettings.DBSettings.Database,
		})
		if err != nil {
			return nil, exception.NewDatabaseError("opening postgres datastore", err)
		}
		return postgresDB, nil
	default:
		return nil, errors.New("unsupported DB type: " + retrievedSettings.DBType.String())
	}
}
