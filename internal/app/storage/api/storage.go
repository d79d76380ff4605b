package storage

import (
	"go.uber.org/zap"

	"github.com/tcarranza/go-delivery-core/internal/app/config"
	"github.com/tcarranza/go-delivery-core/internal/app/storage/api/model"
	"github.com/tcarranza/go-delivery-core/internal/app/storage/memory"
	"github.com/tcarranza/go-delivery-core/internal/app/storage/postgres"
)

// InitStorage picks the postgres implementation when a database is
// configured and falls back to the in-memory one otherwise.
func InitStorage(config config.Config) (model.Storage, error) {
	if len(config.DBConnect) == 0 {
		zap.L().Info("no database configured, using in-memory storage")
		return memory.NewMemoryStorage(), nil
	}

	return postgres.NewPostgresStorage(config.DBConnect)
}
