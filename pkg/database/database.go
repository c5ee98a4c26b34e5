package database

import (
	"github.com/circlet-app/backend/pkg/config"
	"github.com/circlet-app/backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the PostgreSQL connection. TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey and the
// store layer can map them to conflict errors.
func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info("connected to PostgreSQL")
	return db, nil
}

// CloseDB closes the underlying connection pool.
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("getting SQL DB from GORM: " + err.Error())
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("closing PostgreSQL connection: " + err.Error())
	}
}
