package db

import (
	"fmt"

	"catalog/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OpenInMemory opens a private, migrated in-memory sqlite database.
func OpenInMemory(logger *logrus.Logger) (*gorm.DB, error) {
	conn, err := Open(&config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}
