package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog/config"
	"catalog/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database. For sqlite the database file
// and its directory are created when missing.
func Open(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case config.DriverSQLite:
		if err := ensureSQLiteFile(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(cfg.DatabaseURL)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(logger),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	logger.WithFields(logrus.Fields{
		"driver": cfg.DBDriver,
	}).Info("Database connected successfully")

	return conn, nil
}

// Migrate creates or updates the categories and products tables.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureSQLiteFile(dsn string, logger *logrus.Logger) error {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}

	dbPath := dsn
	if i := strings.IndexByte(dbPath, '?'); i >= 0 {
		dbPath = dbPath[:i]
	}

	// Ensure the directory exists (create if it doesn't)
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		logger.WithField("path", dbPath).Info("Database file does not exist, creating")
		file, err := os.Create(dbPath)
		if err != nil {
			return fmt.Errorf("failed to create database file: %w", err)
		}
		file.Close()
	}
	return nil
}

func gormLogLevel(logger *logrus.Logger) gormlogger.LogLevel {
	switch {
	case logger.IsLevelEnabled(logrus.TraceLevel):
		return gormlogger.Info
	case logger.IsLevelEnabled(logrus.WarnLevel):
		return gormlogger.Warn
	case logger.IsLevelEnabled(logrus.ErrorLevel):
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}
