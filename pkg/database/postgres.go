package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolOptions tunes the sql.DB connection pool
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool is used by NewPostgresDB
var DefaultPool = PoolOptions{MaxOpenConns: 25, MaxIdleConns: 10, ConnMaxLifetime: time.Hour}

// NewPostgresDB opens a GORM connection to PostgreSQL
func NewPostgresDB(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(DefaultPool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(DefaultPool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(DefaultPool.ConnMaxLifetime)

	return db, nil
}

// NewMigrator builds a golang-migrate instance over sqlDB reading migrationsPath
func NewMigrator(sqlDB *sql.DB, migrationsPath string) (*migrateV4.Migrate, error) {
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database is not reachable: %w", err)
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate postgres driver: %w", err)
	}

	m, err := migrateV4.NewWithDatabaseInstance(sourceURL(migrationsPath), "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateDB applies all pending up migrations
func MigrateDB(db *gorm.DB, migrationsPath string) error {
	log.Printf("[Database] applying migrations from %s", migrationsPath)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	m, err := NewMigrator(sqlDB, migrationsPath)
	if err != nil {
		return err
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrateV4.ErrNoChange):
		log.Println("[Database] schema is up to date")
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	default:
		log.Println("[Database] migrations applied")
	}
	return nil
}

func sourceURL(path string) string {
	if path == "" {
		path = "migrations"
	}
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}
