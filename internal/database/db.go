// Package database stores a read-only snapshot of the rhyme reference table
// in SQLite through gorm.
package database

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// SchemaVersion is bumped whenever the snapshot layout changes.
const SchemaVersion = 1

// DB wraps the gorm connection
type DB struct {
	*gorm.DB
}

// Open opens a connection to the SQLite database
func Open(path string) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_journal_mode=WAL"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: gormDB}, nil
}

// NewDBFromGorm wraps an existing gorm connection.
func NewDBFromGorm(gormDB *gorm.DB) *DB {
	return &DB{DB: gormDB}
}

// Migrate creates the tables and records the schema version
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(&RhymeEntry{}, &Metadata{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return db.setMetadata(db.DB, MetaSchemaVersion, []byte(strconv.Itoa(SchemaVersion)))
}

// GetSchemaVersion returns the current schema version, 0 for an empty database.
func (db *DB) GetSchemaVersion() (int, error) {
	var meta Metadata
	err := db.Where("key = ?", MetaSchemaVersion).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(meta.Value))
}

func (db *DB) setMetadata(tx *gorm.DB, key string, value []byte) error {
	meta := Metadata{Key: key, Value: datatypes.JSON(value)}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
	if err != nil {
		return fmt.Errorf("failed to write metadata %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
