package database

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"signature-explorer/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

var DB *gorm.DB

// InitDB opens the history database at path and keeps it as the package default.
func InitDB(path string) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&models.ImportRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// History stores import submissions. A nil *History records nothing.
type History struct {
	db *gorm.DB
}

func NewHistory(db *gorm.DB) *History {
	if db == nil {
		return nil
	}
	return &History{db: db}
}

func (h *History) Record(ctx context.Context, rec *models.ImportRecord) error {
	if h == nil {
		return nil
	}
	if err := h.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return nil
}

// Recent returns the newest records first. limit is clamped to MaxHistoryLimit
// and falls back to DefaultHistoryLimit when not positive.
func (h *History) Recent(ctx context.Context, limit int) ([]models.ImportRecord, error) {
	records := []models.ImportRecord{}
	if h == nil {
		return records, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	err := h.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("load import history: %w", err)
	}
	return records, nil
}

func (h *History) Close() error {
	if h == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
