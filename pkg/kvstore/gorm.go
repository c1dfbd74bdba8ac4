package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValue is the row backing GormStorage. Values are JSON documents.
type KeyValue struct {
	Key       string         `gorm:"primaryKey;size:128"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (KeyValue) TableName() string {
	return "brain_kv"
}

// GormStorage persists into a single jsonb table. It only accepts values that
// are valid JSON, which is what the stores write.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if err := db.AutoMigrate(&KeyValue{}); err != nil {
		return nil, fmt.Errorf("migrate brain_kv: %w", err)
	}
	return &GormStorage{db: db}, nil
}

func (s *GormStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if !validKey(key) {
		return "", false, ErrInvalidKey
	}
	var row KeyValue
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(row.Value), true, nil
}

func (s *GormStorage) Set(ctx context.Context, key, value string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	row := KeyValue{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
