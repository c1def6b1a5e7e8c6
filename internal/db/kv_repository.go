package db

import (
	"errors"

	"github.com/terraincognita07/luna/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueRepository persists opaque string blobs by key.
type KeyValueRepository struct {
	database *gorm.DB
}

func NewKeyValueRepository(database *gorm.DB) *KeyValueRepository {
	return &KeyValueRepository{database: database}
}

func (repo *KeyValueRepository) Get(key string) (string, bool, error) {
	var entry models.KVEntry
	err := repo.database.Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (repo *KeyValueRepository) Set(key string, value string) error {
	return upsertEntries(repo.database, []models.KVEntry{{Key: key, Value: value}})
}

// SetAll upserts every pair in one transaction.
func (repo *KeyValueRepository) SetAll(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	entries := make([]models.KVEntry, 0, len(values))
	for key, value := range values {
		entries = append(entries, models.KVEntry{Key: key, Value: value})
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return upsertEntries(tx, entries)
	})
}

func upsertEntries(database *gorm.DB, entries []models.KVEntry) error {
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entries).Error
}

// RemoveAll deletes the given keys in one transaction. Missing keys are
// ignored.
func (repo *KeyValueRepository) RemoveAll(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return tx.Where("entry_key IN ?", keys).Delete(&models.KVEntry{}).Error
	})
}
