package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is the single-table layout backing the Postgres KV option:
// one row per record, JSON value column.
type KVRecord struct {
	Key   string         `gorm:"primaryKey;size:255"`
	Value datatypes.JSON `gorm:"not null"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}

// GormKV implements KV on top of a relational database through GORM.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv_records: %w", err)
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec KVRecord
	err := g.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(rec.Value), true, nil
}

func (g *GormKV) Set(ctx context.Context, key string, value []byte) error {
	rec := KVRecord{Key: key, Value: datatypes.JSON(value)}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (g *GormKV) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Delete(&KVRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (g *GormKV) DeletePrefix(ctx context.Context, prefix string) error {
	if err := g.db.WithContext(ctx).Delete(&KVRecord{}, "key LIKE ?", prefix+"%").Error; err != nil {
		return fmt.Errorf("delete prefix %s: %w", prefix, err)
	}
	return nil
}

func (g *GormKV) List(ctx context.Context, prefix string) ([][]byte, error) {
	var recs []KVRecord
	if err := g.db.WithContext(ctx).Find(&recs, "key LIKE ?", prefix+"%").Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	out := make([][]byte, 0, len(recs))
	for _, rec := range recs {
		out = append(out, []byte(rec.Value))
	}
	return out, nil
}
