package cacherepo

import (
	"context"
	"errors"
	"time"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/infrastructure/database/dbschema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errStoreDisabled = errors.New("durable cache store disabled")

type CacheGormRepository struct {
	db *gorm.DB
}

func NewCacheGormRepository(db *gorm.DB) cachestore.Repository {
	return &CacheGormRepository{db: db}
}

func (r *CacheGormRepository) Put(ctx context.Context, ns cachestore.Namespace, key string, payload []byte, writtenAt time.Time) error {
	if r.db == nil {
		return errStoreDisabled
	}
	record := dbschema.CacheRecord{
		Key:      key,
		Data:     payload,
		CachedAt: writtenAt,
	}
	return r.db.WithContext(ctx).
		Table(ns.Table()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "cached_at"}),
		}).
		Create(&record).Error
}

func (r *CacheGormRepository) Get(ctx context.Context, ns cachestore.Namespace, key string) ([]byte, time.Time, bool, error) {
	if r.db == nil {
		return nil, time.Time{}, false, errStoreDisabled
	}
	var record dbschema.CacheRecord
	err := r.db.WithContext(ctx).
		Table(ns.Table()).
		Where("key = ?", key).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return record.Data, record.CachedAt, true, nil
}

func (r *CacheGormRepository) Counts(ctx context.Context) (map[string]int64, error) {
	if r.db == nil {
		return nil, errStoreDisabled
	}
	counts := make(map[string]int64, len(cachestore.All()))
	for _, ns := range cachestore.All() {
		var count int64
		if err := r.db.WithContext(ctx).Table(ns.Table()).Count(&count).Error; err != nil {
			return nil, err
		}
		counts[ns.Name()] = count
	}
	return counts, nil
}
