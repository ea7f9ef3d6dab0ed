package markerrepo

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

type MarkerGormRepository struct {
	db *gorm.DB
}

func NewMarkerGormRepository(db *gorm.DB) cachestore.MarkerRepository {
	return &MarkerGormRepository{db: db}
}

// RecordOnce inserts the marker if absent. The primary-key conflict clause
// makes this atomic under concurrent observers: the first insert wins and
// later ones are silently dropped by the storage engine.
func (r *MarkerGormRepository) RecordOnce(ctx context.Context, eventID string, at time.Time) error {
	if r.db == nil {
		return errStoreDisabled
	}
	marker := dbschema.EventEndMarker{
		EventID:    eventID,
		RecordedAt: at,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&marker).Error
}

func (r *MarkerGormRepository) RecordedAt(ctx context.Context, eventID string) (time.Time, bool, error) {
	if r.db == nil {
		return time.Time{}, false, errStoreDisabled
	}
	var marker dbschema.EventEndMarker
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return marker.RecordedAt, true, nil
}
