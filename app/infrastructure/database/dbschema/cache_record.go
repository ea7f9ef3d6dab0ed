package dbschema

import "time"

// CacheRecord is the row shape shared by every namespace table: at most one
// record per key, replaced on conflict.
type CacheRecord struct {
	Key      string    `gorm:"primaryKey;size:255"`
	Data     []byte    `gorm:"not null"`
	CachedAt time.Time `gorm:"not null"`
}
