package dbschema

import "time"

// EventEndMarker records the first time an event was observed Final. The
// primary key makes concurrent first observations race-safe: the insert uses
// ON CONFLICT DO NOTHING, so exactly one timestamp ever lands.
type EventEndMarker struct {
	EventID    string    `gorm:"primaryKey;size:64"`
	RecordedAt time.Time `gorm:"not null"`
}
