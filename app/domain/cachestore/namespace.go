package cachestore

import "time"

// Namespace is a logical partition of the durable cache. Each namespace maps
// to its own table and carries a staleness horizon; a zero horizon means
// records are permanent once written. Write eligibility is decided by
// Classify, not by the store itself.
type Namespace struct {
	name    string
	table   string
	horizon time.Duration
}

func (n Namespace) Name() string { return n.name }

func (n Namespace) Table() string { return n.table }

func (n Namespace) Horizon() time.Duration { return n.horizon }

// Permanent reports whether records in this namespace never go stale.
func (n Namespace) Permanent() bool { return n.horizon == 0 }

var (
	// CompletedEvents holds full scoreboard batches keyed by date. Written
	// only when every event in the batch is Final.
	CompletedEvents = Namespace{name: "completed-events", table: "completed_events_cache"}

	// EventDetail holds boxscores for single Final events, keyed by event id.
	EventDetail = Namespace{name: "event-detail", table: "boxscore_cache"}

	// PlayByPlay holds play-by-play feeds, written only when the caller
	// flags the source event as Final.
	PlayByPlay = Namespace{name: "event-detail-pbp", table: "playbyplay_cache"}

	// Discussion holds social heat and comment payloads for Final events.
	Discussion = Namespace{name: "discussion", table: "discussion_cache"}

	// EventSchedule holds future matchup batches keyed by date.
	EventSchedule = Namespace{name: "event-schedule", table: "schedule_cache", horizon: 24 * time.Hour}

	// Standings holds the league table.
	Standings = Namespace{name: "standings", table: "standings_cache", horizon: 6 * time.Hour}
)

// All returns every namespace, in table-creation order.
func All() []Namespace {
	return []Namespace{CompletedEvents, EventDetail, PlayByPlay, Discussion, EventSchedule, Standings}
}
