package catalog

import "courtside.ai/data-service/app/domain/lifecycle"

// LifecycleState aliases the shared state type so callers of the catalog
// never need the leaf package directly.
type LifecycleState = lifecycle.State

const (
	StateScheduled = lifecycle.StateScheduled
	StateLive      = lifecycle.StateLive
	StateFinal     = lifecycle.StateFinal
)

// Participant is one side of a contest.
type Participant struct {
	TeamID  int64  `json:"teamId"`
	Name    string `json:"teamName"`
	City    string `json:"teamCity"`
	Tricode string `json:"teamTricode"`
	Score   int    `json:"score"`
}

// EventRecord is one scheduled contest normalized from the scoreboard
// upstream. It is mutated only by fetch paths merging upstream responses;
// the cache layer stores it as an opaque payload.
type EventRecord struct {
	EventID       string         `json:"eventId"`
	State         LifecycleState `json:"lifecycleState"`
	StatusText    string         `json:"statusText"`
	Period        int            `json:"period"`
	Clock         string         `json:"clock"`
	Home          Participant    `json:"homeTeam"`
	Away          Participant    `json:"awayTeam"`
	LocalDate     string         `json:"localDate"`
	SourceTimeUTC string         `json:"sourceTimeUTC"`
}

func (e EventRecord) IsFinal() bool {
	return e.State == StateFinal
}

// States projects the lifecycle states of a batch, in order.
func States(events []EventRecord) []LifecycleState {
	states := make([]LifecycleState, len(events))
	for i, e := range events {
		states[i] = e.State
	}
	return states
}
