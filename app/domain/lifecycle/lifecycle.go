// Package lifecycle holds the event lifecycle states shared by the catalog
// and the cache freshness policy. It imports nothing from the domain so both
// sides can depend on it.
package lifecycle

// State is the coarse status of an event as reported by the scoreboard
// upstream: 1=Scheduled, 2=Live, 3=Final.
type State int

const (
	StateScheduled State = 1
	StateLive      State = 2
	StateFinal     State = 3
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateLive:
		return "live"
	case StateFinal:
		return "final"
	default:
		return "unknown"
	}
}
