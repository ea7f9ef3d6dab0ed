package cachestore

import "courtside.ai/data-service/app/domain/lifecycle"

// CacheAction is the caching decision for a fetched batch.
type CacheAction int

const (
	// StoreNone caches nothing; the result is returned to the caller as-is.
	StoreNone CacheAction = iota
	// StoreEphemeral writes to the in-process tier only.
	StoreEphemeral
	// StoreDurable writes through to the durable tier (callers also keep the
	// ephemeral tier warm).
	StoreDurable
)

// Classify maps a namespace and the lifecycle states backing a fetched batch
// to a caching action. It is pure: no clock, no I/O.
//
// completed-events requires every event in the batch to be Final; a single
// non-Final event degrades the whole batch to the ephemeral tier. Detail and
// discussion namespaces require exactly one backing event, confirmed Final.
// Schedule and standings writes are unconditional, guarded only against empty
// batches where a batch applies.
func Classify(ns Namespace, states []lifecycle.State) CacheAction {
	switch ns {
	case CompletedEvents:
		if len(states) == 0 {
			return StoreNone
		}
		if allFinal(states) {
			return StoreDurable
		}
		return StoreEphemeral
	case EventDetail, PlayByPlay, Discussion:
		if len(states) == 1 && states[0] == lifecycle.StateFinal {
			return StoreDurable
		}
		return StoreEphemeral
	case EventSchedule:
		if len(states) == 0 {
			return StoreNone
		}
		return StoreDurable
	case Standings:
		return StoreDurable
	default:
		return StoreEphemeral
	}
}

func allFinal(states []lifecycle.State) bool {
	for _, s := range states {
		if s != lifecycle.StateFinal {
			return false
		}
	}
	return true
}
