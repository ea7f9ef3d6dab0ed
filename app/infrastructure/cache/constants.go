package cache

import "time"

// EphemeralTTL is the uniform TTL applied to every ephemeral entry.
const EphemeralTTL = 5 * time.Minute

const (
	CacheVersion = "v1"

	EventsByDateKeyPattern = CacheVersion + ":events:date:%s"
	ScheduleKeyPattern     = CacheVersion + ":schedule:%s"
	StandingsKey           = CacheVersion + ":standings"
	BoxscoreKeyPattern     = CacheVersion + ":boxscore:%s"
	PlayByPlayKeyPattern   = CacheVersion + ":playbyplay:%s"

	HeatKeyPattern     = CacheVersion + ":social:heat:%s:%s:%s"
	CommentsKeyPattern = CacheVersion + ":social:comments:%s:%s:%s:%d"

	MarketsOddsKey           = CacheVersion + ":markets:odds"
	MarketsPropsKey          = CacheVersion + ":markets:props"
	MarketsHistoryKeyPattern = CacheVersion + ":markets:history:%s"
)
