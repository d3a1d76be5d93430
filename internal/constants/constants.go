package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
)

// SQLite with a single sequential writer; no reason to hold more connections.
const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

// Riot development keys allow 100 calls per 120 seconds.
const (
	DefaultRateCalls  = 100
	DefaultRateWindow = 120 * time.Second
)

const (
	DefaultBatchLimit = 1000
	DefaultQueue      = "RANKED_SOLO_5x5"
)

// MinionActorID is the player id stored for timeline events no participant
// triggered (in-game id 0: minions and neutral monsters).
const MinionActorID = "minion"

// DragonSoulThreshold is the dragon kill count at which a team holds the soul.
const DragonSoulThreshold = 4
