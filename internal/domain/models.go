package domain

// PlayerRecord is one ladder entry discovered by the roster stage. Rows are
// written once per puuid and never updated; a later run inserting the same
// player is a no-op.
type PlayerRecord struct {
	PlayerID        string // puuid
	CurrentTier     string
	CurrentDivision string
	CollectedOn     string // YYYY-MM-DD
}

// MatchRef links a match id to the player whose history lookup discovered it.
// A match found through several players is stored once, first writer wins.
type MatchRef struct {
	MatchID  string
	PlayerID string
}

// TeamStat holds one side's objective counters for a match; every match
// yields exactly two rows.
type TeamStat struct {
	MatchID         string
	TeamID          int
	AtakhanKills    int
	BaronKills      int
	ChampionKills   int
	DragonKills     int
	DragonSoul      bool
	HordeKills      int
	RiftHeraldKills int
	TowerKills      int
	Win             bool
	GameTier        string
	EndOfGameResult string
}

// ParticipantStat is one player's performance line in one match.
type ParticipantStat struct {
	PlayerID string
	MatchID  string
	TeamID   int
	GameTier string

	Kills   int
	Assists int
	Deaths  int
	KDA     float64

	GoldEarned                int
	GoldPerMinute             float64
	TotalMinionsKilled        int
	MaxLevelLeadLaneOpponent  int
	LaneMinionsFirst10Minutes int

	DamagePerMinute   float64
	KillParticipation float64

	ControlWardsPlaced      int
	WardsPlaced             int
	WardsKilled             int
	VisionScore             int
	VisionWardsBoughtInGame int

	AssistMePings     int
	AllInPings        int
	EnemyMissingPings int
	NeedVisionPings   int
	OnMyWayPings      int
	GetBackPings      int
	PushPings         int
	HoldPings         int

	ChampionName       string
	IndividualPosition string
	TeamPosition       string

	HadOpenNexus    bool
	Win             bool
	EndOfGameResult string
}

// TimelineEvent is one instantaneous timeline row: either an allow-listed
// match event or a per-minute participant position sample.
//
// PlayerID may be the "minion" sentinel for events no participant triggered;
// for BUILDING_KILL events TeamID is the team that lost the structure, not
// the killer's team.
type TimelineEvent struct {
	MatchID      string
	PlayerID     string
	TeamID       int
	InGameID     int
	TeamPosition string
	X            int
	Y            int
	Timestamp    int64
	EventName    string
	EventType    string
}
