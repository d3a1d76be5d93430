package riot

// LeagueEntry is one ladder row from the league-exp entries endpoint.
type LeagueEntry struct {
	Puuid        string `json:"puuid"`
	LeagueID     string `json:"leagueId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Match is the match-v5 detail payload, trimmed to the fields the
// detail collector extracts.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameDuration     int64         `json:"gameDuration"`
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	EndOfGameResult  string        `json:"endOfGameResult"`
	Teams            []Team        `json:"teams"`
	Participants     []Participant `json:"participants"`
}

type Team struct {
	TeamID     int        `json:"teamId"`
	Win        bool       `json:"win"`
	Objectives Objectives `json:"objectives"`
}

type Objectives struct {
	Atakhan    Objective `json:"atakhan"`
	Baron      Objective `json:"baron"`
	Champion   Objective `json:"champion"`
	Dragon     Objective `json:"dragon"`
	Horde      Objective `json:"horde"`
	RiftHerald Objective `json:"riftHerald"`
	Tower      Objective `json:"tower"`
}

// Objective decodes to zero kills when the payload omits the block
// entirely (older matches predate atakhan and horde).
type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

type Participant struct {
	Puuid  string `json:"puuid"`
	TeamID int    `json:"teamId"`

	Kills   int `json:"kills"`
	Assists int `json:"assists"`
	Deaths  int `json:"deaths"`

	GoldEarned              int `json:"goldEarned"`
	TotalMinionsKilled      int `json:"totalMinionsKilled"`
	WardsPlaced             int `json:"wardsPlaced"`
	WardsKilled             int `json:"wardsKilled"`
	VisionScore             int `json:"visionScore"`
	VisionWardsBoughtInGame int `json:"visionWardsBoughtInGame"`

	AssistMePings     int `json:"assistMePings"`
	AllInPings        int `json:"allInPings"`
	EnemyMissingPings int `json:"enemyMissingPings"`
	NeedVisionPings   int `json:"needVisionPings"`
	OnMyWayPings      int `json:"onMyWayPings"`
	GetBackPings      int `json:"getBackPings"`
	PushPings         int `json:"pushPings"`
	HoldPings         int `json:"holdPings"`

	ChampionName       string `json:"championName"`
	IndividualPosition string `json:"individualPosition"`
	TeamPosition       string `json:"teamPosition"`
	Win                bool   `json:"win"`

	Challenges Challenges `json:"challenges"`
}

type Challenges struct {
	Takedowns                 int     `json:"takedowns"`
	KDA                       float64 `json:"kda"`
	MaxLevelLeadLaneOpponent  int     `json:"maxLevelLeadLaneOpponent"`
	LaneMinionsFirst10Minutes int     `json:"laneMinionsFirst10Minutes"`
	DamagePerMinute           float64 `json:"damagePerMinute"`
	KillParticipation         float64 `json:"killParticipation"`
	ControlWardsPlaced        int     `json:"controlWardsPlaced"`
	HadOpenNexus              int     `json:"hadOpenNexus"`
}

// Timeline is the match-v5 timeline payload: the participant id map plus
// the per-minute frame stream.
type Timeline struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     TimelineInfo  `json:"info"`
}

type TimelineInfo struct {
	Participants []TimelineParticipant `json:"participants"`
	Frames       []Frame               `json:"frames"`
}

// TimelineParticipant maps a match-local numeric id (1..10) to the stable
// puuid. Id 0 never appears here; it is the non-player actor.
type TimelineParticipant struct {
	ParticipantID int    `json:"participantId"`
	Puuid         string `json:"puuid"`
}

type Frame struct {
	Timestamp         int64                       `json:"timestamp"`
	Events            []TimelineEvent             `json:"events"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"`
}

type TimelineEvent struct {
	Type         string   `json:"type"`
	Timestamp    int64    `json:"timestamp"`
	KillerID     int      `json:"killerId"`
	KillerTeamID int      `json:"killerTeamId"`
	MonsterType  string   `json:"monsterType"`
	BuildingType string   `json:"buildingType"`
	TeamID       int      `json:"teamId"`
	Position     Position `json:"position"`
}

type ParticipantFrame struct {
	Position Position `json:"position"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}
