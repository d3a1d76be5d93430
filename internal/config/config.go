package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"rift-collector/internal/constants"
)

// ValidTiers is the closed set of ranked tiers the roster collector accepts,
// ordered ladder-top first. CHALLENGER is the apex tier and has no divisions.
var ValidTiers = []string{
	"CHALLENGER", "MASTER", "DIAMOND", "EMERALD",
	"PLATINUM", "GOLD", "SILVER", "BRONZE", "IRON",
}

var ValidDivisions = []string{"I", "II", "III", "IV"}

// ApexTier paginates without divisions.
const ApexTier = "CHALLENGER"

// regionalRoutes maps a platform routing value (league-v4 host) to the
// regional routing value match-v5 lives on.
var regionalRoutes = map[string]string{
	"br1": "americas", "la1": "americas", "la2": "americas", "na1": "americas",
	"euw1": "europe", "eun1": "europe", "tr1": "europe", "ru": "europe",
	"jp1": "asia", "kr": "asia",
	"oc1": "sea", "ph2": "sea", "sg2": "sea", "th2": "sea", "tw2": "sea", "vn2": "sea",
}

// StageFlags selects which pipeline stages a run executes.
type StageFlags struct {
	Roster      bool
	MatchIDs    bool
	MatchDetail bool
	Timeline    bool
}

// ParseStageFlags parses a four-character mask of 0s and 1s, e.g. "1100".
func ParseStageFlags(mask string) (StageFlags, error) {
	if len(mask) != 4 {
		return StageFlags{}, fmt.Errorf("stage mask must be exactly four characters of 0 or 1, got %q", mask)
	}
	on := make([]bool, 4)
	for i, c := range mask {
		switch c {
		case '0':
		case '1':
			on[i] = true
		default:
			return StageFlags{}, fmt.Errorf("stage mask must contain only 0 or 1, got %q", mask)
		}
	}
	return StageFlags{Roster: on[0], MatchIDs: on[1], MatchDetail: on[2], Timeline: on[3]}, nil
}

type Config struct {
	RiotAPIKey string
	DBPath     string

	Platform      string // platform routing value, e.g. "euw1"
	RegionalRoute string // derived from Platform, e.g. "europe"
	Queue         string

	Stages     StageFlags
	Tiers      []string
	Divisions  []string
	PageLimit  int // -1 means unlimited
	BatchLimit int

	RateCalls  int
	RateWindow time.Duration

	EventTypes []string
}

// Options are the run-shaped knobs the CLI exposes; zero values fall back to
// defaults here.
type Options struct {
	DBPath     string
	Platform   string
	StageMask  string
	Tiers      []string
	Divisions  []string
	PageLimit  int
	BatchLimit int
	RateCalls  int
	RateWindow time.Duration
}

// Load builds a validated Config from the environment and CLI options.
// All validation happens here, before any network or database I/O.
func Load(logger zerolog.Logger, opts Options) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey: getEnv("RIOT_API_KEY", ""),
		DBPath:     opts.DBPath,
		Platform:   opts.Platform,
		Queue:      constants.DefaultQueue,
		Tiers:      opts.Tiers,
		Divisions:  opts.Divisions,
		PageLimit:  opts.PageLimit,
		BatchLimit: opts.BatchLimit,
		RateCalls:  opts.RateCalls,
		RateWindow: opts.RateWindow,
		EventTypes: []string{"ELITE_MONSTER_KILL", "CHAMPION_KILL", "BUILDING_KILL"},
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = getEnv("DB_PATH", "riot_data.db")
	}
	if cfg.Platform == "" {
		cfg.Platform = getEnv("RIOT_PLATFORM", "euw1")
	}
	route, ok := regionalRoutes[cfg.Platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q", cfg.Platform)
	}
	cfg.RegionalRoute = route

	stages, err := ParseStageFlags(orDefault(opts.StageMask, "1111"))
	if err != nil {
		return nil, err
	}
	cfg.Stages = stages

	if len(cfg.Tiers) == 0 {
		cfg.Tiers = ValidTiers
	}
	if len(cfg.Divisions) == 0 {
		cfg.Divisions = ValidDivisions
	}
	for i, tier := range cfg.Tiers {
		cfg.Tiers[i] = strings.ToUpper(tier)
		if !contains(ValidTiers, cfg.Tiers[i]) {
			return nil, fmt.Errorf("invalid tier %q, must be one of %s", tier, strings.Join(ValidTiers, ", "))
		}
	}
	for i, division := range cfg.Divisions {
		cfg.Divisions[i] = strings.ToUpper(division)
		if !contains(ValidDivisions, cfg.Divisions[i]) {
			return nil, fmt.Errorf("invalid division %q, must be one of %s", division, strings.Join(ValidDivisions, ", "))
		}
	}

	if cfg.PageLimit == 0 {
		cfg.PageLimit = -1
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = constants.DefaultBatchLimit
	}
	if cfg.RateCalls <= 0 {
		cfg.RateCalls = constants.DefaultRateCalls
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = constants.DefaultRateWindow
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("platform", cfg.Platform).
		Str("regional_route", cfg.RegionalRoute).
		Bool("stage_roster", cfg.Stages.Roster).
		Bool("stage_match_ids", cfg.Stages.MatchIDs).
		Bool("stage_match_detail", cfg.Stages.MatchDetail).
		Bool("stage_timeline", cfg.Stages.Timeline).
		Int("rate_calls", cfg.RateCalls).
		Dur("rate_window", cfg.RateWindow).
		Int("batch_limit", cfg.BatchLimit).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
