package collector

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"rift-collector/internal/constants"
	"rift-collector/internal/domain"
	"rift-collector/internal/repository"
	"rift-collector/internal/riot"
)

// ErrNoTierVotes means no participant of a match produced a usable tier
// lookup, so the match cannot be classified.
var ErrNoTierVotes = errors.New("no tier data for any participant")

// MatchDetailCollector fetches full detail for every discovered match and
// derives the team- and participant-level aggregate rows, including the
// majority-vote tier classification.
type MatchDetailCollector struct {
	api    API
	store  *repository.Store
	writer *repository.BatchWriter
	logger zerolog.Logger
}

func NewMatchDetailCollector(api API, store *repository.Store, writer *repository.BatchWriter, logger zerolog.Logger) *MatchDetailCollector {
	return &MatchDetailCollector{api: api, store: store, writer: writer, logger: logger}
}

func (c *MatchDetailCollector) Run(ctx context.Context) error {
	matchIDs, err := c.store.AllMatchIDs(ctx)
	if err != nil {
		return err
	}
	c.logger.Info().Int("matches", len(matchIDs)).Msg("collecting match detail")

	for _, matchID := range matchIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		match, err := c.api.Match(ctx, matchID)
		if err != nil {
			c.logger.Warn().Err(err).Str("match_id", matchID).Msg("match fetch failed, match skipped")
			continue
		}

		gameTier, err := c.majorityTier(ctx, match.Metadata.Participants)
		if errors.Is(err, ErrNoTierVotes) {
			c.logger.Warn().Str("match_id", matchID).Msg("no tier votes, match stored unclassified")
			gameTier = ""
		}

		if len(match.Info.Teams) != 2 {
			c.logger.Warn().
				Str("match_id", matchID).
				Int("teams", len(match.Info.Teams)).
				Msg("unexpected team count, match skipped")
			continue
		}
		for _, team := range match.Info.Teams {
			c.writer.AddTeamStat(ctx, teamStat(matchID, gameTier, match.Info.EndOfGameResult, team))
		}

		minutes := gameMinutes(match.Info)
		for _, p := range match.Info.Participants {
			c.writer.AddParticipantStat(ctx, participantStat(matchID, gameTier, match.Info.EndOfGameResult, minutes, p))
		}
	}

	return c.writer.FlushAll(ctx)
}

// majorityTier classifies a match as the most frequent current tier among
// its participants. Each vote is one further API call; failed or unranked
// lookups are excluded. Ties break toward the tier whose winning count was
// reached first.
func (c *MatchDetailCollector) majorityTier(ctx context.Context, playerIDs []string) (string, error) {
	counts := make(map[string]int)
	var best string
	var bestCount int

	for _, playerID := range playerIDs {
		tier, err := c.api.PlayerTier(ctx, playerID)
		if err != nil {
			c.logger.Warn().Err(err).Str("player_id", playerID).Msg("tier lookup failed, vote excluded")
			continue
		}
		if tier == "" {
			continue
		}
		counts[tier]++
		if counts[tier] > bestCount {
			best = tier
			bestCount = counts[tier]
		}
	}

	if bestCount == 0 {
		return "", ErrNoTierVotes
	}
	return best, nil
}

// gameMinutes converts the reported game duration to minutes. When the end
// timestamp is present the duration is in seconds; when it is absent the
// upstream API reports tenths of a second instead. This quirk tracks an API
// versioning change and must not be "fixed".
func gameMinutes(info riot.MatchInfo) float64 {
	if info.GameEndTimestamp != 0 {
		return float64(info.GameDuration) / 60
	}
	return float64(info.GameDuration) / 600
}

func teamStat(matchID, gameTier, endOfGameResult string, team riot.Team) domain.TeamStat {
	return domain.TeamStat{
		MatchID:         matchID,
		TeamID:          team.TeamID,
		AtakhanKills:    team.Objectives.Atakhan.Kills,
		BaronKills:      team.Objectives.Baron.Kills,
		ChampionKills:   team.Objectives.Champion.Kills,
		DragonKills:     team.Objectives.Dragon.Kills,
		DragonSoul:      team.Objectives.Dragon.Kills >= constants.DragonSoulThreshold,
		HordeKills:      team.Objectives.Horde.Kills,
		RiftHeraldKills: team.Objectives.RiftHerald.Kills,
		TowerKills:      team.Objectives.Tower.Kills,
		Win:             team.Win,
		GameTier:        gameTier,
		EndOfGameResult: endOfGameResult,
	}
}

func participantStat(matchID, gameTier, endOfGameResult string, minutes float64, p riot.Participant) domain.ParticipantStat {
	var goldPerMinute float64
	if minutes > 0 {
		goldPerMinute = float64(p.GoldEarned) / minutes
	}

	return domain.ParticipantStat{
		PlayerID: p.Puuid,
		MatchID:  matchID,
		TeamID:   p.TeamID,
		GameTier: gameTier,

		Kills:   p.Challenges.Takedowns,
		Assists: p.Assists,
		Deaths:  p.Deaths,
		KDA:     p.Challenges.KDA,

		GoldEarned:                p.GoldEarned,
		GoldPerMinute:             goldPerMinute,
		TotalMinionsKilled:        p.TotalMinionsKilled,
		MaxLevelLeadLaneOpponent:  p.Challenges.MaxLevelLeadLaneOpponent,
		LaneMinionsFirst10Minutes: p.Challenges.LaneMinionsFirst10Minutes,

		DamagePerMinute:   p.Challenges.DamagePerMinute,
		KillParticipation: p.Challenges.KillParticipation,

		ControlWardsPlaced:      p.Challenges.ControlWardsPlaced,
		WardsPlaced:             p.WardsPlaced,
		WardsKilled:             p.WardsKilled,
		VisionScore:             p.VisionScore,
		VisionWardsBoughtInGame: p.VisionWardsBoughtInGame,

		AssistMePings:     p.AssistMePings,
		AllInPings:        p.AllInPings,
		EnemyMissingPings: p.EnemyMissingPings,
		NeedVisionPings:   p.NeedVisionPings,
		OnMyWayPings:      p.OnMyWayPings,
		GetBackPings:      p.GetBackPings,
		PushPings:         p.PushPings,
		HoldPings:         p.HoldPings,

		ChampionName:       p.ChampionName,
		IndividualPosition: p.IndividualPosition,
		TeamPosition:       p.TeamPosition,

		HadOpenNexus:    p.Challenges.HadOpenNexus != 0,
		Win:             p.Win,
		EndOfGameResult: endOfGameResult,
	}
}
