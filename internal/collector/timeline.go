package collector

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"rift-collector/internal/config"
	"rift-collector/internal/constants"
	"rift-collector/internal/domain"
	"rift-collector/internal/repository"
	"rift-collector/internal/riot"
)

const (
	eventElite    = "ELITE_MONSTER_KILL"
	eventChampion = "CHAMPION_KILL"
	eventBuilding = "BUILDING_KILL"
)

// TimelineCollector reconstructs a per-match event timeline. For every match
// with stored participants it fetches the frame stream, maps match-local
// numeric ids back to stable player ids, resolves each actor's team and
// position from the participant rows, and emits one row per allow-listed
// event plus one position sample per participant per frame.
//
// An actor that cannot be resolved drops exactly that event or sample: a
// partial timeline is acceptable, a misattributed one is not.
type TimelineCollector struct {
	api    API
	store  *repository.Store
	writer *repository.BatchWriter
	cfg    *config.Config
	logger zerolog.Logger
}

func NewTimelineCollector(api API, store *repository.Store, writer *repository.BatchWriter, cfg *config.Config, logger zerolog.Logger) *TimelineCollector {
	return &TimelineCollector{api: api, store: store, writer: writer, cfg: cfg, logger: logger}
}

func (c *TimelineCollector) Run(ctx context.Context) error {
	matchIDs, err := c.store.DistinctMatchIDsWithParticipants(ctx)
	if err != nil {
		return err
	}
	c.logger.Info().Int("matches", len(matchIDs)).Msg("reconstructing timelines")

	for _, matchID := range matchIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		timeline, err := c.api.Timeline(ctx, matchID)
		if err != nil {
			c.logger.Warn().Err(err).Str("match_id", matchID).Msg("timeline fetch failed, match skipped")
			continue
		}
		c.reconstruct(ctx, matchID, timeline)
	}

	return c.writer.FlushAll(ctx)
}

func (c *TimelineCollector) reconstruct(ctx context.Context, matchID string, timeline *riot.Timeline) {
	// In-game id 0 is reserved for the non-player actor.
	actors := map[int]string{0: constants.MinionActorID}
	for _, p := range timeline.Info.Participants {
		actors[p.ParticipantID] = p.Puuid
	}

	for _, frame := range timeline.Info.Frames {
		for _, event := range frame.Events {
			if !c.eventAllowed(event.Type) {
				continue
			}
			row, ok := c.resolveEvent(ctx, matchID, actors, event)
			if ok {
				c.writer.AddTimelineEvent(ctx, row)
			}
		}

		for idKey, sample := range frame.ParticipantFrames {
			row, ok := c.resolveSample(ctx, matchID, actors, idKey, frame.Timestamp, sample)
			if ok {
				c.writer.AddTimelineEvent(ctx, row)
			}
		}
	}
}

// resolveEvent attributes one allow-listed event to an actor, team and
// position. The team id source differs per event kind: monster kills carry
// the killer's team, champion kills use the resolved killer's team, and
// building kills carry the team that LOST the structure.
func (c *TimelineCollector) resolveEvent(ctx context.Context, matchID string, actors map[int]string, event riot.TimelineEvent) (domain.TimelineEvent, bool) {
	inGameID := event.KillerID
	playerID, known := actors[inGameID]
	if !known {
		c.logger.Warn().
			Str("match_id", matchID).
			Int("in_game_id", inGameID).
			Str("event", event.Type).
			Msg("unknown in-game id, event dropped")
		return domain.TimelineEvent{}, false
	}

	// The minion actor has no participant row; its team and position stay
	// empty and the store is never consulted.
	var resolvedTeam int
	teamPosition := ""
	if playerID != constants.MinionActorID {
		teamID, position, err := c.store.TeamAndPosition(ctx, playerID, matchID)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("match_id", matchID).
				Str("player_id", playerID).
				Str("event", event.Type).
				Msg("no team and position data, event dropped")
			return domain.TimelineEvent{}, false
		}
		resolvedTeam = teamID
		teamPosition = position
	}

	teamID := resolvedTeam
	eventType := event.Type
	switch event.Type {
	case eventElite:
		teamID = event.KillerTeamID
		eventType = event.MonsterType
	case eventChampion:
		eventType = "kill"
	case eventBuilding:
		teamID = event.TeamID
		eventType = event.BuildingType
	}

	return domain.TimelineEvent{
		MatchID:      matchID,
		PlayerID:     playerID,
		TeamID:       teamID,
		InGameID:     inGameID,
		TeamPosition: teamPosition,
		X:            event.Position.X,
		Y:            event.Position.Y,
		Timestamp:    event.Timestamp,
		EventName:    event.Type,
		EventType:    eventType,
	}, true
}

// resolveSample turns one per-frame participant snapshot into a position
// row. Only real participants report frames, so a failed resolution skips
// the sample alone, never the frame.
func (c *TimelineCollector) resolveSample(ctx context.Context, matchID string, actors map[int]string, idKey string, timestamp int64, sample riot.ParticipantFrame) (domain.TimelineEvent, bool) {
	inGameID, err := strconv.Atoi(idKey)
	if err != nil {
		c.logger.Warn().Str("match_id", matchID).Str("participant_key", idKey).Msg("malformed participant frame key, sample skipped")
		return domain.TimelineEvent{}, false
	}

	playerID, known := actors[inGameID]
	if !known {
		c.logger.Warn().Str("match_id", matchID).Int("in_game_id", inGameID).Msg("unknown participant frame id, sample skipped")
		return domain.TimelineEvent{}, false
	}

	teamID, teamPosition, err := c.store.TeamAndPosition(ctx, playerID, matchID)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("match_id", matchID).
			Str("player_id", playerID).
			Msg("no team and position data, sample skipped")
		return domain.TimelineEvent{}, false
	}

	return domain.TimelineEvent{
		MatchID:      matchID,
		PlayerID:     playerID,
		TeamID:       teamID,
		InGameID:     inGameID,
		TeamPosition: teamPosition,
		X:            sample.Position.X,
		Y:            sample.Position.Y,
		Timestamp:    timestamp,
		EventName:    "position",
		EventType:    "participant_frame",
	}, true
}

func (c *TimelineCollector) eventAllowed(eventType string) bool {
	for _, allowed := range c.cfg.EventTypes {
		if eventType == allowed {
			return true
		}
	}
	return false
}
