package collector

import (
	"context"

	"github.com/rs/zerolog"

	"rift-collector/internal/domain"
	"rift-collector/internal/repository"
)

// MatchIDCollector fetches recent match ids for every collected player and
// links each discovered match to the player whose history surfaced it.
type MatchIDCollector struct {
	api    API
	store  *repository.Store
	writer *repository.BatchWriter
	logger zerolog.Logger
}

func NewMatchIDCollector(api API, store *repository.Store, writer *repository.BatchWriter, logger zerolog.Logger) *MatchIDCollector {
	return &MatchIDCollector{api: api, store: store, writer: writer, logger: logger}
}

func (c *MatchIDCollector) Run(ctx context.Context) error {
	playerIDs, err := c.store.AllPlayerIDs(ctx)
	if err != nil {
		return err
	}
	c.logger.Info().Int("players", len(playerIDs)).Msg("collecting match ids")

	for i, playerID := range playerIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		matchIDs, err := c.api.MatchIDs(ctx, playerID)
		if err != nil {
			c.logger.Warn().Err(err).Str("player_id", playerID).Msg("match id fetch failed, player skipped")
			continue
		}
		for _, matchID := range matchIDs {
			c.writer.AddMatchRef(ctx, domain.MatchRef{MatchID: matchID, PlayerID: playerID})
		}

		if (i+1)%500 == 0 {
			c.logger.Info().Int("processed", i+1).Int("total", len(playerIDs)).Msg("match id progress")
		}
	}

	return c.writer.FlushAll(ctx)
}
