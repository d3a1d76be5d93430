package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"rift-collector/internal/config"
	"rift-collector/internal/domain"
	"rift-collector/internal/repository"
)

// RosterCollector walks the ranked ladder tier by tier and records every
// entry as a player row. The apex tier has no divisions and paginates as a
// single sequence; every other tier paginates per division.
type RosterCollector struct {
	api    API
	writer *repository.BatchWriter
	cfg    *config.Config
	logger zerolog.Logger
}

func NewRosterCollector(api API, writer *repository.BatchWriter, cfg *config.Config, logger zerolog.Logger) *RosterCollector {
	return &RosterCollector{api: api, writer: writer, cfg: cfg, logger: logger}
}

func (c *RosterCollector) Run(ctx context.Context) error {
	collectedOn := time.Now().Format("2006-01-02")

	for _, tier := range c.cfg.Tiers {
		if tier == config.ApexTier {
			if err := c.collectLadder(ctx, tier, "I", collectedOn); err != nil {
				return err
			}
			continue
		}
		for _, division := range c.cfg.Divisions {
			if err := c.collectLadder(ctx, tier, division, collectedOn); err != nil {
				return err
			}
		}
	}

	return c.writer.FlushAll(ctx)
}

// collectLadder pages through one tier+division until the API returns an
// empty page, the page limit is hit, or a page fails. A failed page yields
// zero rows and ends pagination for this ladder slice only; the caller moves
// on to the next division or tier.
func (c *RosterCollector) collectLadder(ctx context.Context, tier, division, collectedOn string) error {
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := c.api.LeagueEntries(ctx, tier, division, page)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("tier", tier).
				Str("division", division).
				Int("page", page).
				Msg("ladder page failed, moving on")
			return nil
		}
		if len(entries) == 0 {
			return nil
		}

		for _, entry := range entries {
			c.writer.AddPlayer(ctx, domain.PlayerRecord{
				PlayerID:        entry.Puuid,
				CurrentTier:     entry.Tier,
				CurrentDivision: entry.Rank,
				CollectedOn:     collectedOn,
			})
		}

		c.logger.Info().
			Str("tier", tier).
			Str("division", division).
			Int("page", page).
			Int("entries", len(entries)).
			Msg("ladder page collected")

		if c.cfg.PageLimit != -1 && page >= c.cfg.PageLimit {
			return nil
		}
	}
}
