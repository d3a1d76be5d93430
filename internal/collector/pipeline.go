package collector

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rift-collector/internal/config"
	"rift-collector/internal/repository"
)

// Stage is one step of the collection run: a name, an enable flag and the
// work itself. The pipeline records start, skip and finish uniformly for
// every stage.
type Stage struct {
	Name    string
	Enabled bool
	Run     func(ctx context.Context) error
}

// Pipeline drives the four collection stages in order. Stages communicate
// only through the store: each later stage queries rows an earlier stage
// committed, so earlier failures shrink later inputs instead of breaking
// them. Only context cancellation stops a run early.
type Pipeline struct {
	stages []Stage
	logger zerolog.Logger
}

func NewPipeline(
	cfg *config.Config,
	api API,
	store *repository.Store,
	writer *repository.BatchWriter,
	logger zerolog.Logger,
) *Pipeline {
	logger = logger.With().Str("run_id", uuid.New().String()).Logger()

	roster := NewRosterCollector(api, writer, cfg, logger)
	matchIDs := NewMatchIDCollector(api, store, writer, logger)
	matchDetail := NewMatchDetailCollector(api, store, writer, logger)
	timeline := NewTimelineCollector(api, store, writer, cfg, logger)

	return &Pipeline{
		logger: logger,
		stages: []Stage{
			{Name: "tier_roster", Enabled: cfg.Stages.Roster, Run: roster.Run},
			{Name: "match_ids", Enabled: cfg.Stages.MatchIDs, Run: matchIDs.Run},
			{Name: "match_detail", Enabled: cfg.Stages.MatchDetail, Run: matchDetail.Run},
			{Name: "timeline", Enabled: cfg.Stages.Timeline, Run: timeline.Run},
		},
	}
}

// Run executes the enabled stages sequentially. A stage error is logged and
// the next stage still runs; cancellation aborts the remainder of the run.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, stage := range p.stages {
		if !stage.Enabled {
			p.logger.Info().Str("stage", stage.Name).Msg("stage skipped")
			continue
		}

		p.logger.Info().Str("stage", stage.Name).Msg("stage started")
		if err := stage.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error().Err(err).Str("stage", stage.Name).Msg("stage failed")
			continue
		}
		p.logger.Info().Str("stage", stage.Name).Msg("stage finished")
	}
	return nil
}
