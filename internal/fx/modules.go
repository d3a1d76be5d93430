package fx

import (
	"database/sql"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"rift-collector/internal/collector"
	"rift-collector/internal/config"
	"rift-collector/internal/database"
	"rift-collector/internal/logger"
	"rift-collector/internal/ratelimit"
	"rift-collector/internal/repository"
	"rift-collector/internal/riot"
)

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateCalls, cfg.RateWindow)
}

func ProvideBatchWriter(sqlDB *sql.DB, cfg *config.Config, log zerolog.Logger) *repository.BatchWriter {
	return repository.NewBatchWriter(sqlDB, cfg.BatchLimit, log)
}

func ProvideAPI(client *riot.Client) collector.API {
	return client
}

var Module = fx.Options(
	logger.Module,
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideLimiter),
	// api client
	fx.Provide(riot.NewClient),
	fx.Provide(ProvideAPI),
	// store
	fx.Provide(repository.NewStore),
	fx.Provide(ProvideBatchWriter),
	// pipeline
	fx.Provide(collector.NewPipeline),
)
