package collector

import (
	"context"

	"rift-collector/internal/riot"
)

// API is the slice of the Riot client the collection stages consume.
// Implementations are expected to pace their own calls; collectors never
// retry, a failed call just costs that unit of work.
type API interface {
	LeagueEntries(ctx context.Context, tier, division string, page int) ([]riot.LeagueEntry, error)
	MatchIDs(ctx context.Context, puuid string) ([]string, error)
	Match(ctx context.Context, matchID string) (*riot.Match, error)
	Timeline(ctx context.Context, matchID string) (*riot.Timeline, error)
	PlayerTier(ctx context.Context, puuid string) (string, error)
}
