package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"
)

// ErrNotFound marks a lookup with no matching row. Absence means "not yet
// collected", not proof of non-existence.
var ErrNotFound = errors.New("not found")

// Store exposes the read side of the collection database. Each stage feeds
// off rows an earlier stage committed, so all accessors read whatever is
// durably there and nothing else.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStore(sqlDB *sql.DB, logger zerolog.Logger) *Store {
	return &Store{db: sqlDB, logger: logger}
}

// AllPlayerIDs returns every collected player id in stored order.
func (s *Store) AllPlayerIDs(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, "SELECT player_id FROM players")
}

// AllMatchIDs returns every discovered match id.
func (s *Store) AllMatchIDs(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, "SELECT match_id FROM match_refs")
}

// DistinctMatchIDsWithParticipants returns the match ids that have at least
// one stored participant row, the input set for timeline reconstruction.
func (s *Store) DistinctMatchIDsWithParticipants(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, "SELECT DISTINCT match_id FROM participant_stats")
}

// TeamAndPosition resolves a player's team id and team position within one
// match. Returns ErrNotFound when the participant row is absent.
func (s *Store) TeamAndPosition(ctx context.Context, playerID, matchID string) (int, string, error) {
	var teamID int
	var teamPosition string
	err := s.db.QueryRowContext(ctx,
		"SELECT team_id, team_position FROM participant_stats WHERE player_id = ? AND match_id = ?",
		playerID, matchID,
	).Scan(&teamID, &teamPosition)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrNotFound
	}
	if err != nil {
		return 0, "", err
	}
	return teamID, teamPosition, nil
}

// PlayerCount returns the number of collected player records.
func (s *Store) PlayerCount(ctx context.Context) (int64, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM players")
}

// MatchRefCount returns the number of discovered matches.
func (s *Store) MatchRefCount(ctx context.Context) (int64, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM match_refs")
}

// TimelineEventCount returns the number of reconstructed timeline rows.
func (s *Store) TimelineEventCount(ctx context.Context) (int64, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM timeline_events")
}

func (s *Store) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *Store) count(ctx context.Context, query string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}
