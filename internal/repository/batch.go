package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"rift-collector/internal/domain"
)

// BatchWriter buffers rows per table and writes them in one transaction once
// the buffered row count reaches the configured limit, or on FlushAll at
// stage end. All inserts are insert-if-absent keyed by each table's primary
// key, so re-running a stage never duplicates or overwrites rows.
//
// A failed flush is logged and the whole batch is discarded; dropping the
// buffer bounds the blast radius to that batch and prevents retry loops.
// There is a single writer, so at most one flush is ever in flight.
type BatchWriter struct {
	db     *sql.DB
	logger zerolog.Logger
	limit  int

	players          []domain.PlayerRecord
	matchRefs        []domain.MatchRef
	teamStats        []domain.TeamStat
	participantStats []domain.ParticipantStat
	timelineEvents   []domain.TimelineEvent
}

func NewBatchWriter(sqlDB *sql.DB, limit int, logger zerolog.Logger) *BatchWriter {
	return &BatchWriter{db: sqlDB, logger: logger, limit: limit}
}

// Buffered returns the total number of rows waiting across all tables.
func (w *BatchWriter) Buffered() int {
	return len(w.players) + len(w.matchRefs) + len(w.teamStats) +
		len(w.participantStats) + len(w.timelineEvents)
}

func (w *BatchWriter) AddPlayer(ctx context.Context, row domain.PlayerRecord) {
	w.players = append(w.players, row)
	w.flushIfThreshold(ctx)
}

func (w *BatchWriter) AddMatchRef(ctx context.Context, row domain.MatchRef) {
	w.matchRefs = append(w.matchRefs, row)
	w.flushIfThreshold(ctx)
}

func (w *BatchWriter) AddTeamStat(ctx context.Context, row domain.TeamStat) {
	w.teamStats = append(w.teamStats, row)
	w.flushIfThreshold(ctx)
}

func (w *BatchWriter) AddParticipantStat(ctx context.Context, row domain.ParticipantStat) {
	w.participantStats = append(w.participantStats, row)
	w.flushIfThreshold(ctx)
}

func (w *BatchWriter) AddTimelineEvent(ctx context.Context, row domain.TimelineEvent) {
	w.timelineEvents = append(w.timelineEvents, row)
	w.flushIfThreshold(ctx)
}

func (w *BatchWriter) flushIfThreshold(ctx context.Context) {
	if w.Buffered() < w.limit {
		return
	}
	if err := w.FlushAll(ctx); err != nil {
		w.logger.Error().Err(err).Msg("threshold flush failed, batch dropped")
	}
}

// FlushAll writes every buffered row in one transaction. The buffers are
// cleared whether or not the write succeeds.
func (w *BatchWriter) FlushAll(ctx context.Context) error {
	buffered := w.Buffered()
	if buffered == 0 {
		return nil
	}
	err := w.flushTx(ctx)

	w.players = nil
	w.matchRefs = nil
	w.teamStats = nil
	w.participantStats = nil
	w.timelineEvents = nil

	if err != nil {
		w.logger.Error().Err(err).Int("rows", buffered).Msg("batch flush failed, rows dropped")
		return err
	}
	w.logger.Info().Int("rows", buffered).Msg("batch flushed")
	return nil
}

func (w *BatchWriter) flushTx(ctx context.Context) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range w.players {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO players (player_id, current_tier, current_division, collected_on)
			VALUES (?, ?, ?, ?)`,
			row.PlayerID, row.CurrentTier, row.CurrentDivision, row.CollectedOn)
		if err != nil {
			return fmt.Errorf("failed to insert player %s: %w", row.PlayerID, err)
		}
	}

	for _, row := range w.matchRefs {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO match_refs (match_id, player_id)
			VALUES (?, ?)`,
			row.MatchID, row.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to insert match ref %s: %w", row.MatchID, err)
		}
	}

	for _, row := range w.teamStats {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO team_stats (
				match_id, team_id, atakhan_kills, baron_kills, champion_kills,
				dragon_kills, dragon_soul, horde_kills, rift_herald_kills,
				tower_kills, win, game_tier, end_of_game_result
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.MatchID, row.TeamID, row.AtakhanKills, row.BaronKills, row.ChampionKills,
			row.DragonKills, row.DragonSoul, row.HordeKills, row.RiftHeraldKills,
			row.TowerKills, row.Win, row.GameTier, row.EndOfGameResult)
		if err != nil {
			return fmt.Errorf("failed to insert team stat %s/%d: %w", row.MatchID, row.TeamID, err)
		}
	}

	for _, row := range w.participantStats {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO participant_stats (
				player_id, match_id, team_id, game_tier,
				kills, assists, deaths, kda,
				gold_earned, gold_per_minute, total_minions_killed,
				max_level_lead_lane_opponent, lane_minions_first_10_minutes,
				damage_per_minute, kill_participation,
				control_wards_placed, wards_placed, wards_killed,
				vision_score, vision_wards_bought_in_game,
				assist_me_pings, all_in_pings, enemy_missing_pings,
				need_vision_pings, on_my_way_pings, get_back_pings,
				push_pings, hold_pings,
				champion_name, individual_position, team_position,
				had_open_nexus, win, end_of_game_result
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.PlayerID, row.MatchID, row.TeamID, row.GameTier,
			row.Kills, row.Assists, row.Deaths, row.KDA,
			row.GoldEarned, row.GoldPerMinute, row.TotalMinionsKilled,
			row.MaxLevelLeadLaneOpponent, row.LaneMinionsFirst10Minutes,
			row.DamagePerMinute, row.KillParticipation,
			row.ControlWardsPlaced, row.WardsPlaced, row.WardsKilled,
			row.VisionScore, row.VisionWardsBoughtInGame,
			row.AssistMePings, row.AllInPings, row.EnemyMissingPings,
			row.NeedVisionPings, row.OnMyWayPings, row.GetBackPings,
			row.PushPings, row.HoldPings,
			row.ChampionName, row.IndividualPosition, row.TeamPosition,
			row.HadOpenNexus, row.Win, row.EndOfGameResult)
		if err != nil {
			return fmt.Errorf("failed to insert participant stat %s/%s: %w", row.PlayerID, row.MatchID, err)
		}
	}

	for _, row := range w.timelineEvents {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO timeline_events (
				match_id, player_id, team_id, in_game_id, team_position,
				x, y, timestamp, event_name, event_type
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.MatchID, row.PlayerID, row.TeamID, row.InGameID, row.TeamPosition,
			row.X, row.Y, row.Timestamp, row.EventName, row.EventType)
		if err != nil {
			return fmt.Errorf("failed to insert timeline event %s/%s: %w", row.MatchID, row.PlayerID, err)
		}
	}

	return tx.Commit()
}
