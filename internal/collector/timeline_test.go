package collector

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"rift-collector/internal/domain"
	"rift-collector/internal/riot"
)

func twoPlayerTimeline(frames ...riot.Frame) *riot.Timeline {
	return &riot.Timeline{
		Info: riot.TimelineInfo{
			Participants: []riot.TimelineParticipant{
				{ParticipantID: 1, Puuid: "p1"},
				{ParticipantID: 2, Puuid: "p2"},
			},
			Frames: frames,
		},
	}
}

func timelineRow(t *testing.T, env *testEnv, timestamp int64) domain.TimelineEvent {
	t.Helper()
	var row domain.TimelineEvent
	err := env.db.QueryRow(
		`SELECT match_id, player_id, team_id, in_game_id, team_position, x, y, timestamp, event_name, event_type
		 FROM timeline_events WHERE timestamp = ?`, timestamp,
	).Scan(&row.MatchID, &row.PlayerID, &row.TeamID, &row.InGameID, &row.TeamPosition,
		&row.X, &row.Y, &row.Timestamp, &row.EventName, &row.EventType)
	if err != nil {
		t.Fatalf("timeline row at %d: %v", timestamp, err)
	}
	return row
}

func timelineCount(t *testing.T, env *testEnv) int64 {
	t.Helper()
	count, err := env.store.TimelineEventCount(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return count
}

func TestTimeline_EventAttribution(t *testing.T) {
	env := setupEnv(t)
	seedParticipants(t, env, "m1", []domain.ParticipantStat{
		{PlayerID: "p1", TeamID: 100, TeamPosition: "TOP"},
		{PlayerID: "p2", TeamID: 200, TeamPosition: "JUNGLE"},
	})

	api := &fakeAPI{timelines: map[string]*riot.Timeline{
		"m1": twoPlayerTimeline(riot.Frame{
			Events: []riot.TimelineEvent{
				{
					Type: "ELITE_MONSTER_KILL", Timestamp: 1000,
					KillerID: 2, KillerTeamID: 200, MonsterType: "DRAGON",
					Position: riot.Position{X: 9800, Y: 4400},
				},
				{
					Type: "CHAMPION_KILL", Timestamp: 2000,
					KillerID: 1, Position: riot.Position{X: 5000, Y: 5000},
				},
				// Team 1 destroys a tower: the event carries the team that
				// LOST the structure, and that attribution must survive.
				{
					Type: "BUILDING_KILL", Timestamp: 3000,
					KillerID: 1, TeamID: 200, BuildingType: "TOWER_BUILDING",
					Position: riot.Position{X: 8955, Y: 8510},
				},
				// Not on the allow list.
				{Type: "WARD_PLACED", Timestamp: 4000, KillerID: 1},
			},
		}),
	}}

	c := NewTimelineCollector(api, env.store, env.writer, env.cfg, zerolog.Nop())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := timelineCount(t, env); got != 3 {
		t.Fatalf("timeline rows = %d, want 3 (ward event filtered)", got)
	}

	elite := timelineRow(t, env, 1000)
	if elite.PlayerID != "p2" || elite.TeamID != 200 {
		t.Errorf("elite kill attribution = (%s, %d), want (p2, 200)", elite.PlayerID, elite.TeamID)
	}
	if elite.EventName != "ELITE_MONSTER_KILL" || elite.EventType != "DRAGON" {
		t.Errorf("elite kill labels = (%s, %s), want (ELITE_MONSTER_KILL, DRAGON)", elite.EventName, elite.EventType)
	}
	if elite.TeamPosition != "JUNGLE" {
		t.Errorf("elite kill team_position = %q, want JUNGLE", elite.TeamPosition)
	}

	champ := timelineRow(t, env, 2000)
	if champ.PlayerID != "p1" || champ.TeamID != 100 {
		t.Errorf("champion kill attribution = (%s, %d), want (p1, 100)", champ.PlayerID, champ.TeamID)
	}
	if champ.EventType != "kill" {
		t.Errorf("champion kill event_type = %q, want kill", champ.EventType)
	}

	building := timelineRow(t, env, 3000)
	if building.PlayerID != "p1" {
		t.Errorf("building kill player = %q, want killer p1", building.PlayerID)
	}
	if building.TeamID != 200 {
		t.Errorf("building kill team_id = %d, want 200 (team that lost the tower)", building.TeamID)
	}
	if building.EventType != "TOWER_BUILDING" {
		t.Errorf("building kill event_type = %q, want TOWER_BUILDING", building.EventType)
	}
}

// TestTimeline_MinionActor verifies in-game id 0 maps to the reserved
// non-player actor: no participant lookup, empty position, event kept.
func TestTimeline_MinionActor(t *testing.T) {
	env := setupEnv(t)
	seedParticipants(t, env, "m1", []domain.ParticipantStat{
		{PlayerID: "p1", TeamID: 100, TeamPosition: "TOP"},
	})

	api := &fakeAPI{timelines: map[string]*riot.Timeline{
		"m1": twoPlayerTimeline(riot.Frame{
			Events: []riot.TimelineEvent{{
				Type: "BUILDING_KILL", Timestamp: 1000,
				KillerID: 0, TeamID: 100, BuildingType: "TOWER_BUILDING",
			}},
		}),
	}}

	c := NewTimelineCollector(api, env.store, env.writer, env.cfg, zerolog.Nop())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	row := timelineRow(t, env, 1000)
	if row.PlayerID != "minion" {
		t.Errorf("player_id = %q, want minion", row.PlayerID)
	}
	if row.TeamPosition != "" {
		t.Errorf("team_position = %q, want empty for non-player actor", row.TeamPosition)
	}
	if row.TeamID != 100 {
		t.Errorf("team_id = %d, want the losing team 100", row.TeamID)
	}
}

// TestTimeline_DropsOnlyUnresolvableEvents verifies a failed actor
// resolution discards exactly that event while its frame siblings land.
func TestTimeline_DropsOnlyUnresolvableEvents(t *testing.T) {
	env := setupEnv(t)
	// p2 appears in the timeline id map but has no participant row.
	seedParticipants(t, env, "m1", []domain.ParticipantStat{
		{PlayerID: "p1", TeamID: 100, TeamPosition: "TOP"},
	})

	api := &fakeAPI{timelines: map[string]*riot.Timeline{
		"m1": twoPlayerTimeline(riot.Frame{
			Events: []riot.TimelineEvent{
				{Type: "CHAMPION_KILL", Timestamp: 1000, KillerID: 2},
				{Type: "CHAMPION_KILL", Timestamp: 2000, KillerID: 1},
				// Id 99 is in nobody's map.
				{Type: "CHAMPION_KILL", Timestamp: 3000, KillerID: 99},
			},
		}),
	}}

	c := NewTimelineCollector(api, env.store, env.writer, env.cfg, zerolog.Nop())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := timelineCount(t, env); got != 1 {
		t.Fatalf("timeline rows = %d, want only the resolvable event", got)
	}
	row := timelineRow(t, env, 2000)
	if row.PlayerID != "p1" {
		t.Errorf("surviving event player = %q, want p1", row.PlayerID)
	}
}

func TestTimeline_PositionSamples(t *testing.T) {
	env := setupEnv(t)
	seedParticipants(t, env, "m1", []domain.ParticipantStat{
		{PlayerID: "p1", TeamID: 100, TeamPosition: "TOP"},
		{PlayerID: "p2", TeamID: 200, TeamPosition: "JUNGLE"},
	})

	api := &fakeAPI{timelines: map[string]*riot.Timeline{
		"m1": twoPlayerTimeline(riot.Frame{
			Timestamp: 60000,
			ParticipantFrames: map[string]riot.ParticipantFrame{
				"1": {Position: riot.Position{X: 560, Y: 581}},
				"2": {Position: riot.Position{X: 9800, Y: 4400}},
			},
		}),
	}}

	c := NewTimelineCollector(api, env.store, env.writer, env.cfg, zerolog.Nop())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := timelineCount(t, env); got != 2 {
		t.Fatalf("timeline rows = %d, want one sample per participant", got)
	}

	var row domain.TimelineEvent
	err := env.db.QueryRow(
		`SELECT player_id, team_id, team_position, x, y, timestamp, event_name, event_type
		 FROM timeline_events WHERE player_id = 'p1'`,
	).Scan(&row.PlayerID, &row.TeamID, &row.TeamPosition, &row.X, &row.Y, &row.Timestamp, &row.EventName, &row.EventType)
	if err != nil {
		t.Fatal(err)
	}
	if row.EventName != "position" || row.EventType != "participant_frame" {
		t.Errorf("sample labels = (%s, %s), want (position, participant_frame)", row.EventName, row.EventType)
	}
	if row.X != 560 || row.Y != 581 {
		t.Errorf("sample position = (%d, %d), want (560, 581)", row.X, row.Y)
	}
	if row.Timestamp != 60000 {
		t.Errorf("sample timestamp = %d, want the frame timestamp", row.Timestamp)
	}
	if row.TeamID != 100 || row.TeamPosition != "TOP" {
		t.Errorf("sample resolution = (%d, %q), want (100, TOP)", row.TeamID, row.TeamPosition)
	}
}

// TestTimeline_SkipsMatchOnFetchFailure verifies one missing timeline does
// not stop the stage for the remaining matches.
func TestTimeline_SkipsMatchOnFetchFailure(t *testing.T) {
	env := setupEnv(t)
	seedParticipants(t, env, "m1", []domain.ParticipantStat{
		{PlayerID: "p1", TeamID: 100, TeamPosition: "TOP"},
	})
	seedParticipants(t, env, "m2", []domain.ParticipantStat{
		{PlayerID: "p1", TeamID: 100, TeamPosition: "TOP"},
	})

	// Only m2 has a timeline; m1 404s.
	api := &fakeAPI{timelines: map[string]*riot.Timeline{
		"m2": {
			Info: riot.TimelineInfo{
				Participants: []riot.TimelineParticipant{{ParticipantID: 1, Puuid: "p1"}},
				Frames: []riot.Frame{{
					Events: []riot.TimelineEvent{{Type: "CHAMPION_KILL", Timestamp: 1000, KillerID: 1}},
				}},
			},
		},
	}}

	c := NewTimelineCollector(api, env.store, env.writer, env.cfg, zerolog.Nop())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := timelineCount(t, env); got != 1 {
		t.Errorf("timeline rows = %d, want 1 from the surviving match", got)
	}
}
