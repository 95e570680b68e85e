package service

import (
	"roleplay_coach_backend/internal/repository"
	"testing"
	"time"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{199, 1},
		{200, 2},
		{399, 2},
		{1000, 6},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Fatalf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	if got := nextStreak(nil, 0, now); got != 1 {
		t.Fatalf("first session should start the streak at 1, got %d", got)
	}

	sameDay := now.Add(-2 * time.Hour)
	if got := nextStreak(&sameDay, 3, now); got != 3 {
		t.Fatalf("same-day session should keep the streak, got %d", got)
	}

	yesterday := now.Add(-24 * time.Hour)
	if got := nextStreak(&yesterday, 3, now); got != 4 {
		t.Fatalf("consecutive day should extend the streak, got %d", got)
	}

	lastWeek := now.Add(-6 * 24 * time.Hour)
	if got := nextStreak(&lastWeek, 9, now); got != 1 {
		t.Fatalf("a gap should reset the streak, got %d", got)
	}
}

func TestRecordCompletedSession(t *testing.T) {
	db := testDB(t)
	svc := NewStatsService(repository.NewStatsRepository(db), repository.NewUserRepository(db), nil)

	xp, err := svc.RecordCompletedSession(1, 600, 80)
	if err != nil {
		t.Fatalf("RecordCompletedSession: %v", err)
	}
	if xp != 50+80/2 {
		t.Fatalf("expected %d xp, got %d", 50+80/2, xp)
	}

	stats, err := svc.StatsRepo.FindOrCreateByUserID(1)
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	if stats.TotalSessions != 1 {
		t.Fatalf("expected 1 session, got %d", stats.TotalSessions)
	}
	if stats.TotalMinutes != 10 {
		t.Fatalf("expected 10 minutes, got %d", stats.TotalMinutes)
	}
	if stats.BestScore != 80 || stats.AverageScore != 80 {
		t.Fatalf("unexpected scores: best=%d avg=%v", stats.BestScore, stats.AverageScore)
	}
	if stats.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", stats.CurrentStreak)
	}

	// Second session the same day: average moves, streak holds.
	if _, err := svc.RecordCompletedSession(1, 90, 60); err != nil {
		t.Fatalf("second session: %v", err)
	}
	stats, _ = svc.StatsRepo.FindOrCreateByUserID(1)
	if stats.TotalSessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", stats.TotalSessions)
	}
	if stats.AverageScore != 70 {
		t.Fatalf("expected average 70, got %v", stats.AverageScore)
	}
	if stats.BestScore != 80 {
		t.Fatalf("best score must not decrease, got %d", stats.BestScore)
	}
	if stats.CurrentStreak != 1 {
		t.Fatalf("same-day session must not extend the streak, got %d", stats.CurrentStreak)
	}
	if stats.TotalMinutes != 12 {
		t.Fatalf("duration should round up to whole minutes, got %d", stats.TotalMinutes)
	}
}

func TestAddXPLevelsUpAndLogsActivity(t *testing.T) {
	db := testDB(t)
	svc := NewStatsService(repository.NewStatsRepository(db), repository.NewUserRepository(db), nil)

	if err := svc.AddXP(7, 450, "achievement_earned", "first_session"); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	stats, _ := svc.StatsRepo.FindOrCreateByUserID(7)
	if stats.TotalXP != 450 || stats.Level != 3 {
		t.Fatalf("expected 450 xp at level 3, got %d xp level %d", stats.TotalXP, stats.Level)
	}

	logs, err := svc.GetRecentActivity(7, 10)
	if err != nil {
		t.Fatalf("GetRecentActivity: %v", err)
	}
	if len(logs) != 1 || logs[0].ActivityType != "achievement_earned" || logs[0].XPEarned != 450 {
		t.Fatalf("unexpected activity log: %+v", logs)
	}
}

func TestGetUserProgressCreatesStatsRow(t *testing.T) {
	db := testDB(t)
	svc := NewStatsService(repository.NewStatsRepository(db), repository.NewUserRepository(db), nil)

	progress, err := svc.GetUserProgress(42)
	if err != nil {
		t.Fatalf("GetUserProgress: %v", err)
	}
	if progress.Stats.Level != 1 || progress.Stats.TotalXP != 0 {
		t.Fatalf("fresh stats should start at level 1 with 0 xp: %+v", progress.Stats)
	}
	if progress.NextLevelXP != 200 {
		t.Fatalf("expected 200 xp to next level, got %d", progress.NextLevelXP)
	}
}
