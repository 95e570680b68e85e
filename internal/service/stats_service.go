package service

import (
	"context"
	"encoding/json"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	xpPerLevel          = 200
	baseSessionXP       = 50
	leaderboardCacheKey = "leaderboard:xp"
	leaderboardCacheTTL = time.Minute
)

type StatsService struct {
	StatsRepo *repository.StatsRepository
	UserRepo  *repository.UserRepository
	Redis     *redis.Client
}

func NewStatsService(statsRepo *repository.StatsRepository, userRepo *repository.UserRepository, rdb *redis.Client) *StatsService {
	return &StatsService{
		StatsRepo: statsRepo,
		UserRepo:  userRepo,
		Redis:     rdb,
	}
}

type UserProgress struct {
	Stats       *model.UserStats `json:"stats"`
	NextLevelXP int              `json:"nextLevelXp"`
}

type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	User  string `json:"user"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}

func (s *StatsService) GetUserProgress(userID uint) (*UserProgress, error) {
	stats, err := s.StatsRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}
	return &UserProgress{
		Stats:       stats,
		NextLevelXP: stats.Level * xpPerLevel,
	}, nil
}

// RecordCompletedSession applies the additive stats update after an
// evaluated session. XP and level never decrease.
func (s *StatsService) RecordCompletedSession(userID uint, durationSeconds, score int) (xpEarned int, err error) {
	stats, err := s.StatsRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return 0, err
	}

	xpEarned = baseSessionXP + score/2

	prevTotal := float64(stats.AverageScore) * float64(stats.TotalSessions)
	stats.TotalSessions++
	stats.TotalMinutes += (durationSeconds + 59) / 60
	stats.AverageScore = (prevTotal + float64(score)) / float64(stats.TotalSessions)
	if score > stats.BestScore {
		stats.BestScore = score
	}
	stats.TotalXP += xpEarned
	stats.Level = LevelForXP(stats.TotalXP)
	stats.CurrentStreak = nextStreak(stats.LastSessionDate, stats.CurrentStreak, time.Now())
	now := time.Now()
	stats.LastSessionDate = &now

	if err := s.StatsRepo.Update(stats); err != nil {
		return 0, err
	}

	s.invalidateLeaderboard()
	return xpEarned, nil
}

// AddXP grants bonus XP (achievements, challenges) outside session flow.
func (s *StatsService) AddXP(userID uint, xp int, activityType, detail string) error {
	stats, err := s.StatsRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return err
	}

	stats.TotalXP += xp
	stats.Level = LevelForXP(stats.TotalXP)
	if err := s.StatsRepo.Update(stats); err != nil {
		return err
	}

	s.invalidateLeaderboard()
	return s.StatsRepo.LogActivity(&model.ActivityLog{
		UserID:       userID,
		ActivityType: activityType,
		XPEarned:     xp,
		Detail:       detail,
	})
}

func (s *StatsService) GetRecentActivity(userID uint, limit int) ([]model.ActivityLog, error) {
	return s.StatsRepo.FindActivity(userID, limit)
}

// GetLeaderboard serves the XP ranking from a short-lived redis cache.
func (s *StatsService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	stats, err := s.StatsRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(stats))
	for i, st := range stats {
		name := ""
		if user, err := s.UserRepo.FindByID(st.UserID); err == nil {
			name = user.Name
		}
		entries[i] = LeaderboardEntry{
			Rank:  i + 1,
			User:  name,
			XP:    st.TotalXP,
			Level: st.Level,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, leaderboardCacheKey, data, leaderboardCacheTTL)
		}
	}

	return entries, nil
}

func (s *StatsService) invalidateLeaderboard() {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), leaderboardCacheKey)
	}
}

// LevelForXP maps total XP onto the level curve.
func LevelForXP(xp int) int {
	return xp/xpPerLevel + 1
}

// nextStreak continues the streak on consecutive days, keeps it on a
// same-day session and resets it after a gap.
func nextStreak(last *time.Time, current int, now time.Time) int {
	if last == nil {
		return 1
	}

	lastDay := last.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)

	switch today.Sub(lastDay) {
	case 0:
		if current == 0 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}
