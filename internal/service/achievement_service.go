package service

import (
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	Stats           *StatsService
}

func NewAchievementService(achievementRepo *repository.AchievementRepository, stats *StatsService) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		Stats:           stats,
	}
}

type AchievementView struct {
	model.Achievement
	Progress int        `json:"progress"`
	EarnedAt *time.Time `json:"earnedAt"`
}

func (s *AchievementService) GetUserAchievements(userID uint) ([]AchievementView, error) {
	defs, err := s.AchievementRepo.FindAllDefinitions()
	if err != nil {
		return nil, err
	}

	progress, err := s.AchievementRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.UserAchievement, len(progress))
	for _, ua := range progress {
		byID[ua.AchievementID] = ua
	}

	views := make([]AchievementView, len(defs))
	for i, def := range defs {
		views[i] = AchievementView{Achievement: def}
		if ua, ok := byID[def.ID]; ok {
			views[i].Progress = ua.Progress
			views[i].EarnedAt = ua.EarnedAt
		}
	}
	return views, nil
}

// AddProgress advances a user's progress toward one achievement. Earning
// is set-once: an already earned achievement never changes its earned_at
// and never grants XP twice.
func (s *AchievementService) AddProgress(userID uint, code string, delta int) error {
	def, err := s.AchievementRepo.FindDefinitionByCode(code)
	if err != nil {
		return err
	}

	ua, err := s.AchievementRepo.FindOrCreateProgress(userID, def.ID)
	if err != nil {
		return err
	}

	if ua.Earned() {
		return nil
	}

	ua.Progress += delta
	if ua.Progress >= def.TargetCount {
		ua.Progress = def.TargetCount
		now := time.Now()
		ua.EarnedAt = &now
	}

	if err := s.AchievementRepo.SaveProgress(ua); err != nil {
		return err
	}

	if ua.Earned() && s.Stats != nil {
		if err := s.Stats.AddXP(userID, def.XPReward, "achievement_earned", def.Code); err != nil {
			logger.Log.Error("failed to grant achievement XP",
				zap.Uint("userID", userID),
				zap.String("code", def.Code),
				zap.Error(err))
		}
	}

	return nil
}

// SetProgressAtLeast raises progress to a floor (streak-style counters);
// earned achievements are untouched.
func (s *AchievementService) SetProgressAtLeast(userID uint, code string, value int) error {
	def, err := s.AchievementRepo.FindDefinitionByCode(code)
	if err != nil {
		return err
	}

	ua, err := s.AchievementRepo.FindOrCreateProgress(userID, def.ID)
	if err != nil {
		return err
	}

	if ua.Earned() || ua.Progress >= value {
		return nil
	}

	delta := value - ua.Progress
	return s.AddProgress(userID, code, delta)
}
