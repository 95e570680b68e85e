package service

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
	Stats         *StatsService
	Achievements  *AchievementService
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository, stats *StatsService, achievements *AchievementService) *ChallengeService {
	return &ChallengeService{
		ChallengeRepo: challengeRepo,
		Stats:         stats,
		Achievements:  achievements,
	}
}

type ChallengeView struct {
	model.Challenge
	Joined bool `json:"joined"`
	Score  int  `json:"score"`
}

type ChallengeRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Difficulty  model.Difficulty `json:"difficulty"`
	RewardXP    int              `json:"rewardXp"`
	TargetScore int              `json:"targetScore"`
	EndDate     time.Time        `json:"endDate" binding:"required"`
	TeamBased   bool             `json:"teamBased"`
}

func (s *ChallengeService) ListActive(userID uint) ([]ChallengeView, error) {
	challenges, err := s.ChallengeRepo.FindActive()
	if err != nil {
		return nil, err
	}

	joined := map[uint]model.ChallengeParticipation{}
	if userID != 0 {
		parts, err := s.ChallengeRepo.FindParticipationsByUser(userID)
		if err != nil {
			return nil, err
		}
		for _, p := range parts {
			joined[p.ChallengeID] = p
		}
	}

	views := make([]ChallengeView, len(challenges))
	for i, c := range challenges {
		views[i] = ChallengeView{Challenge: c}
		if p, ok := joined[c.ID]; ok {
			views[i].Joined = true
			views[i].Score = p.Score
		}
	}
	return views, nil
}

func (s *ChallengeService) Create(req ChallengeRequest) (*model.Challenge, error) {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyIntermediate
	}

	challenge := &model.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  difficulty,
		RewardXP:    req.RewardXP,
		TargetScore: req.TargetScore,
		StartDate:   time.Now(),
		EndDate:     req.EndDate,
		TeamBased:   req.TeamBased,
		Active:      true,
	}
	if err := s.ChallengeRepo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Join is idempotent per user/challenge pair.
func (s *ChallengeService) Join(userID, challengeID uint) (*model.ChallengeParticipation, error) {
	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}

	if !challenge.Active || challenge.EndDate.Before(time.Now()) {
		return nil, util.ErrChallengeInactive
	}

	return s.ChallengeRepo.Join(userID, challengeID)
}

// Leave deletes the participation row. Leave-then-rejoin is allowed.
func (s *ChallengeService) Leave(userID, challengeID uint) error {
	return s.ChallengeRepo.Leave(userID, challengeID)
}

// SubmitScore records a participant's score and grants the reward once
// the target is reached.
func (s *ChallengeService) SubmitScore(userID, challengeID uint, score int) error {
	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}

	participation, err := s.ChallengeRepo.FindParticipation(userID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotParticipating
		}
		return err
	}

	if score <= participation.Score {
		return nil
	}

	if err := s.ChallengeRepo.UpdateScore(userID, challengeID, score); err != nil {
		return err
	}

	crossedTarget := challenge.TargetScore > 0 &&
		participation.Score < challenge.TargetScore &&
		score >= challenge.TargetScore
	if crossedTarget {
		if s.Stats != nil {
			if err := s.Stats.AddXP(userID, challenge.RewardXP, "challenge_completed", challenge.Title); err != nil {
				return err
			}
		}
		if s.Achievements != nil {
			s.Achievements.AddProgress(userID, "challenge_winner", 1)
		}
	}

	return nil
}
