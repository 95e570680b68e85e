package service

import (
	"errors"
	"fmt"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SessionService struct {
	SessionRepo  *repository.SessionRepository
	ScenarioRepo *repository.ScenarioRepository
	Evaluation   *EvaluationService
	Stats        *StatsService
	Achievements *AchievementService
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	scenarioRepo *repository.ScenarioRepository,
	evaluation *EvaluationService,
	stats *StatsService,
	achievements *AchievementService,
) *SessionService {
	return &SessionService{
		SessionRepo:  sessionRepo,
		ScenarioRepo: scenarioRepo,
		Evaluation:   evaluation,
		Stats:        stats,
		Achievements: achievements,
	}
}

type StartSessionRequest struct {
	ScenarioKey string `json:"scenarioKey" binding:"required"`
	Difficulty  string `json:"difficulty"`
}

type SessionSummary struct {
	Session    *model.TrainingSession      `json:"session"`
	Evaluation *model.SessionEvaluation    `json:"evaluation,omitempty"`
	Messages   []model.ConversationMessage `json:"messages,omitempty"`
	XPEarned   int                         `json:"xpEarned"`
}

func (s *SessionService) Start(userID uint, req StartSessionRequest) (*model.TrainingSession, error) {
	scenario, err := s.ScenarioRepo.FindByKey(req.ScenarioKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScenarioNotFound
		}
		return nil, err
	}

	difficulty := model.Difficulty(req.Difficulty)
	if _, ok := difficultyAdjustments[difficulty]; !ok {
		difficulty = scenario.Difficulty
	}

	session := &model.TrainingSession{
		UserID:     userID,
		ScenarioID: scenario.ID,
		Status:     model.SessionActive,
		Difficulty: difficulty,
		StartedAt:  time.Now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	session.Scenario = scenario
	return session, nil
}

func (s *SessionService) AddMessage(userID, sessionID uint, role model.MessageRole, content, voice string) (*model.ConversationMessage, error) {
	session, err := s.SessionRepo.FindByIDAndUserID(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status != model.SessionActive {
		return nil, util.ErrSessionNotActive
	}

	seq, err := s.SessionRepo.NextSequence(sessionID)
	if err != nil {
		return nil, err
	}

	msg := &model.ConversationMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Voice:     voice,
		Sequence:  seq,
	}
	if err := s.SessionRepo.AddMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *SessionService) GetMessages(userID, sessionID uint) ([]model.ConversationMessage, error) {
	if _, err := s.SessionRepo.FindByIDAndUserID(sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return s.SessionRepo.FindMessages(sessionID)
}

func (s *SessionService) RecordMetric(userID, sessionID uint, analysis *RealTimeAnalysis) error {
	if analysis == nil {
		return nil
	}
	if _, err := s.SessionRepo.FindByIDAndUserID(sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		return err
	}
	return s.SessionRepo.AddMetric(&model.RealTimeMetric{
		SessionID:         sessionID,
		KnowledgeAccuracy: analysis.KnowledgeAccuracy,
		Tone:              analysis.Tone,
		ResponseQuality:   analysis.ResponseQuality,
	})
}

// Complete closes the session, evaluates the transcript, stores the rubric
// and applies the gamification updates. The rubric never fails: a degraded
// fallback is stored when the model misbehaves.
func (s *SessionService) Complete(userID, sessionID uint) (*SessionSummary, error) {
	session, err := s.SessionRepo.FindByIDAndUserID(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status != model.SessionActive {
		return nil, util.ErrSessionNotActive
	}

	if _, err := s.SessionRepo.FindEvaluation(sessionID); err == nil {
		return nil, util.ErrSessionEvaluated
	}

	messages, err := s.SessionRepo.FindMessages(sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.Status = model.SessionCompleted
	session.EndedAt = &now
	session.DurationSeconds = int(now.Sub(session.StartedAt).Seconds())

	var scenarioDesc, outcomes string
	if session.Scenario != nil {
		scenarioDesc = session.Scenario.Description
		outcomes = strings.Join(session.Scenario.ExpectedOutcomes, "; ")
	}
	rubric := s.Evaluation.Evaluate(EvaluationRequest{
		UserResponse:     transcript(messages),
		Scenario:         scenarioDesc,
		ExpectedOutcomes: outcomes,
	})

	eval := &model.SessionEvaluation{
		SessionID:        sessionID,
		Score:            rubric.Score,
		Accuracy:         rubric.Accuracy,
		Communication:    rubric.Communication,
		AreasImprovement: rubric.AreasImprovement,
		PositiveAspects:  rubric.PositiveAspects,
		Suggestions:      rubric.Suggestions,
		CriticalErrors:   rubric.CriticalErrors,
		Degraded:         rubric.Degraded,
	}

	if err := s.SessionRepo.CreateEvaluation(eval); err != nil {
		return nil, err
	}
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}

	xp, err := s.Stats.RecordCompletedSession(userID, session.DurationSeconds, rubric.Score)
	if err != nil {
		return nil, err
	}
	s.applyAchievements(userID, rubric.Score)

	return &SessionSummary{
		Session:    session,
		Evaluation: eval,
		XPEarned:   xp,
	}, nil
}

func (s *SessionService) Abandon(userID, sessionID uint) error {
	session, err := s.SessionRepo.FindByIDAndUserID(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		return err
	}

	if session.Status != model.SessionActive {
		return util.ErrSessionNotActive
	}

	now := time.Now()
	session.Status = model.SessionAbandoned
	session.EndedAt = &now
	session.DurationSeconds = int(now.Sub(session.StartedAt).Seconds())
	return s.SessionRepo.Update(session)
}

func (s *SessionService) History(userID uint, page, limit int) ([]model.TrainingSession, int64, error) {
	return s.SessionRepo.FindByUserID(userID, page, limit)
}

func (s *SessionService) GetSummary(userID, sessionID uint) (*SessionSummary, error) {
	session, err := s.SessionRepo.FindByIDAndUserID(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	summary := &SessionSummary{Session: session}
	if eval, err := s.SessionRepo.FindEvaluation(sessionID); err == nil {
		summary.Evaluation = eval
	}
	if messages, err := s.SessionRepo.FindMessages(sessionID); err == nil {
		summary.Messages = messages
	}
	return summary, nil
}

func (s *SessionService) applyAchievements(userID uint, score int) {
	if s.Achievements == nil {
		return
	}

	progressOrLog := func(code string, delta int) {
		if err := s.Achievements.AddProgress(userID, code, delta); err != nil {
			logger.Log.Warn("achievement progress update failed",
				zap.Uint("userID", userID),
				zap.String("code", code),
				zap.Error(err))
		}
	}

	progressOrLog("first_session", 1)
	progressOrLog("ten_sessions", 1)
	if score >= 90 {
		progressOrLog("high_score", 1)
	}

	if stats, err := s.Stats.StatsRepo.FindOrCreateByUserID(userID); err == nil {
		if err := s.Achievements.SetProgressAtLeast(userID, "week_streak", stats.CurrentStreak); err != nil {
			logger.Log.Warn("streak achievement update failed", zap.Uint("userID", userID), zap.Error(err))
		}
	}
}

func transcript(messages []model.ConversationMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		speaker := "Usuario"
		if msg.Role == model.MessageRoleAssistant {
			speaker = "Cliente"
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", speaker, msg.Content))
	}
	return b.String()
}
