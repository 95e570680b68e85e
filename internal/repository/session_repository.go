package repository

import (
	"roleplay_coach_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.TrainingSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.TrainingSession, error) {
	var session model.TrainingSession
	err := r.DB.Preload("Scenario").First(&session, id).Error
	return &session, err
}

func (r *SessionRepository) FindByIDAndUserID(id, userID uint) (*model.TrainingSession, error) {
	var session model.TrainingSession
	err := r.DB.Preload("Scenario").
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	return &session, err
}

func (r *SessionRepository) FindByUserID(userID uint, page, limit int) ([]model.TrainingSession, int64, error) {
	var sessions []model.TrainingSession
	var total int64

	if err := r.DB.Model(&model.TrainingSession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Preload("Scenario").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *SessionRepository) Update(session *model.TrainingSession) error {
	return r.DB.Save(session).Error
}

func (r *SessionRepository) AddMessage(msg *model.ConversationMessage) error {
	return r.DB.Create(msg).Error
}

func (r *SessionRepository) FindMessages(sessionID uint) ([]model.ConversationMessage, error) {
	var messages []model.ConversationMessage
	err := r.DB.Where("session_id = ?", sessionID).
		Order("sequence asc").
		Find(&messages).Error
	return messages, err
}

func (r *SessionRepository) NextSequence(sessionID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.ConversationMessage{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&max).Error
	return max + 1, err
}

func (r *SessionRepository) CreateEvaluation(eval *model.SessionEvaluation) error {
	return r.DB.Create(eval).Error
}

func (r *SessionRepository) FindEvaluation(sessionID uint) (*model.SessionEvaluation, error) {
	var eval model.SessionEvaluation
	err := r.DB.Where("session_id = ?", sessionID).First(&eval).Error
	return &eval, err
}

func (r *SessionRepository) AddMetric(metric *model.RealTimeMetric) error {
	return r.DB.Create(metric).Error
}

func (r *SessionRepository) FindMetrics(sessionID uint) ([]model.RealTimeMetric, error) {
	var metrics []model.RealTimeMetric
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at asc").Find(&metrics).Error
	return metrics, err
}
