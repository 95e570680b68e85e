package repository

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) FindActive() ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Where("active = ? AND end_date > ?", true, time.Now()).
		Order("end_date asc").
		Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.First(&challenge, id).Error
	return &challenge, err
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) Update(challenge *model.Challenge) error {
	return r.DB.Save(challenge).Error
}

func (r *ChallengeRepository) FindParticipation(userID, challengeID uint) (*model.ChallengeParticipation, error) {
	var p model.ChallengeParticipation
	err := r.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&p).Error
	return &p, err
}

// Join inserts the participation row; re-joining an already joined challenge
// is a no-op so the toggle stays idempotent.
func (r *ChallengeRepository) Join(userID, challengeID uint) (*model.ChallengeParticipation, error) {
	existing, err := r.FindParticipation(userID, challengeID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := model.ChallengeParticipation{UserID: userID, ChallengeID: challengeID}
	if err := r.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Leave hard-deletes the participation row; leaving a challenge that was
// never joined is a no-op.
func (r *ChallengeRepository) Leave(userID, challengeID uint) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Delete(&model.ChallengeParticipation{}).Error
}

func (r *ChallengeRepository) UpdateScore(userID, challengeID uint, score int) error {
	return r.DB.Model(&model.ChallengeParticipation{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Update("score", score).Error
}

func (r *ChallengeRepository) FindParticipationsByUser(userID uint) ([]model.ChallengeParticipation, error) {
	var parts []model.ChallengeParticipation
	err := r.DB.Preload("Challenge").
		Where("user_id = ?", userID).
		Find(&parts).Error
	return parts, err
}

func (r *ChallengeRepository) CountParticipations(userID, challengeID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ChallengeParticipation{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	return count, err
}
