package repository

import (
	"errors"
	"roleplay_coach_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAllDefinitions() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("id asc").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindDefinitionByCode(code string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.Where("code = ?", code).First(&achievement).Error
	return &achievement, err
}

func (r *AchievementRepository) FindByUserID(userID uint) ([]model.UserAchievement, error) {
	var userAchievements []model.UserAchievement
	err := r.DB.Preload("Achievement").
		Where("user_id = ?", userID).
		Find(&userAchievements).Error
	return userAchievements, err
}

// FindOrCreateProgress returns the progress row for a user/achievement pair,
// creating it at zero on first touch.
func (r *AchievementRepository) FindOrCreateProgress(userID, achievementID uint) (*model.UserAchievement, error) {
	var ua model.UserAchievement
	err := r.DB.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&ua).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ua = model.UserAchievement{UserID: userID, AchievementID: achievementID}
		if err := r.DB.Create(&ua).Error; err != nil {
			return nil, err
		}
		return &ua, nil
	}
	return &ua, err
}

// SaveProgress persists progress but never touches earned_at once set:
// the column is written only while it is still null.
func (r *AchievementRepository) SaveProgress(ua *model.UserAchievement) error {
	updates := map[string]interface{}{
		"progress": ua.Progress,
	}
	if ua.EarnedAt != nil {
		// Guarded write: only sets earned_at when the stored value is null.
		res := r.DB.Model(&model.UserAchievement{}).
			Where("id = ? AND earned_at IS NULL", ua.ID).
			Update("earned_at", ua.EarnedAt)
		if res.Error != nil {
			return res.Error
		}
	}
	return r.DB.Model(&model.UserAchievement{}).
		Where("id = ?", ua.ID).
		Updates(updates).Error
}
