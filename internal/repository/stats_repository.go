package repository

import (
	"errors"
	"roleplay_coach_backend/internal/model"

	"gorm.io/gorm"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

// FindOrCreateByUserID returns the stats row for a user, creating an empty
// one on first use.
func (r *StatsRepository) FindOrCreateByUserID(userID uint) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = model.UserStats{UserID: userID, Level: 1}
		if err := r.DB.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	return &stats, err
}

func (r *StatsRepository) Update(stats *model.UserStats) error {
	return r.DB.Save(stats).Error
}

func (r *StatsRepository) FindTopByXP(limit int) ([]model.UserStats, error) {
	var stats []model.UserStats
	err := r.DB.Order("total_xp DESC").Limit(limit).Find(&stats).Error
	return stats, err
}

func (r *StatsRepository) LogActivity(log *model.ActivityLog) error {
	return r.DB.Create(log).Error
}

func (r *StatsRepository) FindActivity(userID uint, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
