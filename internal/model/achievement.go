package model

import "time"

// Achievement is the definition; per-user progress lives in UserAchievement.
type Achievement struct {
	BaseModel
	Code        string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`
	Icon        string `gorm:"size:100" json:"icon"`
	XPReward    int    `gorm:"default:0" json:"xpReward"`
	TargetCount int    `gorm:"default:1" json:"targetCount"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement tracks progress toward one achievement for one user.
// EarnedAt transitions null -> timestamp exactly once and never reverts.
type UserAchievement struct {
	BaseModel
	UserID        uint         `gorm:"index:idx_user_achievement,unique;not null" json:"userId"`
	AchievementID uint         `gorm:"index:idx_user_achievement,unique;not null" json:"achievementId"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	Progress      int          `gorm:"default:0" json:"progress"`
	EarnedAt      *time.Time   `json:"earnedAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

// Earned reports whether the achievement has already been granted.
func (ua *UserAchievement) Earned() bool {
	return ua.EarnedAt != nil
}
