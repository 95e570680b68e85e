package model

import "time"

// UserStats is updated only additively after evaluated sessions.
type UserStats struct {
	BaseModel
	UserID          uint       `gorm:"uniqueIndex;not null" json:"userId"`
	TotalSessions   int        `gorm:"default:0" json:"totalSessions"`
	TotalMinutes    int        `gorm:"default:0" json:"totalMinutes"`
	BestScore       int        `gorm:"default:0" json:"bestScore"`
	AverageScore    float64    `gorm:"default:0" json:"averageScore"`
	TotalXP         int        `gorm:"default:0" json:"totalXp"`
	Level           int        `gorm:"default:1" json:"level"`
	CurrentStreak   int        `gorm:"default:0" json:"currentStreak"`
	LastSessionDate *time.Time `json:"lastSessionDate"`
}

func (UserStats) TableName() string {
	return "user_stats"
}

type ActivityLog struct {
	BaseModel
	UserID       uint   `gorm:"index;not null" json:"userId"`
	ActivityType string `gorm:"size:50;not null" json:"activityType"`
	XPEarned     int    `gorm:"default:0" json:"xpEarned"`
	Detail       string `gorm:"size:255" json:"detail"`
}

func (ActivityLog) TableName() string {
	return "user_activity_log"
}
