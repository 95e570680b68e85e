package model

import "time"

type Challenge struct {
	BaseModel
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Difficulty  Difficulty `gorm:"size:20;default:'intermediate'" json:"difficulty"`
	RewardXP    int        `gorm:"default:0" json:"rewardXp"`
	TargetScore int        `gorm:"default:0" json:"targetScore"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	TeamBased   bool       `json:"teamBased"`
	Active      bool       `json:"active"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeParticipation is a toggle: join inserts the row, leave deletes it.
// The user/challenge pair is unique so the toggle stays idempotent.
type ChallengeParticipation struct {
	BaseModel
	UserID      uint       `gorm:"index:idx_user_challenge,unique;not null" json:"userId"`
	ChallengeID uint       `gorm:"index:idx_user_challenge,unique;not null" json:"challengeId"`
	Challenge   *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	Score       int        `gorm:"default:0" json:"score"`
}

func (ChallengeParticipation) TableName() string {
	return "challenge_participations"
}
