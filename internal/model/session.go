package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// TrainingSession owns an ordered list of messages and at most one evaluation.
type TrainingSession struct {
	BaseModel
	UserID          uint          `gorm:"index;not null" json:"userId"`
	ScenarioID      uint          `gorm:"index;not null" json:"scenarioId"`
	Scenario        *Scenario     `gorm:"foreignKey:ScenarioID" json:"scenario,omitempty"`
	Status          SessionStatus `gorm:"size:20;default:'active'" json:"status"`
	Difficulty      Difficulty    `gorm:"size:20;default:'intermediate'" json:"difficulty"`
	StartedAt       time.Time     `json:"startedAt"`
	EndedAt         *time.Time    `json:"endedAt"`
	DurationSeconds int           `gorm:"default:0" json:"durationSeconds"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}

type ConversationMessage struct {
	BaseModel
	SessionID uint        `gorm:"index;not null" json:"sessionId"`
	Role      MessageRole `gorm:"size:20;not null" json:"role"`
	Content   string      `gorm:"type:text" json:"content"`
	Voice     string      `gorm:"size:50" json:"voice"`
	Sequence  int         `gorm:"not null" json:"sequence"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}

// SessionEvaluation is the rubric produced when a session completes.
// Degraded marks rubrics served from the fallback path instead of the model.
type SessionEvaluation struct {
	BaseModel
	SessionID        uint     `gorm:"uniqueIndex;not null" json:"sessionId"`
	Score            int      `gorm:"default:0" json:"score"`
	Accuracy         int      `gorm:"default:0" json:"accuracy"`
	Communication    int      `gorm:"default:0" json:"communication"`
	AreasImprovement []string `gorm:"type:json;serializer:json" json:"areas_improvement"`
	PositiveAspects  []string `gorm:"type:json;serializer:json" json:"positive_aspects"`
	Suggestions      []string `gorm:"type:json;serializer:json" json:"suggestions"`
	CriticalErrors   []string `gorm:"type:json;serializer:json" json:"critical_errors"`
	Degraded         bool     `gorm:"default:false" json:"degraded"`
}

func (SessionEvaluation) TableName() string {
	return "session_evaluations"
}

// RealTimeMetric stores the best-effort live analysis emitted during
// enhanced conversations.
type RealTimeMetric struct {
	BaseModel
	SessionID         uint   `gorm:"index;not null" json:"sessionId"`
	KnowledgeAccuracy string `gorm:"size:20" json:"knowledgeAccuracy"`
	Tone              string `gorm:"size:20" json:"tone"`
	ResponseQuality   string `gorm:"size:20" json:"responseQuality"`
}

func (RealTimeMetric) TableName() string {
	return "real_time_metrics"
}
