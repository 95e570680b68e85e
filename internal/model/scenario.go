package model

type ScenarioCategory string

const (
	CategorySales        ScenarioCategory = "sales"
	CategoryRecruitment  ScenarioCategory = "recruitment"
	CategoryPresentation ScenarioCategory = "presentation"
	CategoryNegotiation  ScenarioCategory = "negotiation"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Scenario is a configured training situation (cold call, interview, pitch...).
// Key is the stable symbolic identifier clients send to the conversation endpoints.
type Scenario struct {
	BaseModel
	Key                string           `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Title              string           `gorm:"size:200;not null" json:"title"`
	Description        string           `gorm:"type:text" json:"description"`
	Category           ScenarioCategory `gorm:"size:30;default:'sales'" json:"category"`
	Difficulty         Difficulty       `gorm:"size:20;default:'intermediate'" json:"difficulty"`
	PromptInstructions string           `gorm:"type:text" json:"promptInstructions"`
	ExpectedOutcomes   []string         `gorm:"type:json;serializer:json" json:"expectedOutcomes"`
	Active             bool             `gorm:"default:true" json:"active"`
}

func (Scenario) TableName() string {
	return "scenarios"
}

// Behavior is a configurable AI client personality attachable to a scenario.
type Behavior struct {
	BaseModel
	Name             string    `gorm:"size:100;not null" json:"name"`
	ScenarioID       *uint     `gorm:"index" json:"scenarioId"`
	Scenario         *Scenario `gorm:"foreignKey:ScenarioID" json:"scenario,omitempty"`
	ClientPersona    string    `gorm:"type:text" json:"clientPersona"`
	EmotionalTone    string    `gorm:"size:50" json:"emotionalTone"`
	TechnicalLevel   string    `gorm:"size:50" json:"technicalLevel"`
	CommonObjections []string  `gorm:"type:json;serializer:json" json:"commonObjections"`
	KnowledgeBase    string    `gorm:"type:text" json:"knowledgeBase"`
	ResponseStyle    string    `gorm:"size:100" json:"responseStyle"`
	Voice            string    `gorm:"size:50;default:'Sarah'" json:"voice"`
}

func (Behavior) TableName() string {
	return "behaviors"
}
