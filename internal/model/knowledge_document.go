package model

// KnowledgeDocument is reference text injected into conversation prompts
// for grounding and contradiction checks.
type KnowledgeDocument struct {
	BaseModel
	Title        string   `gorm:"size:200;not null" json:"title"`
	Content      string   `gorm:"type:text" json:"content"`
	DocumentType string   `gorm:"size:50;default:'general'" json:"documentType"`
	Tags         []string `gorm:"type:json;serializer:json" json:"tags"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
