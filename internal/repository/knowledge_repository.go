package repository

import (
	"roleplay_coach_backend/internal/model"

	"gorm.io/gorm"
)

type KnowledgeRepository struct {
	DB *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{DB: db}
}

func (r *KnowledgeRepository) FindAll(page, limit int) ([]model.KnowledgeDocument, int64, error) {
	var docs []model.KnowledgeDocument
	var total int64

	if err := r.DB.Model(&model.KnowledgeDocument{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&docs).Error
	return docs, total, err
}

func (r *KnowledgeRepository) FindByID(id uint) (*model.KnowledgeDocument, error) {
	var doc model.KnowledgeDocument
	err := r.DB.First(&doc, id).Error
	return &doc, err
}

// Search does a LIKE match over title and content, optionally narrowed by type.
func (r *KnowledgeRepository) Search(query, documentType string, limit int) ([]model.KnowledgeDocument, error) {
	var docs []model.KnowledgeDocument
	q := r.DB.Where("title LIKE ? OR content LIKE ?", "%"+query+"%", "%"+query+"%")
	if documentType != "" {
		q = q.Where("document_type = ?", documentType)
	}
	err := q.Limit(limit).Find(&docs).Error
	return docs, err
}

func (r *KnowledgeRepository) Create(doc *model.KnowledgeDocument) error {
	return r.DB.Create(doc).Error
}

func (r *KnowledgeRepository) Update(doc *model.KnowledgeDocument) error {
	return r.DB.Save(doc).Error
}

func (r *KnowledgeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.KnowledgeDocument{}, id).Error
}
