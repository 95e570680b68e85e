package repository

import (
	"roleplay_coach_backend/internal/model"

	"gorm.io/gorm"
)

type FileRepository struct {
	DB *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) Create(file *model.UploadedFile) error {
	return r.DB.Create(file).Error
}

func (r *FileRepository) FindByUserID(userID uint) ([]model.UploadedFile, error) {
	var files []model.UploadedFile
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&files).Error
	return files, err
}

func (r *FileRepository) FindByIDAndUserID(id, userID uint) (*model.UploadedFile, error) {
	var file model.UploadedFile
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&file).Error
	return &file, err
}

func (r *FileRepository) Delete(id uint) error {
	return r.DB.Delete(&model.UploadedFile{}, id).Error
}
