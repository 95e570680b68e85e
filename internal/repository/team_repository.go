package repository

import (
	"roleplay_coach_backend/internal/model"

	"gorm.io/gorm"
)

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) FindPublic() ([]model.Team, error) {
	var teams []model.Team
	err := r.DB.Where("public = ?", true).Order("created_at desc").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) FindByID(id uint) (*model.Team, error) {
	var team model.Team
	err := r.DB.First(&team, id).Error
	return &team, err
}

func (r *TeamRepository) Create(team *model.Team) error {
	return r.DB.Create(team).Error
}

func (r *TeamRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&model.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Team{}, id).Error
	})
}

func (r *TeamRepository) FindMembers(teamID uint) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.DB.Preload("User").Where("team_id = ?", teamID).Find(&members).Error
	return members, err
}

func (r *TeamRepository) CountMembers(teamID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TeamMember{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

func (r *TeamRepository) FindMember(teamID, userID uint) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.DB.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	return &member, err
}

func (r *TeamRepository) AddMember(member *model.TeamMember) error {
	return r.DB.Create(member).Error
}

func (r *TeamRepository) RemoveMember(teamID, userID uint) error {
	return r.DB.Unscoped().
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMember{}).Error
}
