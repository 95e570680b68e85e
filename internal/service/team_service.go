package service

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"

	"gorm.io/gorm"
)

type TeamService struct {
	TeamRepo *repository.TeamRepository
}

func NewTeamService(teamRepo *repository.TeamRepository) *TeamService {
	return &TeamService{TeamRepo: teamRepo}
}

type TeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Public      *bool  `json:"public"`
	MaxMembers  int    `json:"maxMembers"`
}

// Create makes the creator the captain and first member.
func (s *TeamService) Create(userID uint, req TeamRequest) (*model.Team, error) {
	public := true
	if req.Public != nil {
		public = *req.Public
	}
	maxMembers := req.MaxMembers
	if maxMembers <= 0 {
		maxMembers = 10
	}

	team := &model.Team{
		Name:        req.Name,
		Description: req.Description,
		CaptainID:   userID,
		Public:      public,
		MaxMembers:  maxMembers,
	}
	if err := s.TeamRepo.Create(team); err != nil {
		return nil, err
	}

	member := &model.TeamMember{
		TeamID: team.ID,
		UserID: userID,
		Role:   model.TeamRoleCaptain,
	}
	if err := s.TeamRepo.AddMember(member); err != nil {
		return nil, err
	}

	return team, nil
}

func (s *TeamService) ListPublic() ([]model.Team, error) {
	return s.TeamRepo.FindPublic()
}

func (s *TeamService) GetMembers(teamID uint) ([]model.TeamMember, error) {
	if _, err := s.TeamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeamNotFound
		}
		return nil, err
	}
	return s.TeamRepo.FindMembers(teamID)
}

// Join enforces the public flag and the member cap.
func (s *TeamService) Join(userID, teamID uint) error {
	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTeamNotFound
		}
		return err
	}

	if !team.Public {
		return util.ErrTeamPrivate
	}

	if _, err := s.TeamRepo.FindMember(teamID, userID); err == nil {
		return util.ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	count, err := s.TeamRepo.CountMembers(teamID)
	if err != nil {
		return err
	}
	if count >= int64(team.MaxMembers) {
		return util.ErrTeamFull
	}

	return s.TeamRepo.AddMember(&model.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   model.TeamRoleMember,
	})
}

func (s *TeamService) Leave(userID, teamID uint) error {
	member, err := s.TeamRepo.FindMember(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotTeamMember
		}
		return err
	}

	if member.Role == model.TeamRoleCaptain {
		return util.ErrCaptainCannotLeave
	}

	return s.TeamRepo.RemoveMember(teamID, userID)
}

// Delete is captain-only and removes the team with its memberships.
func (s *TeamService) Delete(userID, teamID uint) error {
	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTeamNotFound
		}
		return err
	}

	if team.CaptainID != userID {
		return util.ErrPermissionDenied
	}

	return s.TeamRepo.Delete(teamID)
}
