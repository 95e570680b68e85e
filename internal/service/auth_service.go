package service

import (
	"errors"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	StatsRepo *repository.StatsRepository
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, statsRepo *repository.StatsRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		StatsRepo: statsRepo,
		Cfg:       cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := s.UserRepo.Create(user); err != nil {
		return err
	}

	// Every account starts with an empty stats row so leaderboards and
	// streak logic never have to special-case missing records.
	_, err = s.StatsRepo.FindOrCreateByUserID(user.ID)
	return err
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if user.Disabled {
		return "", nil, util.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
