package service

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"

	"gorm.io/gorm"
)

type ScenarioService struct {
	ScenarioRepo *repository.ScenarioRepository
	BehaviorRepo *repository.BehaviorRepository
}

func NewScenarioService(scenarioRepo *repository.ScenarioRepository, behaviorRepo *repository.BehaviorRepository) *ScenarioService {
	return &ScenarioService{
		ScenarioRepo: scenarioRepo,
		BehaviorRepo: behaviorRepo,
	}
}

func (s *ScenarioService) List(activeOnly bool) ([]model.Scenario, error) {
	return s.ScenarioRepo.FindAll(activeOnly)
}

func (s *ScenarioService) Get(id uint) (*model.Scenario, error) {
	scenario, err := s.ScenarioRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScenarioNotFound
		}
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioService) GetByKey(key string) (*model.Scenario, error) {
	scenario, err := s.ScenarioRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScenarioNotFound
		}
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioService) Create(scenario *model.Scenario) error {
	if scenario.Category == "" {
		scenario.Category = model.CategorySales
	}
	if scenario.Difficulty == "" {
		scenario.Difficulty = model.DifficultyIntermediate
	}
	return s.ScenarioRepo.Create(scenario)
}

func (s *ScenarioService) Update(id uint, updated *model.Scenario) (*model.Scenario, error) {
	scenario, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	scenario.Title = updated.Title
	scenario.Description = updated.Description
	if updated.Category != "" {
		scenario.Category = updated.Category
	}
	if updated.Difficulty != "" {
		scenario.Difficulty = updated.Difficulty
	}
	scenario.PromptInstructions = updated.PromptInstructions
	scenario.ExpectedOutcomes = updated.ExpectedOutcomes
	scenario.Active = updated.Active

	if err := s.ScenarioRepo.Update(scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.ScenarioRepo.Delete(id)
}

func (s *ScenarioService) ListBehaviors() ([]model.Behavior, error) {
	return s.BehaviorRepo.FindAll()
}

func (s *ScenarioService) GetBehavior(id uint) (*model.Behavior, error) {
	behavior, err := s.BehaviorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBehaviorNotFound
		}
		return nil, err
	}
	return behavior, nil
}

func (s *ScenarioService) CreateBehavior(behavior *model.Behavior) error {
	if behavior.Voice == "" {
		behavior.Voice = DefaultVoice
	}
	if behavior.ScenarioID != nil {
		if _, err := s.Get(*behavior.ScenarioID); err != nil {
			return err
		}
	}
	return s.BehaviorRepo.Create(behavior)
}

func (s *ScenarioService) UpdateBehavior(id uint, updated *model.Behavior) (*model.Behavior, error) {
	behavior, err := s.GetBehavior(id)
	if err != nil {
		return nil, err
	}

	behavior.Name = updated.Name
	behavior.ScenarioID = updated.ScenarioID
	behavior.ClientPersona = updated.ClientPersona
	behavior.EmotionalTone = updated.EmotionalTone
	behavior.TechnicalLevel = updated.TechnicalLevel
	behavior.CommonObjections = updated.CommonObjections
	behavior.KnowledgeBase = updated.KnowledgeBase
	behavior.ResponseStyle = updated.ResponseStyle
	if updated.Voice != "" {
		behavior.Voice = updated.Voice
	}

	if err := s.BehaviorRepo.Update(behavior); err != nil {
		return nil, err
	}
	return behavior, nil
}

func (s *ScenarioService) DeleteBehavior(id uint) error {
	if _, err := s.GetBehavior(id); err != nil {
		return err
	}
	return s.BehaviorRepo.Delete(id)
}
