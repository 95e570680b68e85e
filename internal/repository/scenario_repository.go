package repository

import (
	"roleplay_coach_backend/internal/model"

	"gorm.io/gorm"
)

type ScenarioRepository struct {
	DB *gorm.DB
}

func NewScenarioRepository(db *gorm.DB) *ScenarioRepository {
	return &ScenarioRepository{DB: db}
}

func (r *ScenarioRepository) FindAll(activeOnly bool) ([]model.Scenario, error) {
	var scenarios []model.Scenario
	q := r.DB.Order("created_at asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&scenarios).Error
	return scenarios, err
}

func (r *ScenarioRepository) FindByID(id uint) (*model.Scenario, error) {
	var scenario model.Scenario
	err := r.DB.First(&scenario, id).Error
	return &scenario, err
}

func (r *ScenarioRepository) FindByKey(key string) (*model.Scenario, error) {
	var scenario model.Scenario
	err := r.DB.Where("`key` = ?", key).First(&scenario).Error
	return &scenario, err
}

func (r *ScenarioRepository) Create(scenario *model.Scenario) error {
	return r.DB.Create(scenario).Error
}

func (r *ScenarioRepository) Update(scenario *model.Scenario) error {
	return r.DB.Save(scenario).Error
}

func (r *ScenarioRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Scenario{}, id).Error
}

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{DB: db}
}

func (r *BehaviorRepository) FindAll() ([]model.Behavior, error) {
	var behaviors []model.Behavior
	err := r.DB.Preload("Scenario").Order("created_at desc").Find(&behaviors).Error
	return behaviors, err
}

func (r *BehaviorRepository) FindByID(id uint) (*model.Behavior, error) {
	var behavior model.Behavior
	err := r.DB.Preload("Scenario").First(&behavior, id).Error
	return &behavior, err
}

func (r *BehaviorRepository) FindByScenarioID(scenarioID uint) (*model.Behavior, error) {
	var behavior model.Behavior
	err := r.DB.Where("scenario_id = ?", scenarioID).First(&behavior).Error
	return &behavior, err
}

func (r *BehaviorRepository) Create(behavior *model.Behavior) error {
	return r.DB.Create(behavior).Error
}

func (r *BehaviorRepository) Update(behavior *model.Behavior) error {
	return r.DB.Save(behavior).Error
}

func (r *BehaviorRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Behavior{}, id).Error
}
