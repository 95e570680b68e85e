package database

import (
	"fmt"
	"log"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	SeedDefaults(db)

	return db, nil
}

// Migrate runs AutoMigrate for every owned table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Scenario{},
		&model.Behavior{},
		&model.KnowledgeDocument{},
		&model.TrainingSession{},
		&model.ConversationMessage{},
		&model.SessionEvaluation{},
		&model.RealTimeMetric{},
		&model.UserStats{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Challenge{},
		&model.ChallengeParticipation{},
		&model.Team{},
		&model.TeamMember{},
		&model.ActivityLog{},
		&model.UploadedFile{},
	)
}

// SeedDefaults inserts the built-in scenarios and achievement definitions
// on an empty database.
func SeedDefaults(db *gorm.DB) {
	var scCount int64
	db.Model(&model.Scenario{}).Count(&scCount)
	if scCount == 0 {
		defaultScenarios := []model.Scenario{
			{
				Key:                "sales-cold-call",
				Title:              "Llamada en frío",
				Description:        "Primer contacto telefónico con un cliente potencial que no espera la llamada.",
				Category:           model.CategorySales,
				Difficulty:         model.DifficultyIntermediate,
				PromptInstructions: "El cliente no conoce el producto y dispone de poco tiempo.",
				ExpectedOutcomes:   []string{"Presentarse con claridad", "Despertar interés en menos de un minuto", "Concertar una reunión de seguimiento"},
				Active:             true,
			},
			{
				Key:                "sales-objection-handling",
				Title:              "Manejo de objeciones",
				Description:        "El cliente muestra interés pero plantea objeciones de precio y de confianza.",
				Category:           model.CategorySales,
				Difficulty:         model.DifficultyAdvanced,
				PromptInstructions: "El cliente compara constantemente con la competencia.",
				ExpectedOutcomes:   []string{"Escuchar la objeción completa", "Responder con datos", "Cerrar un siguiente paso"},
				Active:             true,
			},
			{
				Key:                "recruitment-interview",
				Title:              "Entrevista de trabajo",
				Description:        "Entrevista para un puesto profesional con una entrevistadora exigente.",
				Category:           model.CategoryRecruitment,
				Difficulty:         model.DifficultyIntermediate,
				PromptInstructions: "La entrevistadora profundiza en la experiencia y en resultados concretos.",
				ExpectedOutcomes:   []string{"Responder con ejemplos concretos", "Mantener un tono profesional", "Hacer preguntas relevantes sobre el puesto"},
				Active:             true,
			},
			{
				Key:                "presentation-pitch",
				Title:              "Presentación de producto",
				Description:        "Presentación ante un comité que interrumpe con preguntas técnicas.",
				Category:           model.CategoryPresentation,
				Difficulty:         model.DifficultyAdvanced,
				PromptInstructions: "El comité valora brevedad y dominio de cifras.",
				ExpectedOutcomes:   []string{"Estructurar el mensaje", "Responder interrupciones sin perder el hilo", "Cerrar con una llamada a la acción"},
				Active:             true,
			},
		}
		for _, s := range defaultScenarios {
			db.Create(&s)
		}
	}

	var achCount int64
	db.Model(&model.Achievement{}).Count(&achCount)
	if achCount == 0 {
		defaultAchievements := []model.Achievement{
			{Code: "first_session", Title: "Primera sesión", Description: "Completa tu primera sesión de entrenamiento", Category: "milestone", Icon: "play", XPReward: 50, TargetCount: 1},
			{Code: "ten_sessions", Title: "Constancia", Description: "Completa diez sesiones de entrenamiento", Category: "milestone", Icon: "repeat", XPReward: 200, TargetCount: 10},
			{Code: "high_score", Title: "Excelencia", Description: "Consigue una puntuación de 90 o más", Category: "mastery", Icon: "star", XPReward: 150, TargetCount: 1},
			{Code: "week_streak", Title: "Racha semanal", Description: "Entrena siete días seguidos", Category: "streak", Icon: "flame", XPReward: 100, TargetCount: 7},
			{Code: "challenge_winner", Title: "Competidor", Description: "Supera el objetivo de un desafío", Category: "challenge", Icon: "trophy", XPReward: 250, TargetCount: 1},
		}
		for _, a := range defaultAchievements {
			db.Create(&a)
		}
	}
}
