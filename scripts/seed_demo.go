// Seed demo data for local development: an admin account, sample knowledge
// documents and a weekly challenge.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"log"
	"os"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/pkg/database"
	"roleplay_coach_backend/pkg/logger"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("cannot hash admin password: %v", err)
		}
		admin := model.User{
			Name:     "Admin",
			Email:    "admin@roleplay.local",
			Password: string(hashed),
			Role:     model.RoleAdmin,
			Language: "es",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("cannot create admin user: %v", err)
		}
		log.Println("created admin@roleplay.local (password admin12345)")
	}

	var docCount int64
	db.Model(&model.KnowledgeDocument{}).Count(&docCount)
	if docCount == 0 {
		docs := []model.KnowledgeDocument{
			{
				Title:        "Catálogo de producto",
				Content:      "Nuestro plan básico cuesta 29 euros al mes e incluye soporte por correo. El plan profesional cuesta 79 euros al mes e incluye soporte telefónico y un gestor de cuenta.",
				DocumentType: "product",
				Tags:         []string{"precios", "planes"},
			},
			{
				Title:        "Política de devoluciones",
				Content:      "Ofrecemos una garantía de devolución de 30 días sin preguntas. Las devoluciones se procesan en un plazo de 5 días hábiles.",
				DocumentType: "policy",
				Tags:         []string{"devoluciones", "garantía"},
			},
			{
				Title:        "Comparativa con la competencia",
				Content:      "A diferencia de los competidores principales, la integración se completa en un día y no requiere permanencia anual.",
				DocumentType: "sales",
				Tags:         []string{"competencia", "ventajas"},
			},
		}
		for _, d := range docs {
			db.Create(&d)
		}
		log.Printf("created %d knowledge documents", len(docs))
	}

	var challengeCount int64
	db.Model(&model.Challenge{}).Count(&challengeCount)
	if challengeCount == 0 {
		challenge := model.Challenge{
			Title:       "Desafío semanal",
			Description: "Consigue 400 puntos en sesiones completadas esta semana",
			TargetScore: 400,
			RewardXP:    300,
			Active:      true,
			StartDate:   time.Now(),
			EndDate:     time.Now().AddDate(0, 0, 7),
		}
		if err := db.Create(&challenge).Error; err != nil {
			log.Fatalf("cannot create challenge: %v", err)
		}
		log.Println("created weekly challenge")
	}

	log.Println("demo seed completed")
}
