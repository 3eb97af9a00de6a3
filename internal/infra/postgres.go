package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bizlens/internal/config"
	"bizlens/internal/models/db_models"
)

func InitPostgresql(cfg config.Config) *gorm.DB {
	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := AutoMigrate(connectionPool); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return connectionPool
}

// AutoMigrate keeps the schema in step with the model list. The pgvector
// extension must exist before the embedding tables can be created.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Printf("Could not ensure pgvector extension (needs superuser once per database): %v", err)
	}

	return db.AutoMigrate(
		&db_models.Category{},
		&db_models.City{},
		&db_models.Tag{},
		&db_models.Business{},
		&db_models.Offering{},
		&db_models.OfferingImage{},
		&db_models.Account{},
		&db_models.UserReview{},
		&db_models.Favorite{},
		&db_models.CreditTransaction{},
		&db_models.AppSetting{},
		&db_models.RateLimit{},
		&db_models.Article{},
		&db_models.BusinessEmbedding{},
		&db_models.OfferingEmbedding{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
