package database

import (
	"github.com/projet-mariage/wedding-api/internal/config"
	"github.com/projet-mariage/wedding-api/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	// TranslateError maps the driver's unique-constraint failure to
	// gorm.ErrDuplicatedKey so handlers can tell it apart from other
	// write errors.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Auto Migrate
	if err := db.AutoMigrate(&models.Guest{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate")
	}

	return db
}
