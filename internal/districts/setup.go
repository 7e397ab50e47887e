package districts

import (
	"log"

	"github.com/JanDarpan/JD-Backend/internal/config"
	"github.com/JanDarpan/JD-Backend/internal/db"
)

func Init(cfg *config.Config) {
	defaultState = cfg.State

	if err := db.DB.AutoMigrate(&District{}); err != nil {
		log.Fatal("Failed to auto-migrate districts table: ", err)
	}

	log.Println("Districts module initialized")
}
