package location

import (
	"log"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/cache"
	"github.com/JanDarpan/JD-Backend/internal/config"
	"github.com/JanDarpan/JD-Backend/internal/location/ipapi"
)

var resolver *Resolver

func Init(cfg *config.Config, c *cache.Store) {
	resolver = NewResolver(
		ipapi.NewClient(),
		c,
		time.Duration(cfg.GeoCacheTTLMinutes)*time.Minute,
		time.Duration(cfg.SelectionTTLHours)*time.Hour,
	)
	log.Println("Location module initialized")
}
