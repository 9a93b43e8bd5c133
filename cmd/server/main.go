package main

import (
	"database/sql"
	"fleet-route-service/internal/adapters/cache"
	"fleet-route-service/internal/adapters/distance"
	"fleet-route-service/internal/adapters/repositories"
	"fleet-route-service/internal/api"
	"fleet-route-service/internal/config"
	"fleet-route-service/internal/platform/db"
	"fleet-route-service/internal/ports"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, OSRM) behind ports and starts the HTTP server.
// Every adapter is optional; without them the service routes on great-circle estimates
// and keeps no history.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	engine, err := config.LoadEngine(cfg.EngineConfigPath)
	if err != nil {
		log.Fatal(err)
	}

	var (
		conn     *sql.DB
		runs     ports.RunRepository
		legCache ports.LegCache
		matrix   ports.MatrixProvider
	)

	if cfg.DatabaseURL != "" {
		conn, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		runs = repositories.NewPostgresRunRepository(conn)
		legCache = cache.NewSQLLegCache(conn)
	} else {
		log.Println("DATABASE_URL not set; runs will not be persisted")
	}

	// Redis takes over leg caching when both stores are configured.
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisLegCacheFromURL(cfg.RedisURL, cfg.LegCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer redisCache.Close()
		legCache = redisCache
	}

	if cfg.OSRMURL != "" {
		provider, err := distance.NewOSRMMatrixProvider(
			cfg.OSRMURL,
			legCache,
			distance.WithProfile(cfg.OSRMProfile),
			distance.WithRateLimit(cfg.OSRMRPS),
		)
		if err != nil {
			log.Fatal(err)
		}
		matrix = provider
	} else {
		log.Println("OSRM_URL not set; roadDistances requests will be rejected")
	}

	router := api.NewRouter(engine, matrix, runs)

	// Timeouts allow for cold-cache road matrices on large order sets.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
