package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/config"
	"github.com/lehoangphuc/notary-office-server/internal/database"
	"github.com/lehoangphuc/notary-office-server/internal/handler"
	"github.com/lehoangphuc/notary-office-server/internal/queue"
	"github.com/lehoangphuc/notary-office-server/internal/repository"
	"github.com/lehoangphuc/notary-office-server/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: nil disables rate limiting and response caching.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	parties := repository.NewPartyRepo(db)
	assets := repository.NewAssetRepo(db)
	templates := repository.NewTemplateRepo(db)
	files := repository.NewFileRepo(db)
	stats := repository.NewStatsRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, sessions),
		Party:     handler.NewPartyHandler(parties),
		Asset:     handler.NewAssetHandler(assets),
		Template:  handler.NewTemplateHandler(templates),
		File:      handler.NewFileHandler(files),
		Dashboard: handler.NewDashboardHandler(stats),
		AdminUser: handler.NewAdminUserHandler(cfg, users),
		Seed:      handler.NewSeedHandler(cfg, users, parties, assets, templates),
	}

	// Expired session rows accumulate until swept; tokens die on their
	// own via the exp claim, this only reclaims storage.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := sessions.DeleteExpired(ctx); err != nil {
				log.Printf("session sweeper: %v", err)
			} else if n > 0 {
				log.Printf("session sweeper: removed %d expired sessions", n)
			}
			cancel()
		}
	}()

	// Background consumer appends notarization events to logs/notary.log.
	// It runs its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartNotarizedConsumer(); err != nil {
			log.Printf("notary consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAPI(e, cfg, h, sessions, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
