package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/user-auth-service/internal/auth"
	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/database"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/router"
	"github.com/iliyamo/user-auth-service/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	switch cfg.AuthStrategy {
	case config.AuthStrategyCookie, config.AuthStrategyHeader:
	default:
		log.Fatalf("unknown auth strategy: %q", cfg.AuthStrategy)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Pick the session backing once for the whole deployment.
	var store session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		store = session.NewMemoryStore(cfg.SessionMaxAge)
	case config.SessionBackendMySQL:
		store, err = session.NewMySQLStore(ctx, db, cfg.SessionMaxAge)
		if err != nil {
			log.Fatalf("session schema: %v", err)
		}
	case config.SessionBackendRedis:
		rdb := config.NewRedisClient()
		if rdb == nil {
			log.Fatal("session backend is redis but redis is unreachable")
		}
		store = session.NewRedisStore(rdb, cfg.SessionMaxAge)
	default:
		log.Fatalf("unknown session backend: %q", cfg.SessionBackend)
	}

	// Redis expires keys itself; the other backings need the sweep.
	if cfg.SessionBackend != config.SessionBackendRedis {
		session.StartSweeper(ctx, store, cfg.SweepInterval)
	}

	users := repository.NewUserRepo(db)
	svc := auth.NewService(users, store, cfg.BcryptCost)
	events := queue.NewPublisher(cfg.AMQPURL)
	h := handler.NewAuthHandler(cfg, svc, events)

	e := echo.New()
	router.RegisterRoutes(e, cfg, h, svc)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s strategy=%s backend=%s)",
		addr, cfg.Env, cfg.AuthStrategy, cfg.SessionBackend)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
