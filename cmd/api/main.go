package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ritmo-app/ritmo-engine/internal/adapters/cache"
	adapterHTTP "github.com/ritmo-app/ritmo-engine/internal/adapters/handler/http"
	"github.com/ritmo-app/ritmo-engine/internal/adapters/repository"
	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/services"
	"github.com/ritmo-app/ritmo-engine/internal/core/workers"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openStore() (*sqlx.DB, error) {
	switch envOr("STORE", "postgres") {
	case "sqlite":
		path := envOr("SQLITE_PATH", "ritmo.db")
		log.Printf("Opening sqlite store at %s...", path)
		return repository.OpenSQLite(path)
	default:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			envOr("DB_HOST", "localhost"), envOr("DB_PORT", "5432"),
			os.Getenv("DB_NAME"))

		log.Println("Connecting to postgres...")
		db, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, err
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		return db, nil
	}
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	db, err := openStore()
	if err != nil {
		log.Fatalf("Critical: failed to open store: %v", err)
	}
	defer db.Close()
	log.Println("Store connected successfully.")

	var rdb *redis.Client
	if host := os.Getenv("REDIS_HOST"); host != "" {
		dbIndex, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
		rdb, err = cache.NewRedisClient(host, envOr("REDIS_PORT", "6379"), os.Getenv("REDIS_PASSWORD"), dbIndex)
		if err != nil {
			log.Printf("Warning: redis unavailable, running without cache: %v", err)
			rdb = nil
		}
	}

	habitRepo := repository.NewPostgresHabitRepository(db)
	entryRepo := repository.NewPostgresEntryRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	settingsRepo := repository.NewPostgresSettingsRepository(db)

	var habitStore domain.HabitRepository = habitRepo
	var summaryCache *cache.RedisSummaryCache
	if rdb != nil {
		habitStore = repository.NewCachedHabitRepository(habitRepo, rdb)
		summaryCache = cache.NewRedisSummaryCache(rdb, 24*time.Hour)
	}

	var worker *workers.SummaryWorker
	if summaryCache != nil {
		worker = workers.NewSummaryWorker(habitStore, entryRepo, settingsRepo, summaryCache)
	}

	habitService := services.NewHabitService(habitStore, entryRepo, worker)
	entryService := services.NewEntryService(entryRepo, habitStore, worker)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(
		envOr("JWT_SECRET", "dev-secret-do-not-use-in-prod"),
		"ritmo-engine",
		24*time.Hour,
		userRepo,
	)
	settingsService := services.NewSettingsService(settingsRepo)

	var daySummaryCache services.DaySummaryCache
	if summaryCache != nil {
		daySummaryCache = summaryCache
	}
	summaryService := services.NewSummaryService(habitStore, entryRepo, settingsRepo, daySummaryCache)

	ctx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	if worker != nil {
		worker.Start(ctx)
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		EntryHandler:    adapterHTTP.NewEntryHandler(entryService),
		SummaryHandler:  adapterHTTP.NewSummaryHandler(summaryService),
		SettingsHandler: adapterHTTP.NewSettingsHandler(settingsService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           rdb,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + envOr("PORT", "8080"),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Ritmo engine running on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
