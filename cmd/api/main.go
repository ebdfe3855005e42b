package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	_ "github.com/lessonforge/backend/docs"
	"github.com/lessonforge/backend/internal/clients"
	"github.com/lessonforge/backend/internal/config"
	"github.com/lessonforge/backend/internal/handlers"
	"github.com/lessonforge/backend/internal/lock"
	"github.com/lessonforge/backend/internal/logger"
	"github.com/lessonforge/backend/internal/observability"
	"github.com/lessonforge/backend/internal/repositories"
	"github.com/lessonforge/backend/internal/services"
	"github.com/lessonforge/backend/internal/tasks"
	"go.uber.org/zap"
)

// @title LessonForge API
// @version 1.0
// @description API for generating courses, enriching lessons with content blocks and narrating lesson text

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:5000
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LessonForge API")

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: "lessonforge-api",
		Enabled:     cfg.Tracing.Enabled,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis. Without it enrichment locks stay in-process and the async route is disabled.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	var locker services.Locker
	var enrichmentQueue handlers.EnrichmentQueueService
	lessonRepo := repositories.NewLessonRepository(db)

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn("Redis unavailable, using in-process enrichment locks", zap.Error(err))
		locker = lock.NewMemoryLocker()
	} else {
		locker = lock.NewRedisLocker(rdb, "lessonforge:")

		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		asynqInspector := asynq.NewInspector(redisOpt)
		defer asynqInspector.Close()

		enrichmentQueue = services.NewEnrichmentQueueService(
			tasks.NewEnrichmentQueue(asynqClient, asynqInspector),
			lessonRepo,
			logger.Logger,
		)
	}

	// Initialize upstream clients
	generator, err := clients.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logger.Logger.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	translator, err := clients.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.TranslationModel)
	if err != nil {
		logger.Logger.Fatal("Failed to create Gemini translation client", zap.Error(err))
	}
	synthesizer, err := clients.NewSpeechClient(ctx, cfg.Speech.APIKey, cfg.Speech.MaxChunkChars)
	if err != nil {
		logger.Logger.Fatal("Failed to create text-to-speech client", zap.Error(err))
	}

	var searcher services.VideoSearcher
	if cfg.YouTube.APIKey != "" {
		youtubeClient, err := clients.NewYouTubeClient(ctx, cfg.YouTube.APIKey)
		if err != nil {
			logger.Logger.Fatal("Failed to create YouTube client", zap.Error(err))
		}
		searcher = youtubeClient
	} else {
		logger.Logger.Warn("YOUTUBE_API_KEY is not set, video lookup is disabled")
	}

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	moduleRepo := repositories.NewModuleRepository(db)
	graphStore := repositories.NewGraphStore(db)

	// Initialize services
	outlineService := services.NewOutlineService(generator, graphStore, logger.Logger)
	enrichmentService := services.NewEnrichmentService(generator, lessonRepo, locker, cfg.Enrichment.LockTTL, logger.Logger)
	courseService := services.NewCourseService(courseRepo, moduleRepo, lessonRepo, logger.Logger)
	progressService := services.NewProgressService(lessonRepo, logger.Logger)
	narrationService := services.NewNarrationService(translator, synthesizer, logger.Logger)
	videoService := services.NewVideoService(searcher, logger.Logger)

	// Initialize handlers
	courseHandler := handlers.NewCourseHandler(outlineService, courseService, logger.Logger)
	lessonHandler := handlers.NewLessonHandler(enrichmentService, enrichmentQueue, progressService, courseService, logger.Logger)
	mediaHandler := handlers.NewMediaHandler(narrationService, videoService, logger.Logger)

	r := newRouter(routerConfig{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		APIRequests:        cfg.RateLimit.APIRequests,
		GenerationRequests: cfg.RateLimit.GenerationRequests,
		RateWindow:         cfg.RateLimit.Window,
		SwaggerURL:         fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port),
	}, logger.Logger, courseHandler, lessonHandler, mediaHandler)

	// Start server. Generation calls can take a while, so the write timeout is generous.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Logger.Error("Failed to flush traces", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "content_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
