package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/arlearn/assessment-api/internal/config"
	"github.com/arlearn/assessment-api/internal/handler"
	"github.com/arlearn/assessment-api/internal/middleware"
	pgRepo "github.com/arlearn/assessment-api/internal/repository/postgres"
	redisRepo "github.com/arlearn/assessment-api/internal/repository/redis"
	"github.com/arlearn/assessment-api/internal/service"
	"github.com/arlearn/assessment-api/internal/service/adaptive"
	"github.com/arlearn/assessment-api/pkg/auth"
	"github.com/arlearn/assessment-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	logLevel := logger.Info
	if gin.Mode() == gin.ReleaseMode {
		logLevel = logger.Warn
	}
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), logLevel)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Println("Successfully connected to Redis")

	userRepo := pgRepo.NewUserRepo(db)
	subjectRepo := pgRepo.NewSubjectRepo(db)
	modelRepo := pgRepo.NewModelRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	policy := adaptive.Policy{
		WindowSize:      cfg.Assessment.WindowSize,
		HardThreshold:   cfg.Assessment.HardThreshold,
		EasyThreshold:   cfg.Assessment.EasyThreshold,
		DefaultAccuracy: cfg.Assessment.DefaultAccuracy,
	}
	assessmentService, err := service.NewAssessmentService(questionRepo, resultRepo, policy)
	if err != nil {
		log.Printf("Failed to initialize AssessmentService: %v", err)
		os.Exit(1)
	}

	resolver := service.NewSubjectNameResolver(subjectRepo, cacheRepo, cfg.Assessment.SubjectNameCacheTTL)
	performanceService, err := service.NewPerformanceService(resultRepo, resolver, cfg.Assessment)
	if err != nil {
		log.Printf("Failed to initialize PerformanceService: %v", err)
		os.Exit(1)
	}

	leaderboardService, err := service.NewLeaderboardService(resultRepo, userRepo, cacheRepo, cfg.Assessment.LeaderboardCacheTTL)
	if err != nil {
		log.Printf("Failed to initialize LeaderboardService: %v", err)
		os.Exit(1)
	}

	catalogService := service.NewCatalogService(subjectRepo, modelRepo, questionRepo)
	seedService := service.NewSeedService(db)

	deps := routerDeps{
		auth:        handler.NewAuthHandler(authService),
		catalog:     handler.NewCatalogHandler(catalogService),
		assessments: handler.NewAssessmentHandler(assessmentService, performanceService, leaderboardService, cfg.Assessment.LeaderboardDefaultLimit, cfg.Assessment.LeaderboardMaxLimit),
		admin:       handler.NewAdminHandler(seedService),
		authMW:      middleware.NewAuthMiddleware(jwtService, authService),
		limiter:     middleware.NewRateLimiter(redisClient),
	}
	router := newRouter(cfg, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server exited properly")
}
