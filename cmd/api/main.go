package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"lehrmatch/internal/config"
	"lehrmatch/internal/db"
	"lehrmatch/internal/email"
	apihttp "lehrmatch/internal/http"
	"lehrmatch/internal/quiz"
	"lehrmatch/internal/repository"
	"lehrmatch/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	studentRepo := repository.NewPgStudentRepository(pool)
	listingRepo := repository.NewPgListingRepository(pool)
	swipeRepo := repository.NewPgSwipeRepository(pool)
	matchRepo := repository.NewPgMatchRepository(pool)
	applicationRepo := repository.NewPgApplicationRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		tokenStore     service.RefreshTokenStore
		exclusionCache *service.SwipeExclusionCache
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			exclusionCache = service.NewSwipeExclusionCache(redisClient, time.Duration(cfg.FeedCacheTTLHours)*time.Hour, logger)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	catalog := quiz.NewCatalog()
	quizSvc := service.NewQuizService(catalog, studentRepo, logger)
	swipeSvc := service.NewSwipeService(swipeRepo, matchRepo, studentRepo, listingRepo, exclusionCache, emailSender, logger)
	feedSvc := service.NewFeedService(studentRepo, listingRepo, swipeRepo, exclusionCache, logger)
	appSvc := service.NewApplicationService(applicationRepo, matchRepo, studentRepo, listingRepo, emailSender, logger)

	authHandler := apihttp.NewAuthHandler(logger, jwtSvc)
	profileHandler := apihttp.NewProfileHandler(logger, studentRepo)
	quizHandler := apihttp.NewQuizHandler(logger, quizSvc, studentRepo)
	feedHandler := apihttp.NewFeedHandler(logger, feedSvc, swipeSvc)
	appHandler := apihttp.NewApplicationHandler(logger, appSvc)
	router := apihttp.NewRouter(logger, jwtSvc, authHandler, profileHandler, quizHandler, feedHandler, appHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
