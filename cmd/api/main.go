package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskflow/internal/config"
	"taskflow/internal/db"
	"taskflow/internal/email"
	apihttp "taskflow/internal/http"
	"taskflow/internal/repository"
	"taskflow/internal/service"
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

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	taskRepo := repository.NewPgTaskRepository(pool)

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
		signinLimiter service.AttemptLimiter
		tokenStore    service.RefreshTokenStore
		redisClient   *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			signinLimiter = service.NewRedisAttemptLimiter(redisClient, time.Duration(cfg.SigninWindowMin)*time.Minute, cfg.SigninMaxAttempts)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if signinLimiter == nil {
		signinLimiter = service.NewAttemptLimiter(time.Duration(cfg.SigninWindowMin)*time.Minute, cfg.SigninMaxAttempts)
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLHours)*time.Hour,
		time.Duration(cfg.JWTRefreshTTLHours)*time.Hour,
		tokenStore,
	)

	userSvc := service.NewUserService(logger, userRepo, emailSender, signinLimiter, cfg.BcryptCost)
	taskSvc := service.NewTaskService(taskRepo)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	taskHandler := apihttp.NewTaskHandler(logger, taskSvc)
	healthHandler := apihttp.NewHealthHandler(logger, pool, redisClient)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, taskHandler, healthHandler)

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
