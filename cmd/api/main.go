package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"creator-match/internal/config"
	"creator-match/internal/db"
	"creator-match/internal/email"
	apihttp "creator-match/internal/http"
	"creator-match/internal/llm"
	"creator-match/internal/repository"
	"creator-match/internal/service"

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

	traitRepo := repository.NewPgTraitProfileRepository(pool)
	candidateRepo := repository.NewPgCandidateRepository(pool)
	matchRepo := repository.NewPgMatchRepository(pool)

	// Sin API key el LLM queda apagado y mandan los fallbacks por reglas.
	var llmClient llm.LLMClient
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var genLimiter service.GenerationRateLimiter
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
			genLimiter = service.NewRedisGenerationRateLimiter(redisClient, 24*time.Hour, cfg.MatchDailyLimit)
		}
		cancel()
	}

	var explainer service.Explainer = service.DefaultExplanationEngine
	if llmClient != nil {
		explainer = service.NewLLMExplainer(llmClient, logger)
	}

	poolSvc := service.NewCandidatePoolService(candidateRepo, matchRepo, logger)
	ranker := service.NewMatchRanker(cfg.ScoringParallelism)
	quizSvc := service.NewQuizAnalysisService(llmClient, traitRepo, logger)
	matchSvc := service.NewMatchService(
		candidateRepo,
		traitRepo,
		matchRepo,
		poolSvc,
		ranker,
		explainer,
		emailSender,
		logger,
		cfg.MatchPoolCap,
		cfg.MatchMinThreshold,
		time.Duration(cfg.MatchExpiryDays)*24*time.Hour,
	)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)

	personalityHandler := apihttp.NewPersonalityHandler(logger, quizSvc)
	matchHandler := apihttp.NewMatchHandler(logger, matchSvc, genLimiter)
	router := apihttp.NewRouter(logger, jwtSvc, personalityHandler, matchHandler)

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
