package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/config"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/database"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/handler"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/logger"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/repository"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/router"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/service"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Snehvidya core")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	structureRepo := repository.NewFeeStructureRepository(pool)
	sectionFeeRepo := repository.NewSectionExtraFeeRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)

	// ─── Initialize Services ───────────────────────────────────────────
	paperCache := service.NewRedisPaperCache(rdb)
	notifier := service.NewRedisGradedNotifier(rdb, log)
	examService := service.NewExamService(examRepo, questionRepo, paperCache, log)
	submissionService := service.NewSubmissionService(submissionRepo, answerRepo, examRepo, questionRepo, notifier, log)
	feeService := service.NewFeeService(structureRepo, sectionFeeRepo, ledgerRepo, cfg.QuarterDueDates, log)

	// ─── Initialize Handlers ───────────────────────────────────────────
	handlers := &router.Handlers{
		Exam:       handler.NewExamHandler(examService),
		Submission: handler.NewSubmissionHandler(submissionService),
		Fee:        handler.NewFeeHandler(feeService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
