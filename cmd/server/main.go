package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	appservices "github.com/Chandansaha2005/Twindex/internal/application/services"
	"github.com/Chandansaha2005/Twindex/internal/application/usecases"
	"github.com/Chandansaha2005/Twindex/internal/config"
	domainservices "github.com/Chandansaha2005/Twindex/internal/domain/services"
	"github.com/Chandansaha2005/Twindex/internal/infrastructure/api"
	"github.com/Chandansaha2005/Twindex/internal/infrastructure/external"
	"github.com/Chandansaha2005/Twindex/internal/infrastructure/services"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		// ロガー生成前なので標準の log を使う
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("[boot] Starting Twindex backend",
		"provider", cfg.AIProvider,
		"addr", cfg.Addr(),
		"debug", cfg.DebugMode,
	)

	// インフラ層を初期化
	clientPool := services.NewGoogleClientPool(cfg.Gemini, cfg.Vertex)
	defer func() {
		if err := clientPool.Close(); err != nil {
			logger.Warnw("Failed to close AI client pool", "error", err)
		}
	}()

	aiService, err := external.NewSimulationAIService(ctx, cfg, clientPool)
	if err != nil {
		return err
	}
	defer aiService.Close()

	// ドメイン層を初期化
	simulationDomainService := domainservices.NewSimulationDomainService(aiService)

	// アプリケーション層を初期化
	simulationUseCase := usecases.NewSimulationUseCase(simulationDomainService, logger)
	requestService := appservices.NewRequestService(cfg.Server.MaxUploadBytes, logger)

	// API層を初期化
	handler := api.NewSimulationHandler(simulationUseCase, requestService, cfg.Server.MaxUploadBytes, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler, cfg.Server.CORSAllowedOrigins, logger),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("Listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return err
	}

	logger.Info("Server stopped")
	return nil
}
