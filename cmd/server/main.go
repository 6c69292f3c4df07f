package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/content-studio/internal/a2a"
	"github.com/BerylCAtieno/content-studio/internal/api"
	"github.com/BerylCAtieno/content-studio/internal/config"
	"github.com/BerylCAtieno/content-studio/internal/dispatch"
	"github.com/BerylCAtieno/content-studio/internal/generator"
	"github.com/BerylCAtieno/content-studio/internal/logging"
	"github.com/BerylCAtieno/content-studio/internal/studio"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	os.Exit(exitCode(logger, run(cfg, logger)))
}

// exitCode logs err and flushes the logger before the process exits, since
// os.Exit skips deferred calls.
func exitCode(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; generation requests will fail until it is configured")
	}
	gen, err := generator.New(ctx, cfg.GeminiBackend, cfg.GeminiAPIKey, cfg.GeneratorSettings())
	if err != nil {
		return err
	}
	defer gen.Close()

	fallback, err := initialState(cfg)
	if err != nil {
		return err
	}
	snap := studio.FileSnapshotter{Path: cfg.DataFile}
	st, err := studio.Open(snap, fallback)
	if err != nil {
		return err
	}

	dispatcher := dispatch.New(gen,
		dispatch.WithLogger(logger.Named("dispatch")),
		dispatch.WithStrict(cfg.StrictValidation))

	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(logger.Named("http")))

	api.NewHandler(dispatcher, st, logger.Named("api")).Register(router)

	a2aHandler := a2a.NewA2AHandler(dispatcher, st, logger.Named("a2a"))
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/studio", a2aHandler.HandleStudio)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("content studio starting",
			zap.String("port", cfg.Port),
			zap.String("backend", cfg.GeminiBackend),
			zap.String("model", cfg.GeminiModel),
			zap.Bool("strict_validation", cfg.StrictValidation),
			zap.String("data_file", cfg.DataFile))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if err := st.Save(snap); err != nil {
		return err
	}
	logger.Info("studio saved", zap.String("data_file", cfg.DataFile))
	return nil
}

// initialState is the starting point when no snapshot exists yet: the demo
// studio, with its brand replaced by BRAND_FILE when one is given.
func initialState(cfg *config.Config) (studio.State, error) {
	now := time.Now().UTC()
	st := studio.InitialState(now)
	if cfg.BrandFile == "" {
		return st, nil
	}

	brand, err := config.LoadBrand(cfg.BrandFile, now)
	if err != nil {
		return studio.State{}, err
	}
	st.Brand = brand
	for i := range st.Contents {
		st.Contents[i].BrandID = brand.ID
	}
	return st, nil
}
