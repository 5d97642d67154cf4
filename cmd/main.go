package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/JohnSili/multimodal-demo/pkg/api"
	"github.com/JohnSili/multimodal-demo/pkg/clients/gemini"
	"github.com/JohnSili/multimodal-demo/pkg/clients/ollama"
	"github.com/JohnSili/multimodal-demo/pkg/clients/openai"
	"github.com/JohnSili/multimodal-demo/pkg/clients/tesseract"
	"github.com/JohnSili/multimodal-demo/pkg/config"
	"github.com/JohnSili/multimodal-demo/pkg/inference"
	"github.com/JohnSili/multimodal-demo/pkg/logging"
	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/repository/ephemeral"
	imagerepo "github.com/JohnSili/multimodal-demo/pkg/repository/image"
	"github.com/JohnSili/multimodal-demo/pkg/repository/result"
	"github.com/JohnSili/multimodal-demo/pkg/service"
	"github.com/JohnSili/multimodal-demo/pkg/validation"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("service stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config failed: %w", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Warn().Err(err).Msg("logging config ignored")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	reg := metrics.NewRegistry()

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	runner := inference.NewRunner(engine, inference.Options{
		Device:       cfg.Device,
		Timeout:      cfg.Timeout,
		LoadRetry:    cfg.LoadRetry,
		MaxNewTokens: cfg.MaxNewTokens,
		Registry:     reg,
	})

	languages, err := validation.NewLanguages(cfg.OCRLanguages, cfg.OCRDefaultLanguage)
	if err != nil {
		return err
	}
	sessions := imagerepo.NewMemoryRepository(reg)
	results := result.NewMemoryRepository(reg)

	orch := service.NewOrchestrator(service.Deps{
		Validator: validation.NewValidator(validation.Limits{
			MaxImageSize:      cfg.MaxImageSize,
			MaxImageDimension: cfg.MaxImageDimension,
		}),
		Languages: languages,
		Sessions:  sessions,
		Results:   results,
		Inferer:   runner,
		Registry:  reg,
	})

	janitor := ephemeral.NewJanitor(cfg.SweepInterval, reg,
		ephemeral.Target{Store: sessions.Store(), TTL: cfg.SessionTimeout},
		ephemeral.Target{Store: results.Store(), TTL: cfg.OCRResultTimeout},
	)

	server := api.NewServer(api.NewHandlers(orch, runner), reg, api.ServerOptions{
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Start(gctx) })
	g.Go(func() error { return janitor.Run(gctx) })
	g.Go(func() error {
		log.Info().Str("address", cfg.Address).Str("backend", engine.Name()).Msg("http server starting")
		if err := server.Start(cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	sessions.Clear(ctx)
	results.Clear(ctx)
	return err
}

func newEngine(cfg config.Config) (inference.Engine, error) {
	switch cfg.Backend {
	case "openai":
		return openai.NewClient(cfg.APIKey, cfg.InferenceURL, cfg.ModelName), nil
	case "gemini":
		return gemini.New(cfg.APIKey, cfg.ModelName), nil
	case "ollama":
		return ollama.NewEngine(cfg.InferenceURL, cfg.ModelName), nil
	case "tesseract":
		return tesseract.New(), nil
	default:
		return nil, fmt.Errorf("unknown inference backend %q", cfg.Backend)
	}
}
