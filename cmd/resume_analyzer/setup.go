package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AntoScher/resume-analyzer/internal/config"
	"github.com/AntoScher/resume-analyzer/internal/db"
	"github.com/AntoScher/resume-analyzer/internal/fetch"
	"github.com/AntoScher/resume-analyzer/internal/lexicon"
	"github.com/AntoScher/resume-analyzer/internal/llm"
	"github.com/AntoScher/resume-analyzer/internal/logger"
	"github.com/AntoScher/resume-analyzer/internal/pipeline"
)

// loadConfig merges the optional config file, environment variables, and
// defaults, then initializes logging.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg = cfg.FromEnv().MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, nil
}

// buildRunner assembles a pipeline runner from the configuration. The
// returned cleanup function closes any opened integrations.
func buildRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, func(), error) {
	lex := lexicon.Default()
	if cfg.LexiconPath != "" {
		loaded, err := lexicon.Load(cfg.LexiconPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load lexicon: %w", err)
		}
		lex = loaded
	}

	runner := pipeline.NewRunner(lex)
	runner.Fetch = &fetch.Options{
		Timeout:    time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		MaxRetries: cfg.FetchMaxRetries,
	}

	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("database unavailable, history disabled")
		} else {
			runner.Database = database
			cleanups = append(cleanups, database.Close)
		}
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Gemini client unavailable, AI review disabled")
		} else {
			runner.Reviewer = llm.NewReviewer(client)
			cleanups = append(cleanups, func() { _ = client.Close() })
		}
	}

	return runner, cleanup, nil
}
