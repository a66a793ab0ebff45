// Package bootstrap provides dependency initialization for the engine.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/memeforge/engine/internal/compositor"
	"github.com/memeforge/engine/internal/config"
	"github.com/memeforge/engine/internal/engine"
	"github.com/memeforge/engine/internal/fontface"
	"github.com/memeforge/engine/internal/slideshow"
	"github.com/memeforge/engine/internal/storage"
	"github.com/memeforge/engine/internal/transcode"
	"github.com/memeforge/engine/internal/video"
	"github.com/memeforge/engine/internal/workspace"
)

// Dependencies holds the initialized components of the application.
type Dependencies struct {
	Engine *engine.Engine
	Store  storage.Store
}

// NewDependencies creates and wires all components from configuration.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	fonts, err := fontface.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("create font registry: %w", err)
	}
	if cfg.FontDir != "" {
		if err := fonts.LoadDir(cfg.FontDir); err != nil {
			// Embedded fonts still cover rendering, so a bad font
			// directory is not fatal.
			logger.Warn("loading font directory failed",
				slog.String("dir", cfg.FontDir),
				slog.String("error", err.Error()),
			)
		}
	}

	workspaces, err := workspace.NewManager(cfg.TempDir, logger)
	if err != nil {
		return nil, fmt.Errorf("create workspace manager: %w", err)
	}

	runner := transcode.NewRunner(cfg.FFmpegPath, cfg.FFprobePath, cfg.TranscodeTimeout(), logger)

	eng := engine.New(
		compositor.New(fonts, logger),
		video.NewRenderer(runner, logger),
		slideshow.NewAssembler(runner, logger),
		workspaces,
		logger,
	)

	return &Dependencies{
		Engine: eng,
		Store:  store,
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.S3Enabled() {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 store: %w", err)
		}
		logger.Info("S3 store configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStore(cfg.ArtifactDir)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}
	logger.Info("local store configured",
		slog.String("dir", localStore.Dir()),
	)
	return localStore, nil
}
