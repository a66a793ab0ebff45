// Package video burns caption overlays into video and GIF templates
// through the external encoder.
package video

import (
	"context"
	"fmt"
	"log/slog"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/memeforge/engine/internal/caption"
	"github.com/memeforge/engine/internal/transcode"
)

// Renderer drives one encoder pass per render call. It keeps no state
// between calls and is safe for concurrent use; each call pays for its
// own subprocess.
type Renderer struct {
	runner *transcode.Runner
	logger *slog.Logger
}

// NewRenderer creates a Renderer backed by the given transcode runner.
func NewRenderer(runner *transcode.Runner, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{runner: runner, logger: logger}
}

// RenderStatic burns one caption overlay configuration into the whole
// clip. The source dimensions are probed first because caption anchors
// depend on them.
func (r *Renderer) RenderStatic(ctx context.Context, sourcePath, outputPath string, captions []caption.Caption) error {
	meta, err := r.runner.Probe(ctx, sourcePath)
	if err != nil {
		return fmt.Errorf("probe source: %w", err)
	}

	filters := BuildOverlayFilters(captions, meta.Width, meta.Height, 0)
	return r.encode(ctx, sourcePath, outputPath, filters)
}

// RenderDynamic burns time-gated overlays in a single encoder pass so
// captions can appear and disappear at their fractional timestamps.
func (r *Renderer) RenderDynamic(ctx context.Context, sourcePath, outputPath string, captions []caption.Caption) error {
	meta, err := r.runner.Probe(ctx, sourcePath)
	if err != nil {
		return fmt.Errorf("probe source: %w", err)
	}

	filters := BuildOverlayFilters(captions, meta.Width, meta.Height, meta.Duration)
	return r.encode(ctx, sourcePath, outputPath, filters)
}

func (r *Renderer) encode(ctx context.Context, sourcePath, outputPath, filters string) error {
	kwargs := ffmpeg.KwArgs{}
	if filters != "" {
		kwargs["vf"] = filters
	}
	args := ffmpeg.Input(sourcePath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		GetArgs()

	r.logger.Info("rendering video meme",
		slog.String("source", sourcePath),
		slog.String("output", outputPath),
	)
	if err := r.runner.Run(ctx, args); err != nil {
		return fmt.Errorf("encode video meme: %w", err)
	}
	return nil
}
