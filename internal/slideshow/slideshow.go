// Package slideshow assembles a sequence of still images into an
// MP4 video with a fixed per-slide duration.
package slideshow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/memeforge/engine/internal/transcode"
)

// ErrNoImages is returned when an assembly is requested with an empty
// image list.
var ErrNoImages = errors.New("slideshow: no images provided")

const (
	framePrefix = "img_"
	outputName  = "slideshow.mp4"

	outputFrameRate = 24
	outputWidth     = 640
	outputBitrate   = "1024k"
)

// Assembler builds slideshow videos from encoded still images. Images
// are staged as numbered frame files inside a caller-provided working
// directory and fed to the encoder as an image sequence.
type Assembler struct {
	runner *transcode.Runner
	logger *slog.Logger
}

func NewAssembler(runner *transcode.Runner, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{runner: runner, logger: logger}
}

// Assemble writes the images as an ordered frame sequence under dir,
// encodes them into an MP4 holding each image for perSlideSeconds, and
// returns the path of the resulting video. The frame files are left in
// dir; the caller owns the directory's lifecycle.
func (a *Assembler) Assemble(ctx context.Context, images [][]byte, perSlideSeconds float64, dir string) (string, error) {
	if len(images) == 0 {
		return "", ErrNoImages
	}
	if perSlideSeconds <= 0 {
		return "", fmt.Errorf("slideshow: per-slide duration must be positive, got %v", perSlideSeconds)
	}

	if err := writeFrames(images, dir); err != nil {
		return "", err
	}

	pattern := filepath.Join(dir, framePrefix+"%03d.png")
	output := filepath.Join(dir, outputName)

	// The input frame rate is the inverse of the slide duration, so
	// every source image occupies exactly one slide interval.
	args := ffmpeg.Input(pattern, ffmpeg.KwArgs{
		"framerate": "1/" + strconv.FormatFloat(perSlideSeconds, 'f', -1, 64),
	}).
		Output(output, ffmpeg.KwArgs{
			"vf":      fmt.Sprintf("scale=%d:-2", outputWidth),
			"r":       outputFrameRate,
			"c:v":     "libx264",
			"b:v":     outputBitrate,
			"pix_fmt": "yuv420p",
			"f":       "mp4",
		}).
		OverWriteOutput().
		GetArgs()

	a.logger.Info("assembling slideshow",
		slog.Int("images", len(images)),
		slog.Float64("per_slide_seconds", perSlideSeconds),
		slog.String("output", output),
	)

	if err := a.runner.Run(ctx, args); err != nil {
		return "", fmt.Errorf("slideshow: assembly failed: %w", err)
	}
	return output, nil
}

// writeFrames stages the images under dir with zero-padded sequence
// names so the encoder consumes them in input order.
func writeFrames(images [][]byte, dir string) error {
	for i, img := range images {
		name := fmt.Sprintf("%s%03d.png", framePrefix, i)
		if err := os.WriteFile(filepath.Join(dir, name), img, 0o644); err != nil {
			return fmt.Errorf("slideshow: writing frame %d: %w", i, err)
		}
	}
	return nil
}
