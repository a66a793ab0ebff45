// Package engine is the composition facade. It validates requests,
// routes media to the image or video pipeline, and owns workspace
// lifecycle around the external encoder.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/memeforge/engine/internal/caption"
	"github.com/memeforge/engine/internal/compositor"
	"github.com/memeforge/engine/internal/mediatype"
	"github.com/memeforge/engine/internal/normalizer"
	"github.com/memeforge/engine/internal/slideshow"
	"github.com/memeforge/engine/internal/video"
	"github.com/memeforge/engine/internal/workspace"
)

var (
	// ErrUnsupportedMedia is returned for MIME types outside the
	// image, video and GIF families.
	ErrUnsupportedMedia = errors.New("engine: unsupported media type")

	// ErrInvalidCaptions is returned when the caption set fails
	// validation for the requested media kind.
	ErrInvalidCaptions = errors.New("engine: invalid captions")
)

// SlideshowResolution is the frame size every slideshow image is
// normalized to before assembly.
var SlideshowResolution = normalizer.Resolution{Width: 640, Height: 512}

// slideshowGrace delays workspace cleanup so consumers reading the
// output file directly from disk have time to do so.
const slideshowGrace = 5 * time.Minute

// Result is a rendered artifact with its MIME type.
type Result struct {
	Data     []byte
	MimeType string
}

// Engine wires the rendering pipelines behind a single API.
type Engine struct {
	compositor *compositor.Compositor
	renderer   *video.Renderer
	assembler  *slideshow.Assembler
	workspaces *workspace.Manager
	logger     *slog.Logger
}

func New(
	comp *compositor.Compositor,
	renderer *video.Renderer,
	assembler *slideshow.Assembler,
	workspaces *workspace.Manager,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		compositor: comp,
		renderer:   renderer,
		assembler:  assembler,
		workspaces: workspaces,
		logger:     logger,
	}
}

// ClassifyMedia maps a MIME type onto a media kind.
func (e *Engine) ClassifyMedia(mimeType string) mediatype.Kind {
	return mediatype.Classify(mimeType)
}

// ValidateCaptions reports whether the caption set is renderable onto
// media of the given MIME type, and if so in which mode.
func (e *Engine) ValidateCaptions(captions []caption.Caption, mimeType string) caption.Result {
	return caption.Validate(captions, mediatype.Classify(mimeType))
}

// RenderMeme routes the template to the pipeline matching its MIME
// type. Image templates are composited in-process; video and GIF
// templates go through the external encoder, with the caption
// validation mode choosing between static and timed overlays.
func (e *Engine) RenderMeme(ctx context.Context, template []byte, mimeType string, captions []caption.Caption) (*Result, error) {
	kind := mediatype.Classify(mimeType)
	if !kind.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
	}

	if kind == mediatype.Image {
		data, err := e.RenderImageMeme(template, captions)
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, MimeType: "image/jpeg"}, nil
	}

	res := caption.Validate(captions, kind)
	if !res.IsValid {
		return nil, ErrInvalidCaptions
	}

	var (
		data []byte
		err  error
	)
	if res.Mode == caption.ModeStatic {
		data, err = e.RenderStaticVideoMeme(ctx, template, mimeType, captions)
	} else {
		data, err = e.RenderDynamicVideoMeme(ctx, template, mimeType, captions)
	}
	if err != nil {
		return nil, err
	}

	out := "video/mp4"
	if kind == mediatype.GIF {
		out = "image/gif"
	}
	return &Result{Data: data, MimeType: out}, nil
}

// RenderImageMeme composites the captions onto an image template and
// returns the encoded result.
func (e *Engine) RenderImageMeme(template []byte, captions []caption.Caption) ([]byte, error) {
	if res := caption.Validate(captions, mediatype.Image); !res.IsValid {
		return nil, ErrInvalidCaptions
	}
	return e.compositor.Render(template, captions)
}

// RenderStaticVideoMeme burns the captions onto the video for its
// whole duration.
func (e *Engine) RenderStaticVideoMeme(ctx context.Context, template []byte, mimeType string, captions []caption.Caption) ([]byte, error) {
	return e.renderVideo(ctx, template, mimeType, captions, e.renderer.RenderStatic)
}

// RenderDynamicVideoMeme burns each caption onto the video only
// within its start/end window.
func (e *Engine) RenderDynamicVideoMeme(ctx context.Context, template []byte, mimeType string, captions []caption.Caption) ([]byte, error) {
	return e.renderVideo(ctx, template, mimeType, captions, e.renderer.RenderDynamic)
}

func (e *Engine) renderVideo(
	ctx context.Context,
	template []byte,
	mimeType string,
	captions []caption.Caption,
	render func(ctx context.Context, sourcePath, outputPath string, captions []caption.Caption) error,
) ([]byte, error) {
	kind := mediatype.Classify(mimeType)
	suffix, ok := kind.FileSuffix()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
	}

	ws, err := e.workspaces.Acquire()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Release(); err != nil {
			e.logger.Warn("workspace release failed",
				slog.String("dir", ws.Dir()),
				slog.String("error", err.Error()),
			)
		}
	}()

	source := ws.Path("template" + suffix)
	output := ws.Path("meme" + suffix)
	if err := os.WriteFile(source, template, 0o644); err != nil {
		return nil, fmt.Errorf("engine: staging template: %w", err)
	}

	if err := render(ctx, source, output, captions); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("engine: reading rendered output: %w", err)
	}
	return data, nil
}

// NormalizeImages resizes all images onto a shared canvas size,
// letterboxing as needed. A nil target derives the canvas from the
// per-axis maxima of the inputs.
func (e *Engine) NormalizeImages(images [][]byte, target *normalizer.Resolution) ([][]byte, error) {
	return normalizer.ResizeToCommonSize(images, target)
}

// BuildSlideshow normalizes the images to the slideshow resolution
// and assembles them into an MP4 with the given per-slide duration.
// The workspace holding the output lingers briefly so the returned
// path stays readable.
func (e *Engine) BuildSlideshow(ctx context.Context, images [][]byte, perSlideSeconds float64) (string, error) {
	if len(images) == 0 {
		return "", slideshow.ErrNoImages
	}

	target := SlideshowResolution
	normalized, err := normalizer.ResizeToCommonSize(images, &target)
	if err != nil {
		return "", err
	}

	ws, err := e.workspaces.Acquire()
	if err != nil {
		return "", err
	}
	ws.ReleaseAfter(slideshowGrace)

	return e.assembler.Assemble(ctx, normalized, perSlideSeconds, ws.Dir())
}
