// Package main provides the memeforge command line interface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	"github.com/memeforge/engine/internal/bootstrap"
	"github.com/memeforge/engine/internal/caption"
	"github.com/memeforge/engine/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() string {
	return `usage: memeforge <command> [flags]

commands:
  meme       render captions onto an image, GIF or video template
  slideshow  assemble images into a slideshow video
`
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage())
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := bootstrap.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	switch args[0] {
	case "meme":
		return runMeme(ctx, deps, args[1:])
	case "slideshow":
		return runSlideshow(ctx, deps, args[1:])
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage())
	}
}

// memeRequest is the decoded form of the --captions JSON document.
type memeRequest struct {
	Captions []caption.Caption `json:"captions" validate:"required,min=1,dive"`
}

func runMeme(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("meme", flag.ContinueOnError)
	template := fs.String("template", "", "path to the template file")
	mimeType := fs.String("mime", "", "MIME type of the template, e.g. image/png or video/mp4")
	captionsJSON := fs.String("captions", "", "captions as a JSON document or @file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *template == "" || *mimeType == "" || *captionsJSON == "" {
		return fmt.Errorf("meme: -template, -mime and -captions are required")
	}

	req, err := decodeCaptions(*captionsJSON)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*template)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	result, err := deps.Engine.RenderMeme(ctx, data, *mimeType, req.Captions)
	if err != nil {
		return err
	}

	ref, err := deps.Store.PersistArtifact(ctx, result.Data, result.MimeType)
	if err != nil {
		return err
	}

	fmt.Println(ref)
	return nil
}

func runSlideshow(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("slideshow", flag.ContinueOnError)
	perSlide := fs.Float64("slide-seconds", 4, "seconds each image is shown")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("slideshow: at least one image path is required")
	}

	images := make([][]byte, 0, fs.NArg())
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading image %s: %w", path, err)
		}
		images = append(images, data)
	}

	out, err := deps.Engine.BuildSlideshow(ctx, images, *perSlide)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return fmt.Errorf("reading slideshow output: %w", err)
	}

	ref, err := deps.Store.PersistArtifact(ctx, data, "video/mp4")
	if err != nil {
		return err
	}

	fmt.Println(ref)
	return nil
}

// decodeCaptions parses the --captions value, which is either an
// inline JSON array of captions or @path pointing at a JSON file.
func decodeCaptions(arg string) (*memeRequest, error) {
	raw := []byte(arg)
	if len(arg) > 1 && arg[0] == '@' {
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("reading captions file: %w", err)
		}
		raw = data
	}

	var captions []caption.Caption
	if err := json.Unmarshal(raw, &captions); err != nil {
		return nil, fmt.Errorf("parsing captions: %w", err)
	}

	req := &memeRequest{Captions: captions}
	if err := validator.New().Struct(req); err != nil {
		return nil, fmt.Errorf("invalid captions: %w", err)
	}
	return req, nil
}
