package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/memeforge/engine/internal/caption"
	"github.com/memeforge/engine/internal/transcode"
)

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH, skipping test")
	}
}

func createTestVideo(t *testing.T, path string, duration float64) {
	t.Helper()
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=gray:s=128x96:d=%.1f", duration),
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-pix_fmt", "yuv420p",
		path,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create test video: %v\noutput: %s", err, output)
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	runner := transcode.NewRunner("", "", 30*time.Second, nil)
	return NewRenderer(runner, nil)
}

func TestRenderStatic(t *testing.T) {
	skipIfNoFFmpeg(t)

	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "template.mp4")
	output := filepath.Join(tmpDir, "meme.mp4")
	createTestVideo(t, source, 1.0)

	captions := []caption.Caption{
		{Text: "static text", FontFace: &caption.FontFace{Size: 24}},
	}

	r := newRenderer(t)
	if err := r.RenderStatic(context.Background(), source, output, captions); err != nil {
		t.Fatalf("RenderStatic: %v", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestRenderDynamic(t *testing.T) {
	skipIfNoFFmpeg(t)

	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "template.mp4")
	output := filepath.Join(tmpDir, "meme.mp4")
	createTestVideo(t, source, 2.0)

	captions := []caption.Caption{
		{Text: "early", FontFace: &caption.FontFace{Size: 24}, Start: fptr(0), End: fptr(0.5)},
		{Text: "late", FontFace: &caption.FontFace{Size: 24}, Start: fptr(0.5), End: fptr(1)},
	}

	r := newRenderer(t)
	if err := r.RenderDynamic(context.Background(), source, output, captions); err != nil {
		t.Fatalf("RenderDynamic: %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestRenderStatic_MissingSource(t *testing.T) {
	skipIfNoFFmpeg(t)

	r := newRenderer(t)
	err := r.RenderStatic(context.Background(), "/nonexistent/template.mp4", filepath.Join(t.TempDir(), "out.mp4"), nil)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
