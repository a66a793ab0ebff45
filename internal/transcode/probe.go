package transcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrNoVideoStream is returned when ffprobe finds no video stream in
// the probed file.
var ErrNoVideoStream = errors.New("transcode: no video stream in source")

// Metadata describes the first video stream of a media file.
type Metadata struct {
	Width    int
	Height   int
	Duration float64
}

type probeStream struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Duration string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
}

// Probe reads width, height and duration of the first video stream
// via ffprobe. A missing duration (common for GIF streams) parses as 0.
func (r *Runner) Probe(ctx context.Context, path string) (Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,duration",
		"-of", "json",
		path,
	}

	// #nosec G204 - binary path is operator configuration
	cmd := exec.CommandContext(ctx, r.ffprobePath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Metadata{}, &Error{
			Args:    args,
			Stderr:  stderr.String(),
			Err:     fmt.Errorf("probe: %w", err),
			Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded),
		}
	}

	return parseProbeOutput(stdout.Bytes())
}

func parseProbeOutput(data []byte) (Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Metadata{}, fmt.Errorf("transcode: parse probe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return Metadata{}, ErrNoVideoStream
	}

	s := out.Streams[0]
	meta := Metadata{Width: s.Width, Height: s.Height}
	if s.Duration != "" {
		d, err := strconv.ParseFloat(s.Duration, 64)
		if err == nil {
			meta.Duration = d
		}
	}
	return meta, nil
}
