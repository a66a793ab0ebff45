package video

import (
	"strings"
	"testing"

	"github.com/memeforge/engine/internal/caption"
)

func fptr(v float64) *float64 { return &v }

func TestBuildOverlayFilters_Defaults(t *testing.T) {
	captions := []caption.Caption{{Text: "hello"}}

	got := BuildOverlayFilters(captions, 640, 400, 0)

	for _, want := range []string{
		"drawtext=",
		"font='Sans'",
		"text='hello'",
		"fontsize=30",
		"fontcolor=white",
		"bordercolor=black",
		"borderw=2",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("filter %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "enable=") {
		t.Error("untimed caption must not carry an enable gate")
	}
}

func TestBuildOverlayFilters_StyledCaption(t *testing.T) {
	captions := []caption.Caption{{
		Text: "styled",
		FontFace: &caption.FontFace{
			Family:      "Impact",
			Size:        48,
			Color:       "yellow",
			StrokeColor: "red",
			StrokeWidth: 6,
		},
	}}

	got := BuildOverlayFilters(captions, 100, 100, 0)

	for _, want := range []string{
		"font='Impact'",
		"fontsize=48",
		"fontcolor=yellow",
		"bordercolor=red",
		// Border width is half the configured stroke width, truncated.
		"borderw=3",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("filter %q missing %q", got, want)
		}
	}
}

func TestBuildOverlayFilters_Anchors(t *testing.T) {
	t.Run("fractional position", func(t *testing.T) {
		captions := []caption.Caption{{
			Text:     "pos",
			Position: &caption.Position{Top: 0.25, Left: 0.5},
		}}
		got := BuildOverlayFilters(captions, 640, 400, 0)
		if !strings.Contains(got, ":x=320:y=100:") {
			t.Errorf("filter %q missing position anchor x=320 y=100", got)
		}
	})

	t.Run("grid center", func(t *testing.T) {
		captions := []caption.Caption{{
			Text: "mid",
			Grid: &caption.Grid{Col: 1, Row: 1},
		}}
		got := BuildOverlayFilters(captions, 640, 400, 0)
		if !strings.Contains(got, ":x=320:y=200:") {
			t.Errorf("filter %q missing grid center anchor", got)
		}
	})
}

func TestBuildOverlayFilters_TimeGate(t *testing.T) {
	captions := []caption.Caption{
		{Text: "first", FontFace: &caption.FontFace{Size: 40}, Start: fptr(0), End: fptr(0.5)},
		{Text: "second", FontFace: &caption.FontFace{Size: 40}, Start: fptr(0.5), End: fptr(1)},
	}

	got := BuildOverlayFilters(captions, 320, 240, 10)

	parts := strings.Split(got, ",")
	if len(parts) != 2 {
		t.Fatalf("got %d filters, want 2: %q", len(parts), got)
	}
	if !strings.Contains(parts[0], "enable='gte(t,0)*lt(t,5)'") {
		t.Errorf("first filter %q missing [0,5) gate", parts[0])
	}
	if !strings.Contains(parts[1], "enable='gte(t,5)*lt(t,10)'") {
		t.Errorf("second filter %q missing [5,10) gate", parts[1])
	}
}

func TestBuildOverlayFilters_NoGateWithoutDuration(t *testing.T) {
	captions := []caption.Caption{
		{Text: "timed", FontFace: &caption.FontFace{Size: 40}, Start: fptr(0.2), End: fptr(0.8)},
	}

	// Static renders pass no duration; the caption stays visible for
	// the whole clip even though it carries a window.
	got := BuildOverlayFilters(captions, 320, 240, 0)
	if strings.Contains(got, "enable=") {
		t.Errorf("filter %q must not gate without a duration", got)
	}
}

func TestBuildOverlayFilters_TextEscaping(t *testing.T) {
	captions := []caption.Caption{{Text: `it's 100%: a\test`}}

	got := BuildOverlayFilters(captions, 100, 100, 0)

	if !strings.Contains(got, `text='it\'s 100\%\: a\\test'`) {
		t.Errorf("special characters not escaped: %q", got)
	}
}

func TestBuildOverlayFilters_Empty(t *testing.T) {
	if got := BuildOverlayFilters(nil, 640, 400, 0); got != "" {
		t.Errorf("expected empty filter string, got %q", got)
	}
}
