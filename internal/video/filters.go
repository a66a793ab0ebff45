package video

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/memeforge/engine/internal/caption"
)

// Overlay defaults for the video path. The encoder's text renderer has
// different font handling than the image compositor, so the defaults
// differ from the compositor's.
const (
	defaultFont        = "Sans"
	defaultFontSize    = 30.0
	defaultFontColor   = "white"
	defaultBorderColor = "black"
	defaultBorderWidth = 2
)

// escapeText escapes characters with special meaning inside a quoted
// drawtext option value.
var escapeText = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`%`, `\%`,
)

// BuildOverlayFilters produces one drawtext filter per caption,
// anchored by the shared caption layout. When duration is positive and
// a caption carries a full time window, an enable expression restricts
// its visibility to [start*duration, end*duration); untimed captions
// stay visible for the whole clip.
func BuildOverlayFilters(captions []caption.Caption, width, height int, duration float64) string {
	anchors := caption.Layout(captions, float64(width), float64(height))

	filters := make([]string, len(captions))
	for i, capt := range captions {
		font := defaultFont
		size := defaultFontSize
		color := defaultFontColor
		borderColor := defaultBorderColor
		borderWidth := defaultBorderWidth

		if ff := capt.FontFace; ff != nil {
			if ff.Family != "" {
				font = ff.Family
			}
			if ff.Size > 0 {
				size = ff.Size
			}
			if ff.Color != "" {
				color = ff.Color
			}
			if ff.StrokeColor != "" {
				borderColor = ff.StrokeColor
			}
			if ff.StrokeWidth > 0 {
				borderWidth = int(ff.StrokeWidth) / 2
			}
		}

		var b strings.Builder
		b.WriteString("drawtext=font='")
		b.WriteString(escapeText.Replace(font))
		b.WriteString("':text='")
		b.WriteString(escapeText.Replace(capt.Text))
		b.WriteString("':fontsize=")
		b.WriteString(formatNumber(size))
		b.WriteString(":fontcolor=")
		b.WriteString(color)
		b.WriteString(":x=")
		b.WriteString(formatNumber(anchors[i].X))
		b.WriteString(":y=")
		b.WriteString(formatNumber(anchors[i].Y))
		b.WriteString(":bordercolor=")
		b.WriteString(borderColor)
		b.WriteString(":borderw=")
		b.WriteString(strconv.Itoa(borderWidth))

		if duration > 0 && capt.Timed() {
			start := *capt.Start * duration
			end := *capt.End * duration
			fmt.Fprintf(&b, ":enable='gte(t,%s)*lt(t,%s)'", formatNumber(start), formatNumber(end))
		}

		filters[i] = b.String()
	}
	return strings.Join(filters, ",")
}

// formatNumber renders a float without a trailing fractional part when
// it is integral, keeping filter strings stable and readable.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
