// Package compositor renders caption sets onto still images.
package compositor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"log/slog"

	// Registered decoders for the template formats the engine accepts.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/memeforge/engine/internal/caption"
	"github.com/memeforge/engine/internal/fontface"
)

// ErrDecode is returned when the template bytes are not a valid image.
var ErrDecode = errors.New("compositor: decode template image")

// jpegQuality matches the original artifacts closely enough while
// keeping outputs reasonably small.
const jpegQuality = 90

// Compositor draws caption text onto template images. It holds no
// per-render state and is safe for concurrent use.
type Compositor struct {
	fonts  *fontface.Registry
	logger *slog.Logger
}

// New creates a Compositor using the given font registry.
func New(fonts *fontface.Registry, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compositor{fonts: fonts, logger: logger}
}

// Render decodes the template, draws every caption at its computed
// anchor with an outlined (stroke-then-fill) look, and returns the
// composed image encoded as JPEG. The output canvas always matches the
// template dimensions.
func (c *Compositor) Render(template []byte, captions []caption.Caption) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(template))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Src)

	anchors := caption.Layout(captions, float64(width), float64(height))
	for i, capt := range captions {
		if err := c.drawCaption(canvas, capt, anchors[i]); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("compositor: encode output: %w", err)
	}

	c.logger.Debug("image meme rendered",
		slog.String("template_format", format),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("captions", len(captions)),
	)
	return out.Bytes(), nil
}

// drawCaption measures the text at its resolved font and strokes then
// fills it so the fill sits on top of the outline.
func (c *Compositor) drawCaption(canvas *image.RGBA, capt caption.Caption, anchor caption.Anchor) error {
	resolved := caption.ResolveFontFace(capt.FontFace)

	face, err := c.fonts.Face(resolved.Family, resolved.Weight, resolved.Style, resolved.Size)
	if err != nil {
		return fmt.Errorf("compositor: resolve font face: %w", err)
	}
	defer func() { _ = face.Close() }()

	advance := font.MeasureString(face, capt.Text)
	ascent := face.Metrics().Ascent

	var xOff, yOff fixed.Int26_6
	switch anchor.Horizontal {
	case caption.AlignCenter:
		xOff = -advance / 2
	case caption.AlignEnd:
		xOff = -advance
	}
	switch anchor.Vertical {
	case caption.AlignCenter:
		yOff = ascent / 2
	case caption.AlignStart:
		yOff = ascent
	}

	dot := fixed.Point26_6{
		X: toFixed(anchor.X) + xOff,
		Y: toFixed(anchor.Y) + yOff,
	}

	fill := parseColor(resolved.Color)
	stroke := parseColor(resolved.StrokeColor)

	// Emulate a stroked outline by drawing the text at every integer
	// offset within half the stroke width of the baseline position.
	radius := int(resolved.StrokeWidth/2 + 0.5)
	drawer := &font.Drawer{Dst: canvas, Src: image.NewUniform(stroke), Face: face}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			drawer.Dot = fixed.Point26_6{
				X: dot.X + fixed.I(dx),
				Y: dot.Y + fixed.I(dy),
			}
			drawer.DrawString(capt.Text)
		}
	}

	drawer.Src = image.NewUniform(fill)
	drawer.Dot = dot
	drawer.DrawString(capt.Text)
	return nil
}

// toFixed converts a pixel coordinate to 26.6 fixed point.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
