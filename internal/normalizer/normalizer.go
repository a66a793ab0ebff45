// Package normalizer resizes heterogeneous image sets onto a uniform
// canvas for slideshow assembly, preserving aspect ratio by
// letterboxing.
package normalizer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// ErrDecode is returned when a source buffer is not a valid image.
var ErrDecode = errors.New("normalizer: decode source image")

// Resolution is a target canvas size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// fit computes the drawn region for a source of srcW x srcH centered
// in a canvas of dstW x dstH without distortion. Relatively wider
// sources fill the canvas width, everything else fills the height.
func fit(srcW, srcH, dstW, dstH float64) (w, h, dx, dy float64) {
	imageRatio := srcW / srcH
	canvasRatio := dstW / dstH

	if imageRatio > canvasRatio {
		w = dstW
		h = dstW / imageRatio
	} else {
		w = dstH * imageRatio
		h = dstH
	}
	dx = (dstW - w) / 2
	dy = (dstH - h) / 2
	return w, h, dx, dy
}

// ResizeToCommonSize letterboxes every source image onto one common
// canvas and returns the results as PNG buffers in input order. When
// no target resolution is given, the canvas defaults to the per-axis
// maxima across the set (each dimension maximized independently).
// Padding keeps the canvas's zero-value transparent background.
func ResizeToCommonSize(images [][]byte, target *Resolution) ([][]byte, error) {
	decoded := make([]image.Image, len(images))
	for i, buf := range images {
		img, _, err := image.Decode(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("%w (index %d): %w", ErrDecode, i, err)
		}
		decoded[i] = img
	}

	var canvasW, canvasH int
	if target != nil {
		canvasW, canvasH = target.Width, target.Height
	} else {
		for _, img := range decoded {
			b := img.Bounds()
			if b.Dx() > canvasW {
				canvasW = b.Dx()
			}
			if b.Dy() > canvasH {
				canvasH = b.Dy()
			}
		}
	}

	out := make([][]byte, len(decoded))
	for i, img := range decoded {
		b := img.Bounds()
		w, h, dx, dy := fit(float64(b.Dx()), float64(b.Dy()), float64(canvasW), float64(canvasH))

		canvas := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
		dstRect := image.Rect(
			int(math.Round(dx)),
			int(math.Round(dy)),
			int(math.Round(dx+w)),
			int(math.Round(dy+h)),
		)
		xdraw.CatmullRom.Scale(canvas, dstRect, img, b, xdraw.Over, nil)

		var buf bytes.Buffer
		if err := png.Encode(&buf, canvas); err != nil {
			return nil, fmt.Errorf("normalizer: encode image %d: %w", i, err)
		}
		out[i] = buf.Bytes()
	}
	return out, nil
}
