package caption

import "github.com/memeforge/engine/internal/mediatype"

// RenderMode classifies how a video caption set must be rendered.
type RenderMode string

const (
	// ModeStatic applies one overlay configuration for the whole clip.
	ModeStatic RenderMode = "static"
	// ModeDynamic switches overlays on and off at per-caption timestamps.
	ModeDynamic RenderMode = "dynamic"
)

// Result is the outcome of validating a caption set. Mode is only
// meaningful when IsValid is true.
type Result struct {
	IsValid bool
	Mode    RenderMode
}

// Validate checks a caption set against the constraints of the target
// media kind and classifies the render mode for non-image media.
//
// Note the short circuit on non-image media: the set is classified
// static as soon as the first caption without a time window is found,
// even if later captions do carry one. Downstream behavior depends on
// this, so it is kept as is.
func Validate(captions []Caption, kind mediatype.Kind) Result {
	for _, c := range captions {
		if c.FontFace == nil || c.FontFace.Size <= 0 {
			return Result{IsValid: false}
		}

		if kind != mediatype.Image {
			if c.Start == nil || c.End == nil {
				return Result{IsValid: true, Mode: ModeStatic}
			}
		} else if c.Start != nil || c.End != nil {
			// Temporal data on a still image is invalid.
			return Result{IsValid: false}
		}
	}

	return Result{IsValid: true, Mode: ModeDynamic}
}
