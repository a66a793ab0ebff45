package caption

import (
	"testing"

	"github.com/memeforge/engine/internal/mediatype"
)

func fptr(v float64) *float64 { return &v }

func sized(size float64) *FontFace { return &FontFace{Size: size} }

func TestValidate_FontSizeRequired(t *testing.T) {
	kinds := []mediatype.Kind{mediatype.Image, mediatype.Video, mediatype.GIF}

	t.Run("missing fontFace", func(t *testing.T) {
		for _, kind := range kinds {
			res := Validate([]Caption{{Text: "hi"}}, kind)
			if res.IsValid {
				t.Errorf("kind %q: caption without fontFace should be invalid", kind)
			}
		}
	})

	t.Run("missing fontSize", func(t *testing.T) {
		for _, kind := range kinds {
			res := Validate([]Caption{{Text: "hi", FontFace: &FontFace{}}}, kind)
			if res.IsValid {
				t.Errorf("kind %q: caption without fontSize should be invalid", kind)
			}
		}
	})

	t.Run("later caption fails the set", func(t *testing.T) {
		captions := []Caption{
			{Text: "ok", FontFace: sized(40), Start: fptr(0), End: fptr(0.5)},
			{Text: "bad", FontFace: &FontFace{}},
		}
		if res := Validate(captions, mediatype.Video); res.IsValid {
			t.Error("set with one invalid caption should be invalid")
		}
	})
}

func TestValidate_ImageTiming(t *testing.T) {
	t.Run("start alone is illegal", func(t *testing.T) {
		res := Validate([]Caption{{FontFace: sized(40), Start: fptr(0)}}, mediatype.Image)
		if res.IsValid {
			t.Error("image caption with start should be invalid, even at start=0")
		}
	})

	t.Run("end alone is illegal", func(t *testing.T) {
		res := Validate([]Caption{{FontFace: sized(40), End: fptr(1)}}, mediatype.Image)
		if res.IsValid {
			t.Error("image caption with end should be invalid")
		}
	})

	t.Run("untimed image set is valid", func(t *testing.T) {
		res := Validate([]Caption{{FontFace: sized(40)}, {FontFace: sized(30)}}, mediatype.Image)
		if !res.IsValid {
			t.Error("untimed image caption set should be valid")
		}
	})
}

func TestValidate_RenderModeClassification(t *testing.T) {
	t.Run("untimed video set is static", func(t *testing.T) {
		res := Validate([]Caption{{FontFace: sized(40)}}, mediatype.Video)
		if !res.IsValid || res.Mode != ModeStatic {
			t.Errorf("got %+v, want valid static", res)
		}
	})

	t.Run("fully timed video set is dynamic", func(t *testing.T) {
		captions := []Caption{
			{FontFace: sized(40), Start: fptr(0), End: fptr(0.5)},
			{FontFace: sized(40), Start: fptr(0.5), End: fptr(1)},
		}
		res := Validate(captions, mediatype.Video)
		if !res.IsValid || res.Mode != ModeDynamic {
			t.Errorf("got %+v, want valid dynamic", res)
		}
	})

	t.Run("gif follows the video rules", func(t *testing.T) {
		res := Validate([]Caption{{FontFace: sized(40)}}, mediatype.GIF)
		if !res.IsValid || res.Mode != ModeStatic {
			t.Errorf("got %+v, want valid static", res)
		}
	})

	// The classification short-circuits on the first caption without a
	// time window: the whole set reads as static even though the second
	// caption is timed. Documented behavior, relied upon downstream.
	t.Run("first untimed caption wins", func(t *testing.T) {
		captions := []Caption{
			{FontFace: sized(40)},
			{FontFace: sized(40), Start: fptr(0.2), End: fptr(0.8)},
		}
		res := Validate(captions, mediatype.Video)
		if !res.IsValid || res.Mode != ModeStatic {
			t.Errorf("got %+v, want valid static via short circuit", res)
		}
	})

	t.Run("empty set is dynamic", func(t *testing.T) {
		res := Validate(nil, mediatype.Video)
		if !res.IsValid || res.Mode != ModeDynamic {
			t.Errorf("got %+v, want valid dynamic", res)
		}
	})
}
