package caption

// Default font attributes applied when a caption's FontFace omits them.
const (
	DefaultStyle       = "normal"
	DefaultVariant     = "normal"
	DefaultWeight      = "normal"
	DefaultSize        = 40.0
	DefaultFamily      = "Roboto"
	DefaultColor       = "white"
	DefaultStrokeColor = "black"
	DefaultStrokeWidth = 4.0
)

// ResolvedFontFace is a FontFace with every attribute filled in.
type ResolvedFontFace struct {
	Style       string
	Variant     string
	Weight      string
	Size        float64
	Family      string
	Color       string
	StrokeColor string
	StrokeWidth float64
}

// ResolveFontFace returns a fully populated copy of ff with defaults
// applied for missing attributes. The input is never mutated; a nil
// input yields the full default face.
func ResolveFontFace(ff *FontFace) ResolvedFontFace {
	r := ResolvedFontFace{
		Style:       DefaultStyle,
		Variant:     DefaultVariant,
		Weight:      DefaultWeight,
		Size:        DefaultSize,
		Family:      DefaultFamily,
		Color:       DefaultColor,
		StrokeColor: DefaultStrokeColor,
		StrokeWidth: DefaultStrokeWidth,
	}
	if ff == nil {
		return r
	}
	if ff.Style != "" {
		r.Style = ff.Style
	}
	if ff.Variant != "" {
		r.Variant = ff.Variant
	}
	if ff.Weight != "" {
		r.Weight = ff.Weight
	}
	if ff.Size > 0 {
		r.Size = ff.Size
	}
	if ff.Family != "" {
		r.Family = ff.Family
	}
	if ff.Color != "" {
		r.Color = ff.Color
	}
	if ff.StrokeColor != "" {
		r.StrokeColor = ff.StrokeColor
	}
	if ff.StrokeWidth > 0 {
		r.StrokeWidth = float64(ff.StrokeWidth)
	}
	return r
}
