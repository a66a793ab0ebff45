// Package caption defines the caption data model shared by the image
// and video rendering pipelines, caption-set validation, and the
// geometric layout of caption anchors.
package caption

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Position places a caption by fractional coordinates (0..1) within
// the template bounds.
type Position struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Grid places a caption on a discrete 3x3 anchor grid. Column and row
// take values 0 (near edge), 1 (center) or 2 (far edge).
type Grid struct {
	Col int `json:"gridCol"`
	Row int `json:"gridRow"`
}

// StrokeWidth is a text outline width in pixels. Clients send it
// either as a number or as a CSS-style string such as "4px".
type StrokeWidth float64

// UnmarshalJSON accepts both numeric and "Npx" string forms.
func (w *StrokeWidth) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "px")
		if s == "" {
			*w = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("caption: parse textStrokeWidth %q: %w", s, err)
		}
		*w = StrokeWidth(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*w = StrokeWidth(v)
	return nil
}

// FontFace carries the styling of a caption's text. Size is the only
// mandatory attribute; everything else falls back to defaults during
// resolution.
type FontFace struct {
	Style       string      `json:"fontStyle,omitempty"`
	Variant     string      `json:"fontVariant,omitempty"`
	Weight      string      `json:"fontWeight,omitempty"`
	Size        float64     `json:"fontSize"`
	Family      string      `json:"fontFamily,omitempty"`
	Color       string      `json:"color,omitempty"`
	StrokeColor string      `json:"textStrokeColor,omitempty"`
	StrokeWidth StrokeWidth `json:"textStrokeWidth,omitempty"`
}

// Caption is one text overlay instruction. Start and End scope the
// overlay to a fractional time window of the template duration and are
// only meaningful for video and GIF media.
type Caption struct {
	Text     string    `json:"text"`
	FontFace *FontFace `json:"fontFace"`
	Position *Position `json:"position,omitempty"`
	Grid     *Grid     `json:"grid,omitempty"`
	Start    *float64  `json:"start,omitempty"`
	End      *float64  `json:"end,omitempty"`
}

// Timed returns true if the caption carries a full time window.
func (c Caption) Timed() bool {
	return c.Start != nil && c.End != nil
}
