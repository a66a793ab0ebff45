package caption

import (
	"encoding/json"
	"testing"
)

func TestStrokeWidth_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StrokeWidth
	}{
		{"number", `4`, 4},
		{"float", `2.5`, 2.5},
		{"px string", `"4px"`, 4},
		{"bare string", `"6"`, 6},
		{"px with spaces", `" 3px "`, 3},
		{"empty string", `""`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var w StrokeWidth
			if err := json.Unmarshal([]byte(tc.in), &w); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if w != tc.want {
				t.Errorf("got %v, want %v", w, tc.want)
			}
		})
	}

	t.Run("garbage string fails", func(t *testing.T) {
		var w StrokeWidth
		if err := json.Unmarshal([]byte(`"wide"`), &w); err == nil {
			t.Error("expected error for non-numeric stroke width")
		}
	})
}

func TestCaption_DecodeFull(t *testing.T) {
	raw := `{
		"text": "top text",
		"fontFace": {"fontSize": 40, "fontFamily": "Roboto", "fontWeight": "bold", "textStrokeWidth": "4px"},
		"position": {"top": 0.1, "left": 0.2, "right": 0, "bottom": 0},
		"start": 0,
		"end": 0.5
	}`
	var c Caption
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal caption: %v", err)
	}

	if c.Text != "top text" {
		t.Errorf("text = %q", c.Text)
	}
	if c.FontFace == nil || c.FontFace.Size != 40 || c.FontFace.StrokeWidth != 4 {
		t.Errorf("fontFace = %+v", c.FontFace)
	}
	if c.Position == nil || c.Position.Left != 0.2 {
		t.Errorf("position = %+v", c.Position)
	}
	if !c.Timed() {
		t.Error("caption with start and end should be timed")
	}
	if *c.Start != 0 || *c.End != 0.5 {
		t.Errorf("window = [%v,%v]", *c.Start, *c.End)
	}
}

func TestCaption_Timed(t *testing.T) {
	if (Caption{Start: fptr(0)}).Timed() {
		t.Error("start alone is not a full window")
	}
	if (Caption{End: fptr(1)}).Timed() {
		t.Error("end alone is not a full window")
	}
	if (Caption{}).Timed() {
		t.Error("no window at all")
	}
}
