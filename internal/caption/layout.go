package caption

// MarginFraction is the vertical margin reserved at the top and bottom
// of the template, as a fraction of its height.
const MarginFraction = 0.08

// Align describes how text relates to its anchor point on one axis.
type Align int

const (
	// AlignCenter centers the text on the anchor.
	AlignCenter Align = iota
	// AlignStart grows the text right/down from the anchor.
	AlignStart
	// AlignEnd grows the text left/up from the anchor.
	AlignEnd
)

// Anchor is the resolved placement of one caption.
type Anchor struct {
	X, Y       float64
	Horizontal Align
	Vertical   Align
}

// Layout computes the anchor for every caption of a set on a template
// of the given pixel dimensions. The same geometry drives both the
// image compositor and the video overlay filters.
//
// Captions with a grid cell anchor to that cell's center point;
// captions with fractional positions anchor at top-left of the text;
// captions with neither are stacked vertically across the inner margin
// band, centered horizontally.
func Layout(captions []Caption, width, height float64) []Anchor {
	margin := height * MarginFraction
	innerHeight := height - 2*margin

	anchors := make([]Anchor, len(captions))
	for i, c := range captions {
		a := Anchor{Horizontal: AlignCenter, Vertical: AlignCenter}
		switch {
		case c.Grid != nil:
			a.X = gridCoord(c.Grid.Col, width, margin)
			a.Y = gridCoord(c.Grid.Row, height, margin)
		case c.Position != nil:
			a.X = width * c.Position.Left
			a.Y = height * c.Position.Top
			a.Horizontal = AlignStart
			a.Vertical = AlignStart
		default:
			a.X = width / 2
			if len(captions) < 2 {
				a.Y = margin
			} else {
				a.Y = innerHeight/float64(len(captions)-1)*float64(i) + margin
			}
		}
		anchors[i] = a
	}
	return anchors
}

// gridCoord maps a grid index to a coordinate on one axis:
// 0 sits one margin in from the near edge, 1 is the center and 2 one
// margin in from the far edge. Out-of-range indexes collapse to 0.
func gridCoord(idx int, extent, margin float64) float64 {
	switch idx {
	case 0:
		return margin
	case 1:
		return extent / 2
	case 2:
		return extent - margin
	}
	return 0
}
