package layout

import "math"

// Rect is an item's placement in layout units. A Rect belongs to one layout
// pass and is replaced, never edited, by the next.
type Rect struct {
	Top    float64 `json:"top" yaml:"top" msgpack:"top"`
	Left   float64 `json:"left" yaml:"left" msgpack:"left"`
	Width  float64 `json:"width" yaml:"width" msgpack:"width"`
	Height float64 `json:"height" yaml:"height" msgpack:"height"`
}

// Right returns the horizontal end of the rect.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the vertical end of the rect.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// IsZero reports whether every field is zero, as in the server layout.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// ContainerSize describes the grid container for one layout pass.
// Width is the measured width, ActualWidth the width the columns occupy and
// Height the total content height.
type ContainerSize struct {
	Width       float64 `json:"width" yaml:"width" msgpack:"width"`
	Height      float64 `json:"height" yaml:"height" msgpack:"height"`
	ActualWidth float64 `json:"actualWidth" yaml:"actual_width" msgpack:"actualWidth"`
}

// Orientation selects how items are distributed over columns.
type Orientation int

const (
	// Vertical places every item in the currently shortest column.
	Vertical Orientation = iota
	// Horizontal fills columns in order up to a precomputed average height.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	default:
		return "vertical"
	}
}

// Params is the full input of a layout pass.
type Params struct {
	ContainerWidth float64
	Column         ColumnSpec
	GutterWidth    float64
	GutterHeight   float64
	Orientation    Orientation
	Heights        []float64
}

// Result is the output of a layout pass.
type Result struct {
	Rects         []Rect  `json:"rects" yaml:"rects" msgpack:"rects"`
	Columns       []int   `json:"columns" yaml:"columns" msgpack:"columns"`
	ColumnCount   int     `json:"columnCount" yaml:"column_count" msgpack:"columnCount"`
	ColumnWidth   float64 `json:"columnWidth" yaml:"column_width" msgpack:"columnWidth"`
	ContentWidth  float64 `json:"contentWidth" yaml:"content_width" msgpack:"contentWidth"`
	ContentHeight float64 `json:"contentHeight" yaml:"content_height" msgpack:"contentHeight"`
}

// Size returns the ContainerSize for this result inside a container of the given width.
func (r Result) Size(containerWidth float64) ContainerSize {
	return ContainerSize{
		Width:       containerWidth,
		Height:      r.ContentHeight,
		ActualWidth: r.ContentWidth,
	}
}

// Round rounds half toward positive infinity, matching how browsers snap
// pixel offsets. math.Round would push -2.5 to -3.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}
