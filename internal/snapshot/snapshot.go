// Package snapshot draws grid layouts to PNG images.
package snapshot

import (
	"fmt"
	"image"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/alexisbeaulieu97/stackgrid/internal/grid"
	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
)

// Box is one item to draw.
type Box struct {
	Key     string
	Label   string
	Rect    layout.Rect
	Color   string // #rgb or #rrggbb; empty picks from the palette
	Opacity float64
	ZIndex  int
}

// Frame is a picture of a grid at one moment.
type Frame struct {
	Width  float64
	Height float64
	RTL    bool
	Boxes  []Box
}

// Options control the canvas.
type Options struct {
	Padding    float64
	Scale      float64
	Background string
	Labels     bool
}

// DefaultOptions draws at 1x with a light background and labels.
func DefaultOptions() Options {
	return Options{Padding: 10, Scale: 1, Background: "#f4f4f5", Labels: true}
}

var palette = []string{"#6366f1", "#ec4899", "#14b8a6", "#f59e0b", "#8b5cf6", "#ef4444", "#22c55e", "#0ea5e9"}

// FromView builds a frame from a rendered grid. Opacity and z-order come
// from each item's style; label and color come from describe when given.
func FromView(view grid.View, state grid.State, rtl bool, describe func(grid.ItemView) (label, color string)) Frame {
	f := Frame{Width: state.Size.Width, Height: state.Result.ContentHeight, RTL: rtl}
	for _, item := range view.Items {
		b := Box{Key: item.Key, Label: item.Key, Rect: item.Rect, Opacity: 1, ZIndex: 1}
		if v, ok := item.Style.Float("opacity"); ok {
			b.Opacity = v
		}
		if v, ok := item.Style.Float("zIndex"); ok {
			b.ZIndex = int(v)
		}
		if describe != nil {
			label, color := describe(item)
			if label != "" {
				b.Label = label
			}
			b.Color = color
		}
		f.Boxes = append(f.Boxes, b)
	}
	return f
}

// Render draws f onto a new image.
func Render(f Frame, opts Options) (image.Image, error) {
	dc, err := draw(f, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG encodes f as a PNG to w.
func WritePNG(w io.Writer, f Frame, opts Options) error {
	dc, err := draw(f, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG writes f to a PNG file.
func SavePNG(path string, f Frame, opts Options) error {
	dc, err := draw(f, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func draw(f Frame, opts Options) (*gg.Context, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	// Leaving items keep their last rect and may reach below the content.
	bottom := f.Height
	for _, b := range f.Boxes {
		bottom = math.Max(bottom, b.Rect.Bottom())
	}
	width := int(math.Ceil((f.Width + 2*opts.Padding) * opts.Scale))
	height := int(math.Ceil((bottom + 2*opts.Padding) * opts.Scale))
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("snapshot: empty canvas %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	bg, err := parseHex(opts.Background)
	if err != nil {
		return nil, err
	}
	dc.SetRGB(bg[0], bg[1], bg[2])
	dc.Clear()
	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(opts.Padding, opts.Padding)

	boxes := append([]Box(nil), f.Boxes...)
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].ZIndex < boxes[j].ZIndex
	})

	for i, b := range boxes {
		if b.Opacity <= 0 || b.Rect.Width <= 0 || b.Rect.Height <= 0 {
			continue
		}
		hex := b.Color
		if hex == "" {
			hex = palette[i%len(palette)]
		}
		c, err := parseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("snapshot: item %s: %w", b.Key, err)
		}

		x := b.Rect.Left
		if f.RTL {
			x = f.Width - b.Rect.Right()
		}
		opacity := math.Min(b.Opacity, 1)

		dc.SetRGBA(c[0], c[1], c[2], opacity)
		dc.DrawRoundedRectangle(x, b.Rect.Top, b.Rect.Width, b.Rect.Height, 4)
		dc.Fill()

		if opts.Labels && b.Label != "" {
			dc.SetRGBA(1, 1, 1, opacity)
			dc.DrawStringAnchored(b.Label, x+b.Rect.Width/2, b.Rect.Top+b.Rect.Height/2, 0.5, 0.5)
		}
	}
	return dc, nil
}

// parseHex reads #rgb or #rrggbb into components in [0, 1].
func parseHex(s string) ([3]float64, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return [3]float64{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float64{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return [3]float64{
		float64(v>>16&0xff) / 255,
		float64(v>>8&0xff) / 255,
		float64(v&0xff) / 255,
	}, nil
}
