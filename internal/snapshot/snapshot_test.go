package snapshot

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stackgrid/internal/grid"
	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
)

func twoColumnFrame() Frame {
	return Frame{
		Width:  320,
		Height: 100,
		Boxes: []Box{
			{Key: "a", Label: "a", Rect: layout.Rect{Top: 0, Left: 5, Width: 150, Height: 100}, Color: "#ff0000", Opacity: 1, ZIndex: 1},
			{Key: "b", Label: "b", Rect: layout.Rect{Top: 0, Left: 165, Width: 150, Height: 50}, Color: "#00f", Opacity: 1, ZIndex: 1},
		},
	}
}

func TestRenderPaintsBoxes(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Labels = false
	img, err := Render(twoColumnFrame(), opts)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 340, bounds.Dx())
	assert.Equal(t, 120, bounds.Dy())

	r, g, b, _ := img.At(10+80, 10+50).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	r, _, b, _ = img.At(10+240, 10+25).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)

	// below the short column only background shows
	r, g, b, _ = img.At(10+240, 10+90).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestRenderMirrorsRightToLeft(t *testing.T) {
	t.Parallel()

	f := twoColumnFrame()
	f.RTL = true
	opts := DefaultOptions()
	opts.Labels = false
	img, err := Render(f, opts)
	require.NoError(t, err)

	// a is mirrored into the right column
	r, _, _, _ := img.At(10+240, 10+90).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestRenderSkipsInvisibleBoxes(t *testing.T) {
	t.Parallel()

	f := twoColumnFrame()
	f.Boxes[0].Opacity = 0
	opts := DefaultOptions()
	opts.Labels = false
	img, err := Render(f, opts)
	require.NoError(t, err)

	r, g, b, _ := img.At(10+80, 10+50).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestRenderGrowsToFitBoxesBelowContent(t *testing.T) {
	t.Parallel()

	f := twoColumnFrame()
	f.Boxes = append(f.Boxes, Box{Key: "gone", Rect: layout.Rect{Top: 60, Left: 165, Width: 150, Height: 80}, Opacity: 0.5})
	img, err := Render(f, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	_, err := Render(Frame{}, Options{Scale: 1})
	require.Error(t, err)

	f := twoColumnFrame()
	f.Boxes[0].Color = "chartreuse"
	_, err = Render(f, DefaultOptions())
	require.ErrorContains(t, err, "item a")

	_, err = Render(twoColumnFrame(), Options{Background: "#12", Scale: 1})
	require.Error(t, err)
}

func TestWriteAndSavePNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, twoColumnFrame(), DefaultOptions()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 340, img.Bounds().Dx())

	opts := DefaultOptions()
	opts.Scale = 2
	path := filepath.Join(t.TempDir(), "grid.png")
	require.NoError(t, SavePNG(path, twoColumnFrame(), opts))
}

func TestFromView(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewLoop(time.Unix(0, 0))
	g, err := grid.New(grid.DefaultOptions(),
		grid.WithScheduler(loop),
		grid.WithMeasurer(grid.MeasureFunc(func(*grid.Item) (grid.Metrics, bool) {
			return grid.Metrics{OffsetHeight: 40}, true
		})),
	)
	require.NoError(t, err)
	g.Resize(320, 200)
	require.NoError(t, g.SetChildren([]grid.Child{{Key: "x", Content: "x"}, {Key: "y", Content: "y"}}))
	require.NoError(t, g.Mount())
	for i := 0; i < 5; i++ {
		loop.Advance(time.Second)
	}

	f := FromView(g.Render(), g.Layout(), false, func(v grid.ItemView) (string, string) {
		return "item " + v.Key, "#123456"
	})
	require.Len(t, f.Boxes, 2)
	assert.Equal(t, 320.0, f.Width)
	assert.Equal(t, 40.0, f.Height)
	assert.Equal(t, "item x", f.Boxes[0].Label)
	assert.Equal(t, "#123456", f.Boxes[0].Color)
	assert.Equal(t, 1.0, f.Boxes[0].Opacity)
	assert.Equal(t, 1, f.Boxes[0].ZIndex)
	assert.Equal(t, 40.0, f.Boxes[1].Rect.Height)
}
