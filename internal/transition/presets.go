package transition

import (
	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
)

const (
	slide       = 10
	perspective = 1000
)

func constant(s style.Styles) Func {
	return func(layout.Rect, layout.ContainerSize, int) style.Styles {
		return style.ApplyPatch(s)
	}
}

func offsetY(delta float64, opacity float64) Func {
	return func(rect layout.Rect, _ layout.ContainerSize, _ int) style.Styles {
		return style.Styles{"opacity": opacity, "translateY": rect.Top + delta}
	}
}

// FadeUp rises into place while fading in. It is the default profile.
var FadeUp = Profile{
	Name:     "fadeUp",
	Appear:   offsetY(slide, 0),
	Appeared: offsetY(0, 1),
	Enter:    offsetY(slide, 0),
	Entered:  offsetY(0, 1),
	Leaved:   offsetY(-slide, 0),
}

// FadeDown drops into place while fading in.
var FadeDown = Profile{
	Name:     "fadeDown",
	Appear:   offsetY(-slide, 0),
	Appeared: offsetY(0, 1),
	Enter:    offsetY(-slide, 0),
	Entered:  offsetY(0, 1),
	Leaved:   offsetY(slide, 0),
}

// Fade only changes opacity.
var Fade = Profile{
	Name:     "fade",
	Appear:   constant(style.Styles{"opacity": 0}),
	Appeared: constant(style.Styles{"opacity": 1}),
	Enter:    constant(style.Styles{"opacity": 0}),
	Entered:  constant(style.Styles{"opacity": 1}),
	Leaved:   constant(style.Styles{"opacity": 0}),
}

// ScaleUp grows from slightly smaller.
var ScaleUp = Profile{
	Name:     "scaleUp",
	Appear:   constant(style.Styles{"opacity": 0, "scale": 0.9}),
	Appeared: constant(style.Styles{"opacity": 1, "scale": 1}),
	Enter:    constant(style.Styles{"opacity": 0, "scale": 0.9}),
	Entered:  constant(style.Styles{"opacity": 1, "scale": 1}),
	Leaved:   constant(style.Styles{"opacity": 0, "scale": 1.1}),
}

// ScaleDown shrinks from slightly larger.
var ScaleDown = Profile{
	Name:     "scaleDown",
	Appear:   constant(style.Styles{"opacity": 0, "scale": 1.1}),
	Appeared: constant(style.Styles{"opacity": 1, "scale": 1}),
	Enter:    constant(style.Styles{"opacity": 0, "scale": 1.1}),
	Entered:  constant(style.Styles{"opacity": 1, "scale": 1}),
	Leaved:   constant(style.Styles{"opacity": 0, "scale": 0.9}),
}

// Flip rotates around the horizontal axis.
var Flip = Profile{
	Name:     "flip",
	Appear:   constant(style.Styles{"opacity": 0, "perspective": perspective, "rotateX": -90}),
	Appeared: constant(style.Styles{"opacity": 1, "perspective": perspective, "rotateX": 0}),
	Enter:    constant(style.Styles{"opacity": 0, "perspective": perspective, "rotateX": -90}),
	Entered:  constant(style.Styles{"opacity": 1, "perspective": perspective, "rotateX": 0}),
	Leaved:   constant(style.Styles{"opacity": 0, "perspective": perspective, "rotateX": 90}),
}

// Helix spins around the vertical axis.
var Helix = Profile{
	Name:     "helix",
	Appear:   constant(style.Styles{"opacity": 0, "perspective": perspective, "rotateY": -180}),
	Appeared: constant(style.Styles{"opacity": 1, "perspective": perspective, "rotateY": 0}),
	Enter:    constant(style.Styles{"opacity": 0, "perspective": perspective, "rotateY": -180}),
	Entered:  constant(style.Styles{"opacity": 1, "perspective": perspective, "rotateY": 0}),
	Leaved:   constant(style.Styles{"opacity": 0, "perspective": perspective, "rotateY": 180}),
}
