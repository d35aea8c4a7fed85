package style

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeFoldsTransformsAndKeepsPlainCSS(t *testing.T) {
	t.Parallel()

	got := Compose(Styles{
		"translateX": "10px",
		"translateY": 20.0,
		"rotate":     45,
		"scale":      0.5,
		"opacity":    0,
		"zIndex":     "2",
	}, DefaultUnits(), false)

	assert.Equal(t, Styles{
		"transform": "translateX(10px) translateY(20px) scale(0.5) rotate(45deg)",
		"opacity":   0,
		"zIndex":    "2",
	}, got)
}

func TestComposeRetainsPerspective(t *testing.T) {
	t.Parallel()

	got := Compose(Styles{"perspective": 800, "rotateX": -90}, DefaultUnits(), false)

	assert.Equal(t, 800, got["perspective"])
	assert.Equal(t, "perspective(800px) rotateX(-90deg)", got["transform"])
}

func TestComposeOmitsEmptyTransform(t *testing.T) {
	t.Parallel()

	got := Compose(Styles{"opacity": 1, "display": "block"}, DefaultUnits(), false)
	_, ok := got["transform"]
	assert.False(t, ok)
	assert.Len(t, got, 2)
}

func TestComposeUsesConfiguredUnits(t *testing.T) {
	t.Parallel()

	got := Compose(Styles{"translateY": 2, "skewX": 0.25}, Units{Length: "em", Angle: "turn"}, false)
	assert.Equal(t, "translateY(2em) skewX(0.25turn)", got["transform"])
}

func TestComposeDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := Styles{"translateX": "1px", "opacity": 1}
	_ = Compose(in, DefaultUnits(), true)
	assert.Equal(t, Styles{"translateX": "1px", "opacity": 1}, in)
}

func TestComposeWithVendorPrefix(t *testing.T) {
	t.Parallel()

	got := Compose(Styles{
		"translateX": "5px",
		"transition": "opacity 480ms ease,transform 480ms ease",
		"opacity":    1,
	}, DefaultUnits(), true)

	assert.Equal(t, "translateX(5px)", got["transform"])
	assert.Equal(t, "translateX(5px)", got["WebkitTransform"])
	assert.Equal(t, "translateX(5px)", got["msTransform"])
	assert.Equal(t, "opacity 480ms ease,transform 480ms ease", got["transition"])
	assert.Equal(t, "opacity 480ms ease,-webkit-transform 480ms ease", got["WebkitTransition"])
	_, ok := got["WebkitOpacity"]
	assert.False(t, ok)
}

func TestPrefixKeepsTimingFunctionArguments(t *testing.T) {
	t.Parallel()

	value := "opacity 480ms cubic-bezier(0.165, 0.840, 0.440, 1.000), transform 480ms cubic-bezier(0.165, 0.840, 0.440, 1.000)"
	got := Prefix(Styles{"transition": value})

	assert.Equal(t, value, got["transition"])
	assert.Equal(t,
		"opacity 480ms cubic-bezier(0.165, 0.840, 0.440, 1.000), -webkit-transform 480ms cubic-bezier(0.165, 0.840, 0.440, 1.000)",
		got["WebkitTransition"])
	assert.Equal(t, []string{"a(1, 2)", " b", "c"}, splitTopLevel("a(1, 2), b,c"))
}

func TestBuildTransformVectors(t *testing.T) {
	t.Parallel()

	got := BuildTransform(Styles{
		"translate3d": []float64{1, 2, 3},
		"rotate3d":    []any{0.0, 1.0, 0.0, 90.0},
		"skew":        "10deg, 5deg",
		"color":       "red",
	}, DefaultUnits())

	assert.Equal(t, "translate3d(1px, 2px, 3px) rotate3d(0, 1, 0, 90deg) skew(10deg, 5deg)", got)
}

func TestApplyPatchMergesLeftToRight(t *testing.T) {
	t.Parallel()

	base := Styles{"opacity": 0, "translateY": "10px", "zIndex": "1"}
	phase := Styles{"opacity": 1, "translateY": "0px"}
	position := Styles{"translateY": "40px", "zIndex": "2"}

	got := ApplyPatch(base, phase, position)

	assert.Equal(t, Styles{"opacity": 1, "translateY": "40px", "zIndex": "2"}, got)
	assert.Equal(t, 0, base["opacity"], "base must not change")
	assert.Len(t, phase, 2, "patches must not change")
}

func TestStylesFloatParsesUnits(t *testing.T) {
	t.Parallel()

	s := Styles{"translateX": "-12px", "opacity": 0.5, "rotate": "90deg", "display": "block"}

	v, ok := s.Float("translateX")
	require.True(t, ok)
	assert.Equal(t, -12.0, v)

	v, ok = s.Float("opacity")
	require.True(t, ok)
	assert.Equal(t, 0.5, v)

	v, ok = s.Float("rotate")
	require.True(t, ok)
	assert.Equal(t, 90.0, v)

	_, ok = s.Float("display")
	assert.False(t, ok)
	_, ok = s.Float("missing")
	assert.False(t, ok)
}

func TestStylesCSS(t *testing.T) {
	t.Parallel()

	s := Styles{"zIndex": "2", "WebkitTransform": "none", "msTransform": "none", "opacity": 1}
	assert.Equal(t, "-webkit-transform: none; -ms-transform: none; opacity: 1; z-index: 2;", s.CSS())
}

func TestKebab(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "z-index", Kebab("zIndex"))
	assert.Equal(t, "-webkit-transition", Kebab("WebkitTransition"))
	assert.Equal(t, "-moz-user-select", Kebab("MozUserSelect"))
	assert.Equal(t, "-ms-transform", Kebab("msTransform"))
	assert.Equal(t, "opacity", Kebab("opacity"))
}

func TestTransitionShorthand(t *testing.T) {
	t.Parallel()

	got := Transition([]string{"opacity", "transform"}, 480*time.Millisecond, "ease-out")
	assert.Equal(t, "opacity 480ms ease-out,transform 480ms ease-out", got)
	assert.Equal(t, "", Transition(nil, time.Second, "linear"))
}

func TestUnitsWithDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Units{Length: "em", Angle: "deg"}, Units{Length: "em"}.WithDefaults())
}
