package transition

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

// Easing is a cubic-bezier timing curve.
type Easing struct {
	Name           string
	X1, Y1, X2, Y2 float64
}

var easings = map[string]Easing{}

func curve(name string, x1, y1, x2, y2 float64) {
	easings[name] = Easing{Name: name, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func init() {
	curve("linear", 0.250, 0.250, 0.750, 0.750)
	curve("ease", 0.250, 0.100, 0.250, 1.000)
	curve("easeIn", 0.420, 0.000, 1.000, 1.000)
	curve("easeOut", 0.000, 0.000, 0.580, 1.000)
	curve("easeInOut", 0.420, 0.000, 0.580, 1.000)

	curve("quadIn", 0.550, 0.085, 0.680, 0.530)
	curve("quadOut", 0.250, 0.460, 0.450, 0.940)
	curve("quadInOut", 0.455, 0.030, 0.515, 0.955)
	curve("cubicIn", 0.550, 0.055, 0.675, 0.190)
	curve("cubicOut", 0.215, 0.610, 0.355, 1.000)
	curve("cubicInOut", 0.645, 0.045, 0.355, 1.000)
	curve("quartIn", 0.895, 0.030, 0.685, 0.220)
	curve("quartOut", 0.165, 0.840, 0.440, 1.000)
	curve("quartInOut", 0.770, 0.000, 0.175, 1.000)
	curve("quintIn", 0.755, 0.050, 0.855, 0.060)
	curve("quintOut", 0.230, 1.000, 0.320, 1.000)
	curve("quintInOut", 0.860, 0.000, 0.070, 1.000)
	curve("sineIn", 0.470, 0.000, 0.745, 0.715)
	curve("sineOut", 0.390, 0.575, 0.565, 1.000)
	curve("sineInOut", 0.445, 0.050, 0.550, 0.950)
	curve("expoIn", 0.950, 0.050, 0.795, 0.035)
	curve("expoOut", 0.190, 1.000, 0.220, 1.000)
	curve("expoInOut", 1.000, 0.000, 0.000, 1.000)
	curve("circIn", 0.600, 0.040, 0.980, 0.335)
	curve("circOut", 0.075, 0.820, 0.165, 1.000)
	curve("circInOut", 0.785, 0.135, 0.150, 0.860)
	curve("backIn", 0.600, -0.280, 0.735, 0.045)
	curve("backOut", 0.175, 0.885, 0.320, 1.275)
	curve("backInOut", 0.680, -0.550, 0.265, 1.550)
}

// CSS keyword aliases for the curves above.
var keywords = map[string]string{
	"ease-in":     "easeIn",
	"ease-out":    "easeOut",
	"ease-in-out": "easeInOut",
}

var bezierPattern = regexp.MustCompile(`^cubic-bezier\(\s*([-\d.]+)\s*,\s*([-\d.]+)\s*,\s*([-\d.]+)\s*,\s*([-\d.]+)\s*\)$`)

// DefaultEasing is the curve used when none is configured.
const DefaultEasing = "quartOut"

// EasingNames returns the named curves in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseEasing resolves a curve name, a CSS keyword or a literal
// cubic-bezier(...) value.
func ParseEasing(value string) (Easing, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = DefaultEasing
	}
	if alias, ok := keywords[value]; ok {
		value = alias
	}
	if e, ok := easings[value]; ok {
		return e, nil
	}

	m := bezierPattern.FindStringSubmatch(value)
	if m == nil {
		return Easing{}, gridErrors.NewConfigError("easing", value, "unknown easing; use a curve name or cubic-bezier(x1, y1, x2, y2)")
	}

	var pts [4]float64
	for i := range pts {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Easing{}, &gridErrors.ConfigError{Option: "easing", Value: value, Message: "invalid control point", Err: err}
		}
		pts[i] = f
	}
	if pts[0] < 0 || pts[0] > 1 || pts[2] < 0 || pts[2] > 1 {
		return Easing{}, gridErrors.NewConfigError("easing", value, "x control points must lie within [0, 1]")
	}
	return Easing{Name: value, X1: pts[0], Y1: pts[1], X2: pts[2], Y2: pts[3]}, nil
}

// CSS returns the curve as a CSS timing function.
func (e Easing) CSS() string {
	return fmt.Sprintf("cubic-bezier(%.3f, %.3f, %.3f, %.3f)", e.X1, e.Y1, e.X2, e.Y2)
}

// At returns the eased progress for linear progress t in [0, 1].
func (e Easing) At(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return bezier(e.Y1, e.Y2, e.solveX(t))
}

// solveX finds the curve parameter whose x equals t using Newton steps with
// a bisection fallback.
func (e Easing) solveX(t float64) float64 {
	const epsilon = 1e-6

	u := t
	for i := 0; i < 8; i++ {
		x := bezier(e.X1, e.X2, u) - t
		if math.Abs(x) < epsilon {
			return u
		}
		d := bezierSlope(e.X1, e.X2, u)
		if math.Abs(d) < epsilon {
			break
		}
		u -= x / d
	}

	lo, hi := 0.0, 1.0
	u = t
	for i := 0; i < 32; i++ {
		x := bezier(e.X1, e.X2, u)
		if math.Abs(x-t) < epsilon {
			return u
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}

// bezier evaluates one axis of a cubic bezier anchored at 0 and 1.
func bezier(p1, p2, u float64) float64 {
	v := 1 - u
	return 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u
}

func bezierSlope(p1, p2, u float64) float64 {
	v := 1 - u
	return 3*v*v*p1 + 6*v*u*(p2-p1) + 3*u*u*(1-p2)
}
