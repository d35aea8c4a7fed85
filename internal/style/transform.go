package style

import (
	"fmt"
	"strings"
)

type unitKind int

const (
	unitNone unitKind = iota
	unitLength
	unitAngle
)

type transformProperty struct {
	name string
	unit unitKind
}

// transformProperties is the allowlist of transform-affecting keys in the
// order they are written into the transform string.
var transformProperties = []transformProperty{
	{name: "perspective", unit: unitLength},
	{name: "translate", unit: unitLength},
	{name: "translate3d", unit: unitLength},
	{name: "translateX", unit: unitLength},
	{name: "translateY", unit: unitLength},
	{name: "translateZ", unit: unitLength},
	{name: "scale", unit: unitNone},
	{name: "scale3d", unit: unitNone},
	{name: "scaleX", unit: unitNone},
	{name: "scaleY", unit: unitNone},
	{name: "scaleZ", unit: unitNone},
	{name: "rotate", unit: unitAngle},
	{name: "rotate3d", unit: unitAngle},
	{name: "rotateX", unit: unitAngle},
	{name: "rotateY", unit: unitAngle},
	{name: "rotateZ", unit: unitAngle},
	{name: "skew", unit: unitAngle},
	{name: "skewX", unit: unitAngle},
	{name: "skewY", unit: unitAngle},
}

var transformIndex = func() map[string]transformProperty {
	m := make(map[string]transformProperty, len(transformProperties))
	for _, p := range transformProperties {
		m[p.name] = p
	}
	return m
}()

// IsTransformProperty reports whether key feeds the transform string.
func IsTransformProperty(key string) bool {
	_, ok := transformIndex[key]
	return ok
}

// TransformProperties lists the transform-affecting keys in output order.
func TransformProperties() []string {
	names := make([]string, len(transformProperties))
	for i, p := range transformProperties {
		names[i] = p.name
	}
	return names
}

// BuildTransform serialises the transform-affecting entries of s into a CSS
// transform value. Bare numbers get the length or angle unit from units;
// strings are written verbatim. Keys outside the allowlist are ignored and
// an empty string means there is nothing to transform.
func BuildTransform(s Styles, units Units) string {
	units = units.WithDefaults()

	parts := make([]string, 0, len(s))
	for _, prop := range transformProperties {
		v, ok := s[prop.name]
		if !ok || v == nil {
			continue
		}
		args := formatTransformArgs(prop, v, units)
		if args == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", prop.name, args))
	}
	return strings.Join(parts, " ")
}

func formatTransformArgs(prop transformProperty, v any, units Units) string {
	suffix := ""
	switch prop.unit {
	case unitLength:
		suffix = units.Length
	case unitAngle:
		suffix = units.Angle
	}

	switch t := v.(type) {
	case string:
		return t
	case []float64:
		args := make([]string, len(t))
		for i, n := range t {
			args[i] = vectorArg(prop, i, len(t), n, suffix)
		}
		return strings.Join(args, ", ")
	case []any:
		args := make([]string, len(t))
		for i, n := range t {
			if f, ok := n.(float64); ok {
				args[i] = vectorArg(prop, i, len(t), f, suffix)
				continue
			}
			args[i] = FormatValue(n)
		}
		return strings.Join(args, ", ")
	default:
		if f, ok := ToFloat(t); ok {
			return FormatValue(f) + suffix
		}
		return FormatValue(t)
	}
}

// vectorArg formats one component of a multi-argument transform. rotate3d
// takes a unitless axis followed by an angle.
func vectorArg(prop transformProperty, i, n int, v float64, suffix string) string {
	if prop.name == "rotate3d" && i < n-1 {
		return FormatValue(v)
	}
	return FormatValue(v) + suffix
}
