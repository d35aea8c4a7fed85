package layout

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

var percentagePattern = regexp.MustCompile(`^\d+(\.\d+)?%$`)

type columnKind int

const (
	columnUnset columnKind = iota
	columnFixed
	columnPercent
)

// ColumnSpec is either a fixed column width or a percentage of the
// container. The zero value is invalid and is rejected by Resolve.
type ColumnSpec struct {
	kind     columnKind
	width    float64
	fraction float64
	raw      string
}

// Fixed returns a spec for columns of exactly w layout units.
func Fixed(w float64) ColumnSpec {
	return ColumnSpec{kind: columnFixed, width: w}
}

// Percent returns a spec for columns of p percent of the container.
func Percent(p float64) ColumnSpec {
	return ColumnSpec{
		kind:     columnPercent,
		fraction: p / 100,
		raw:      strconv.FormatFloat(p, 'f', -1, 64) + "%",
	}
}

// ParseColumnSpec accepts a number or a percentage string such as "25%".
// Any other shape is a configuration error; there is no fallback.
func ParseColumnSpec(value any) (ColumnSpec, error) {
	switch v := value.(type) {
	case ColumnSpec:
		return validated(v)
	case float64:
		return validated(Fixed(v))
	case float32:
		return validated(Fixed(float64(v)))
	case int:
		return validated(Fixed(float64(v)))
	case int64:
		return validated(Fixed(float64(v)))
	case uint64:
		return validated(Fixed(float64(v)))
	case string:
		if !percentagePattern.MatchString(v) {
			return ColumnSpec{}, gridErrors.NewConfigError("columnWidth", v, "should be a number or percentage string")
		}
		p, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return ColumnSpec{}, &gridErrors.ConfigError{Option: "columnWidth", Value: v, Message: "unparseable percentage", Err: err}
		}
		spec := Percent(p)
		spec.raw = v
		return validated(spec)
	default:
		return ColumnSpec{}, gridErrors.NewConfigError("columnWidth", value, "should be a number or percentage string")
	}
}

func validated(spec ColumnSpec) (ColumnSpec, error) {
	if err := spec.Validate(); err != nil {
		return ColumnSpec{}, err
	}
	return spec, nil
}

// MaxColumns bounds the column count of a single pass.
const MaxColumns = 1024

// Validate checks the spec without resolving it against a container.
func (c ColumnSpec) Validate() error {
	switch c.kind {
	case columnFixed:
		if math.IsNaN(c.width) || math.IsInf(c.width, 0) || c.width <= 0 {
			return gridErrors.NewConfigError("columnWidth", c.width, "fixed width must be a positive finite number")
		}
	case columnPercent:
		if math.IsNaN(c.fraction) || c.fraction <= 0 || c.fraction > 1 {
			return gridErrors.NewConfigError("columnWidth", c.String(), "percentage must be greater than 0 and at most 100")
		}
	default:
		return gridErrors.NewConfigError("columnWidth", nil, "should be a number or percentage string")
	}
	return nil
}

// IsPercent reports whether the spec is a percentage.
func (c ColumnSpec) IsPercent() bool {
	return c.kind == columnPercent
}

// Value returns the spec as it would be written in configuration: a
// float64 for fixed widths and a string for percentages.
func (c ColumnSpec) Value() any {
	if c.kind == columnPercent {
		return c.String()
	}
	return c.width
}

func (c ColumnSpec) String() string {
	switch c.kind {
	case columnFixed:
		return strconv.FormatFloat(c.width, 'f', -1, 64)
	case columnPercent:
		if c.raw != "" {
			return c.raw
		}
		return fmt.Sprintf("%g%%", c.fraction*100)
	default:
		return "<unset>"
	}
}

// Resolve returns the column count and width for a container.
//
// A fixed width w gives floor((cw - (cw/w - 1)*gutter) / w) columns of w.
// A percentage p gives floor(1/p) columns sharing the width left after gutters.
// Containers narrower than a single column still get one column, and no
// container gets more than MaxColumns. A percentage column never resolves
// to a negative width, even when the gutters alone overflow the container.
func (c ColumnSpec) Resolve(containerWidth, gutterWidth float64) (int, float64, error) {
	if err := c.Validate(); err != nil {
		return 0, 0, err
	}

	var count int
	var width float64

	switch c.kind {
	case columnFixed:
		count = int(math.Floor((containerWidth - (containerWidth/c.width-1)*gutterWidth) / c.width))
		width = c.width
	case columnPercent:
		count = clampCount(int(math.Floor(1 / c.fraction)))
		width = (containerWidth - gutterWidth*float64(count-1)) / float64(count)
	}

	return clampCount(count), math.Max(width, 0), nil
}

func clampCount(n int) int {
	return min(max(n, 1), MaxColumns)
}
