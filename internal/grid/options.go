package grid

import (
	"math"
	"time"

	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

// Options configure a grid. Start from DefaultOptions: numeric and boolean
// fields are used exactly as given, while empty strings, a nil column width,
// empty units and an unnamed profile fall back to the defaults.
type Options struct {
	// ColumnWidth is a number of pixels or a percentage string such as "25%".
	ColumnWidth  any
	GutterWidth  float64
	GutterHeight float64
	Duration     time.Duration
	Easing       string
	// AppearDelay staggers the initial appearance; item i waits i*AppearDelay.
	AppearDelay  time.Duration
	Units        style.Units
	VendorPrefix bool
	EnableSSR    bool
	Horizontal   bool
	RTL          bool
	// OnLayout runs after every completed client-side layout pass.
	OnLayout      func()
	Component     string
	ItemComponent string
	Transitions   transition.Profile
}

const (
	DefaultColumnWidth   = 150.0
	DefaultGutter        = 5.0
	DefaultDuration      = 480 * time.Millisecond
	DefaultAppearDelay   = 30 * time.Millisecond
	DefaultComponent     = "div"
	DefaultItemComponent = "span"
)

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		ColumnWidth:   DefaultColumnWidth,
		GutterWidth:   DefaultGutter,
		GutterHeight:  DefaultGutter,
		Duration:      DefaultDuration,
		Easing:        transition.DefaultEasing,
		AppearDelay:   DefaultAppearDelay,
		Units:         style.DefaultUnits(),
		VendorPrefix:  true,
		Component:     DefaultComponent,
		ItemComponent: DefaultItemComponent,
		Transitions:   transition.FadeUp,
	}
}

// settings are options after parsing and defaulting.
type settings struct {
	Options
	column layout.ColumnSpec
	easing transition.Easing
}

func (s settings) orientation() layout.Orientation {
	if s.Horizontal {
		return layout.Horizontal
	}
	return layout.Vertical
}

// Validate reports the first configuration error in o.
func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

func (o Options) resolve() (settings, error) {
	s := settings{Options: o}

	raw := o.ColumnWidth
	if raw == nil {
		raw = DefaultColumnWidth
	}
	column, err := layout.ParseColumnSpec(raw)
	if err != nil {
		return settings{}, err
	}
	s.column = column

	gutters := []struct {
		name  string
		value float64
	}{{"gutterWidth", o.GutterWidth}, {"gutterHeight", o.GutterHeight}}
	for _, g := range gutters {
		if g.value < 0 || math.IsNaN(g.value) || math.IsInf(g.value, 0) {
			return settings{}, gridErrors.NewConfigError(g.name, g.value, "must be a finite, non-negative number")
		}
	}
	if o.Duration < 0 {
		return settings{}, gridErrors.NewConfigError("duration", o.Duration, "must not be negative")
	}
	if o.AppearDelay < 0 {
		return settings{}, gridErrors.NewConfigError("appearDelay", o.AppearDelay, "must not be negative")
	}

	s.easing, err = transition.ParseEasing(o.Easing)
	if err != nil {
		return settings{}, err
	}

	s.Units = o.Units.WithDefaults()
	if s.Component == "" {
		s.Component = DefaultComponent
	}
	if s.ItemComponent == "" {
		s.ItemComponent = DefaultItemComponent
	}

	if isEmptyProfile(o.Transitions) {
		s.Transitions = transition.FadeUp
	} else if err := o.Transitions.Validate(); err != nil {
		return settings{}, err
	}

	return s, nil
}

func isEmptyProfile(p transition.Profile) bool {
	for _, phase := range transition.Phases() {
		if p.Func(phase) != nil {
			return false
		}
	}
	return true
}
