package config

import (
	"path/filepath"
	"time"

	"github.com/alexisbeaulieu97/stackgrid/internal/grid"
	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

// Options converts the document's grid settings into grid options,
// starting from the grid defaults. A transition script is loaded here and
// registered under its file name so later documents can refer to it.
func (c *Config) Options() (grid.Options, error) {
	opts := grid.DefaultOptions()
	s := c.Grid

	if s.ColumnWidth != nil {
		opts.ColumnWidth = s.ColumnWidth
	}
	if s.GutterWidth != nil {
		opts.GutterWidth = *s.GutterWidth
	}
	if s.GutterHeight != nil {
		opts.GutterHeight = *s.GutterHeight
	}
	if s.Duration != nil {
		opts.Duration = time.Duration(*s.Duration) * time.Millisecond
	}
	if s.Easing != "" {
		opts.Easing = s.Easing
	}
	if s.AppearDelay != nil {
		opts.AppearDelay = time.Duration(*s.AppearDelay) * time.Millisecond
	}
	opts.Units = s.Units.WithDefaults()
	if s.VendorPrefix != nil {
		opts.VendorPrefix = *s.VendorPrefix
	}
	opts.EnableSSR = s.EnableSSR
	opts.Horizontal = s.Horizontal
	opts.RTL = s.RTL
	if s.Component != "" {
		opts.Component = s.Component
	}
	if s.ItemComponent != "" {
		opts.ItemComponent = s.ItemComponent
	}

	switch {
	case s.TransitionScript != "":
		path := s.TransitionScript
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.dir, path)
		}
		profile, err := transition.LoadScriptFile(path)
		if err != nil {
			return grid.Options{}, err
		}
		if err := transition.Register(profile); err != nil {
			return grid.Options{}, err
		}
		opts.Transitions = profile
	case s.Transition != "":
		profile, ok := transition.Lookup(s.Transition)
		if !ok {
			return grid.Options{}, gridErrors.NewConfigError("transitions", s.Transition, "unknown transition profile")
		}
		opts.Transitions = profile
	}

	return opts, opts.Validate()
}

// Children returns the items as grid children. Each child's content is
// the Item itself.
func (c *Config) Children() []grid.Child {
	children := make([]grid.Child, len(c.Items))
	for i, item := range c.Items {
		children[i] = grid.Child{Key: item.Key, Content: item}
	}
	return children
}

// Heights maps item keys to their natural heights.
func (c *Config) Heights() map[string]float64 {
	heights := make(map[string]float64, len(c.Items))
	for _, item := range c.Items {
		heights[item.Key] = item.Height
	}
	return heights
}

// Measurer reports each item's configured height.
func (c *Config) Measurer() grid.Measurer {
	heights := c.Heights()
	return grid.MeasureFunc(func(it *grid.Item) (grid.Metrics, bool) {
		h, ok := heights[it.Key()]
		if !ok {
			return grid.Metrics{}, false
		}
		return grid.Metrics{OffsetHeight: h}, true
	})
}
