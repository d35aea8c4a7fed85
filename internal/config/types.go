package config

import (
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
)

// Config represents a grid document: grid options, a container and the
// items to lay out.
type Config struct {
	Version     string    `yaml:"version" validate:"required,semver"`
	Name        string    `yaml:"name" validate:"required,min=1,max=100"`
	Description string    `yaml:"description,omitempty"`
	Grid        Settings  `yaml:"grid,omitempty"`
	Container   Container `yaml:"container,omitempty"`
	Items       []Item    `yaml:"items" validate:"omitempty,dive"`

	// dir is where the document was read from; relative script paths
	// resolve against it.
	dir string
}

// Settings holds grid options. Absent fields take the grid defaults.
type Settings struct {
	// ColumnWidth is a pixel width or a percentage string such as "25%".
	ColumnWidth      any         `yaml:"column_width,omitempty" validate:"omitempty,column_width"`
	GutterWidth      *float64    `yaml:"gutter_width,omitempty" validate:"omitempty,min=0"`
	GutterHeight     *float64    `yaml:"gutter_height,omitempty" validate:"omitempty,min=0"`
	Duration         *int        `yaml:"duration,omitempty" validate:"omitempty,min=0,max=60000"`
	Easing           string      `yaml:"easing,omitempty" validate:"omitempty,easing"`
	AppearDelay      *int        `yaml:"appear_delay,omitempty" validate:"omitempty,min=0,max=10000"`
	Units            style.Units `yaml:"units,omitempty"`
	VendorPrefix     *bool       `yaml:"vendor_prefix,omitempty"`
	EnableSSR        bool        `yaml:"enable_ssr,omitempty"`
	Horizontal       bool        `yaml:"horizontal,omitempty"`
	RTL              bool        `yaml:"rtl,omitempty"`
	Transition       string      `yaml:"transition,omitempty" validate:"omitempty,profile"`
	TransitionScript string      `yaml:"transition_script,omitempty" validate:"excluded_with=Transition"`
	Component        string      `yaml:"component,omitempty" validate:"omitempty,alphanum"`
	ItemComponent    string      `yaml:"item_component,omitempty" validate:"omitempty,alphanum"`
}

// Container is the box the grid is laid out in.
type Container struct {
	Width  float64 `yaml:"width,omitempty" validate:"omitempty,gt=0"`
	Height float64 `yaml:"height,omitempty" validate:"omitempty,gte=0"`
}

// Item is one grid child with a fixed natural height.
type Item struct {
	Key    string  `yaml:"key" validate:"required,item_key"`
	Height float64 `yaml:"height" validate:"gte=0"`
	Title  string  `yaml:"title,omitempty"`
	Color  string  `yaml:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Label is the item's title, or its key when untitled.
func (i Item) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Key
}
