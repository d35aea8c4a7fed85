package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

const validYAML = `version: "1.0"
name: "Photo wall"
grid:
  column_width: "25%"
  gutter_width: 10
  gutter_height: 8
  duration: 300
  easing: ease-out
  appear_delay: 0
  units:
    length: em
  vendor_prefix: false
  rtl: true
  transition: flip
container:
  width: 960
items:
  - key: a
    height: 120
    title: "Sunrise"
    color: "#ff8800"
  - key: b
    height: 80
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid document is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "Photo wall", cfg.Name)
				require.Len(t, cfg.Items, 2)
				assert.Equal(t, "25%", cfg.Grid.ColumnWidth)
				assert.Equal(t, 960.0, cfg.Container.Width)
				assert.Equal(t, "Sunrise", cfg.Items[0].Label())
				assert.Equal(t, "b", cfg.Items[1].Label())
			},
		},
		{
			name:     "malformed yaml reports a line",
			contents: "version: \"1.0\"\nname: [unclosed\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var parseErr *gridErrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Positive(t, parseErr.Line)
			},
		},
		{
			name:     "missing name",
			contents: "version: \"1.0\"\nitems: []\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var valErr *gridErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, "name", valErr.Field)
				assert.Equal(t, "name is required", valErr.Message)
			},
		},
		{
			name:     "bad column width",
			contents: "version: \"1.0\"\nname: x\ngrid:\n  column_width: wide\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var valErr *gridErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, "grid.column_width", valErr.Field)
				assert.Contains(t, valErr.Message, "percentage")
			},
		},
		{
			name:     "numeric column width",
			contents: "version: \"1.0\"\nname: x\ngrid:\n  column_width: 220\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, 220, cfg.Grid.ColumnWidth)
			},
		},
		{
			name:     "unknown easing",
			contents: "version: \"1.0\"\nname: x\ngrid:\n  easing: wobble\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var valErr *gridErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Contains(t, valErr.Message, "easing")
			},
		},
		{
			name:     "unknown profile",
			contents: "version: \"1.0\"\nname: x\ngrid:\n  transition: teleport\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var valErr *gridErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Contains(t, valErr.Message, "profile")
			},
		},
		{
			name:     "bad units",
			contents: "version: \"1.0\"\nname: x\ngrid:\n  units:\n    angle: furlong\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var valErr *gridErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, "grid.units.angle", valErr.Field)
				assert.Contains(t, valErr.Message, "oneof")
			},
		},
		{
			name:     "invalid item key",
			contents: "version: \"1.0\"\nname: x\nitems:\n  - key: \"has space\"\n    height: 3\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var valErr *gridErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, "items[0].key", valErr.Field)
			},
		},
		{
			name:     "negative height",
			contents: "version: \"1.0\"\nname: x\nitems:\n  - key: a\n    height: -3\n",
			assert: func(t *testing.T, _ *Config, err error) {
				require.Error(t, err)
			},
		},
		{
			name:     "duplicate keys",
			contents: "version: \"1.0\"\nname: x\nitems:\n  - key: a\n    height: 1\n  - key: b\n    height: 1\n  - key: a\n    height: 2\n",
			assert: func(t *testing.T, _ *Config, err error) {
				var valErr *gridErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, "items[2].key", valErr.Field)

				var dupErr *gridErrors.DuplicateKeyError
				require.ErrorAs(t, err, &dupErr)
				assert.Equal(t, 0, dupErr.First)
			},
		},
		{
			name:     "script and profile are exclusive",
			contents: "version: \"1.0\"\nname: x\ngrid:\n  transition: fade\n  transition_script: fly.js\n",
			assert: func(t *testing.T, _ *Config, err error) {
				require.Error(t, err)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ParseConfig(writeConfig(t, tc.contents))
			tc.assert(t, cfg, err)
		})
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	var parseErr *gridErrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestValidateConfigNil(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateConfig(nil))
}

func TestOptionsFromDocument(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(validYAML), "inline")
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, "25%", opts.ColumnWidth)
	assert.Equal(t, 10.0, opts.GutterWidth)
	assert.Equal(t, 8.0, opts.GutterHeight)
	assert.Equal(t, 300*time.Millisecond, opts.Duration)
	assert.Equal(t, "ease-out", opts.Easing)
	assert.Zero(t, opts.AppearDelay)
	assert.Equal(t, "em", opts.Units.Length)
	assert.Equal(t, "deg", opts.Units.Angle)
	assert.False(t, opts.VendorPrefix)
	assert.True(t, opts.RTL)
	assert.Equal(t, "flip", opts.Transitions.Name)
	assert.Equal(t, "div", opts.Component)

	children := cfg.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "a", children[0].Key)
	assert.Equal(t, cfg.Items[0], children[0].Content)
	assert.Equal(t, map[string]float64{"a": 120, "b": 80}, cfg.Heights())
}

func TestOptionsDefaultsWhenAbsent(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("version: \"1.0\"\nname: bare\n"), "inline")
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, 150.0, opts.ColumnWidth)
	assert.Equal(t, 5.0, opts.GutterWidth)
	assert.Equal(t, 30*time.Millisecond, opts.AppearDelay)
	assert.True(t, opts.VendorPrefix)
	assert.Equal(t, "fadeUp", opts.Transitions.Name)
}

func TestOptionsLoadsTransitionScript(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "version: \"1.0\"\nname: scripted\ngrid:\n  transition_script: slide.js\n")
	script := `
function appear(rect) { return { opacity: 0, translateX: rect.left - 40 }; }
function appeared(rect) { return { opacity: 1, translateX: rect.left }; }
function leaved(rect) { return { opacity: 0, translateX: rect.left + 40 }; }
`
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "slide.js"), []byte(script), 0o644))

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, "slide", opts.Transitions.Name)

	broken := writeConfig(t, "version: \"1.0\"\nname: scripted\ngrid:\n  transition_script: missing.js\n")
	cfg, err = ParseConfig(broken)
	require.NoError(t, err)
	_, err = cfg.Options()
	var scriptErr *gridErrors.ScriptError
	require.ErrorAs(t, err, &scriptErr)
}

func TestOptionsRegistersTransitionScript(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "version: \"1.0\"\nname: scripted\ngrid:\n  transition_script: drift.js\n")
	script := `
function appear(rect) { return { opacity: 0, translateY: rect.top + 20 }; }
function appeared(rect) { return { opacity: 1, translateY: rect.top }; }
function leaved(rect) { return { opacity: 0 }; }
`
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "drift.js"), []byte(script), 0o644))

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	_, err = cfg.Options()
	require.NoError(t, err)

	_, ok := transition.Lookup("drift")
	require.True(t, ok)

	named, err := Parse([]byte("version: \"1.0\"\nname: reuse\ngrid:\n  transition: drift\n"), "inline")
	require.NoError(t, err)
	opts, err := named.Options()
	require.NoError(t, err)
	assert.Equal(t, "drift", opts.Transitions.Name)
}

func TestMeasurerReportsConfiguredHeights(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(validYAML), "inline")
	require.NoError(t, err)
	assert.NotNil(t, cfg.Measurer())
}
