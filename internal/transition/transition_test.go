package transition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

var (
	rect = layout.Rect{Top: 40, Left: 160, Width: 150, Height: 80}
	size = layout.ContainerSize{Width: 320, Height: 200, ActualWidth: 310}
)

func TestBuiltinProfilesAreComplete(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"fadeUp", "fadeDown", "fade", "scaleUp", "scaleDown", "flip", "helix"} {
		p, ok := Lookup(name)
		require.True(t, ok, name)
		require.NoError(t, p.Validate(), name)
		for _, phase := range Phases() {
			assert.NotEmpty(t, p.Styles(phase, rect, size, 0), "%s.%s", name, phase)
		}
	}
}

func TestFadeUpOffsetsFromRect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, style.Styles{"opacity": 0.0, "translateY": 50.0}, FadeUp.Styles(PhaseAppear, rect, size, 3))
	assert.Equal(t, style.Styles{"opacity": 1.0, "translateY": 40.0}, FadeUp.Styles(PhaseAppeared, rect, size, 3))
	assert.Equal(t, style.Styles{"opacity": 0.0, "translateY": 30.0}, FadeUp.Styles(PhaseLeaved, rect, size, 3))
}

func TestConstantProfilesReturnFreshMaps(t *testing.T) {
	t.Parallel()

	first := Fade.Styles(PhaseAppear, rect, size, 0)
	first["opacity"] = 0.7
	second := Fade.Styles(PhaseAppear, rect, size, 0)
	assert.Equal(t, 0, second["opacity"])
}

func TestProfileStylesToleratesMissingFunctions(t *testing.T) {
	t.Parallel()

	p := Profile{Name: "partial", Appear: func(layout.Rect, layout.ContainerSize, int) style.Styles { return nil }}
	assert.Equal(t, style.Styles{}, p.Styles(PhaseAppear, rect, size, 0))
	assert.Equal(t, style.Styles{}, p.Styles(PhaseLeaved, rect, size, 0))
	assert.Equal(t, style.Styles{}, p.Styles(Phase("bogus"), rect, size, 0))

	err := p.Validate()
	var configErr *gridErrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Message, "appeared")
}

func TestRegisterAndNames(t *testing.T) {
	custom := Fade
	custom.Name = "customFade"
	require.NoError(t, Register(custom))

	_, ok := Lookup("customFade")
	assert.True(t, ok)
	assert.Contains(t, Names(), "customFade")
	assert.Contains(t, Names(), "fadeUp")

	require.Error(t, Register(Profile{}))
	require.Error(t, Register(Profile{Name: "broken"}))
}

func TestParseEasing(t *testing.T) {
	t.Parallel()

	e, err := ParseEasing("quartOut")
	require.NoError(t, err)
	assert.Equal(t, "cubic-bezier(0.165, 0.840, 0.440, 1.000)", e.CSS())

	e, err = ParseEasing("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEasing, e.Name)

	e, err = ParseEasing("ease-out")
	require.NoError(t, err)
	assert.Equal(t, "easeOut", e.Name)

	e, err = ParseEasing("cubic-bezier(0.1, -0.5, 0.9, 1.5)")
	require.NoError(t, err)
	assert.Equal(t, -0.5, e.Y1)

	for _, bad := range []string{"bouncy", "cubic-bezier(2, 0, 0, 1)", "steps(4)"} {
		_, err := ParseEasing(bad)
		require.Error(t, err, bad)
	}

	assert.Contains(t, EasingNames(), "backInOut")
}

func TestEasingAt(t *testing.T) {
	t.Parallel()

	linear, err := ParseEasing("linear")
	require.NoError(t, err)
	for _, x := range []float64{0, 0.1, 0.5, 0.9, 1} {
		assert.InDelta(t, x, linear.At(x), 1e-4)
	}

	out, err := ParseEasing("quartOut")
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.At(-1))
	assert.Equal(t, 1.0, out.At(2))
	assert.Greater(t, out.At(0.5), 0.5, "ease-out curves run ahead of linear")

	prev := 0.0
	for i := 1; i <= 20; i++ {
		v := out.At(float64(i) / 20)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

const flyScript = `
function appear(rect, size, index) {
  return { opacity: 0, translateX: rect.left - size.width, delay: index };
}
function appeared(rect) {
  return { opacity: 1, translateX: rect.left };
}
function leaved(rect, size) {
  return { opacity: 0, translateX: rect.left + size.width };
}
`

func TestLoadScriptProfile(t *testing.T) {
	t.Parallel()

	p, err := LoadScript("fly", flyScript)
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Equal(t, "fly", p.Name)

	got := p.Styles(PhaseAppear, rect, size, 2)
	assert.Equal(t, style.Styles{"opacity": 0.0, "translateX": -160.0, "delay": 2.0}, got)

	// enter falls back to appear.
	assert.Equal(t, got, p.Styles(PhaseEnter, rect, size, 2))
	assert.Equal(t, style.Styles{"opacity": 1.0, "translateX": 160.0}, p.Styles(PhaseEntered, rect, size, 0))
}

func TestLoadScriptErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		phase  string
	}{
		{name: "syntax", source: "function appear( {", phase: ""},
		{name: "missing leaved", source: "function appear(){return {}}; function appeared(){return {}}", phase: "leaved"},
		{name: "throws", source: "function appear(){throw new Error('no')}; function appeared(){return {}}; function leaved(){return {}}", phase: "appear"},
		{name: "non object", source: "function appear(){return 4}; function appeared(){return {}}; function leaved(){return {}}", phase: "appear"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadScript("bad", tt.source)
			var scriptErr *gridErrors.ScriptError
			require.ErrorAs(t, err, &scriptErr)
			assert.Equal(t, tt.phase, scriptErr.Phase)
		})
	}
}

func TestLoadScriptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fly.js")
	require.NoError(t, os.WriteFile(path, []byte(flyScript), 0o644))

	p, err := LoadScriptFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fly", p.Name)

	_, err = LoadScriptFile(filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, err)
}
