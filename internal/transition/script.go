package transition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

// script holds one goja runtime per profile. goja runtimes are not safe
// for concurrent use, so every call goes through mu.
type script struct {
	name string
	mu   sync.Mutex
	vm   *goja.Runtime
}

// LoadScript builds a profile from JavaScript source that defines global
// functions named after the phases:
//
//	function appear(rect, size, index) { return {opacity: 0, translateY: rect.top + 20} }
//
// appear, appeared and leaved are required. enter and entered fall back to
// appear and appeared. Each function is called once with a sample rect
// while loading so broken scripts fail here rather than mid-animation.
func LoadScript(name, source string) (Profile, error) {
	s := &script{name: name, vm: goja.New()}
	if _, err := s.vm.RunString(source); err != nil {
		return Profile{}, gridErrors.NewScriptError(name, "", err)
	}

	fns := make(map[Phase]goja.Callable, 5)
	for _, phase := range Phases() {
		fn, ok := goja.AssertFunction(s.vm.Get(string(phase)))
		if ok {
			fns[phase] = fn
		}
	}

	if _, ok := fns[PhaseEnter]; !ok {
		fns[PhaseEnter] = fns[PhaseAppear]
	}
	if _, ok := fns[PhaseEntered]; !ok {
		fns[PhaseEntered] = fns[PhaseAppeared]
	}

	sample := layout.Rect{Top: 0, Left: 0, Width: 100, Height: 100}
	sampleSize := layout.ContainerSize{Width: 100, Height: 100, ActualWidth: 100}
	for _, phase := range Phases() {
		if fns[phase] == nil {
			return Profile{}, gridErrors.NewScriptError(name, string(phase), fmt.Errorf("function %s is not defined", phase))
		}
		if _, err := s.call(fns[phase], sample, sampleSize, 0); err != nil {
			return Profile{}, gridErrors.NewScriptError(name, string(phase), err)
		}
	}

	return Profile{
		Name:     name,
		Appear:   s.bind(fns[PhaseAppear]),
		Appeared: s.bind(fns[PhaseAppeared]),
		Enter:    s.bind(fns[PhaseEnter]),
		Entered:  s.bind(fns[PhaseEntered]),
		Leaved:   s.bind(fns[PhaseLeaved]),
	}, nil
}

// LoadScriptFile reads a script profile from disk. The profile is named
// after the file without its extension.
func LoadScriptFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, gridErrors.NewScriptError(path, "", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return LoadScript(name, string(data))
}

// bind adapts a script function to Func. Failures at this point yield an
// empty style so one broken frame never aborts a layout pass.
func (s *script) bind(fn goja.Callable) Func {
	return func(rect layout.Rect, size layout.ContainerSize, index int) style.Styles {
		out, err := s.call(fn, rect, size, index)
		if err != nil {
			return style.Styles{}
		}
		return out
	}
}

func (s *script) call(fn goja.Callable, rect layout.Rect, size layout.ContainerSize, index int) (style.Styles, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jsRect := map[string]any{"top": rect.Top, "left": rect.Left, "width": rect.Width, "height": rect.Height}
	jsSize := map[string]any{"width": size.Width, "height": size.Height, "actualWidth": size.ActualWidth}

	result, err := fn(goja.Undefined(), s.vm.ToValue(jsRect), s.vm.ToValue(jsSize), s.vm.ToValue(index))
	if err != nil {
		return nil, err
	}
	if goja.IsUndefined(result) || goja.IsNull(result) {
		return style.Styles{}, nil
	}

	exported, ok := result.Export().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %s", result.ExportType())
	}

	out := make(style.Styles, len(exported))
	for k, v := range exported {
		switch n := v.(type) {
		case int64:
			out[k] = float64(n)
		default:
			out[k] = n
		}
	}
	return out, nil
}
