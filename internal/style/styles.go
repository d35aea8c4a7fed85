package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Styles is a semantic style description: CSS properties in camelCase
// plus transform shorthands such as translateX or rotate. Values are
// strings or numbers.
type Styles map[string]any

// Units are the suffixes given to bare numbers when serialising transforms.
type Units struct {
	Length string `yaml:"length" json:"length" validate:"omitempty,oneof=px em rem % vw vh cm mm in pt pc ex ch"`
	Angle  string `yaml:"angle" json:"angle" validate:"omitempty,oneof=deg grad rad turn"`
}

// DefaultUnits returns px lengths and degree angles.
func DefaultUnits() Units {
	return Units{Length: "px", Angle: "deg"}
}

// WithDefaults fills empty fields from DefaultUnits.
func (u Units) WithDefaults() Units {
	d := DefaultUnits()
	if u.Length == "" {
		u.Length = d.Length
	}
	if u.Angle == "" {
		u.Angle = d.Angle
	}
	return u
}

// ApplyPatch returns a new Styles holding base with every patch merged on
// top, left to right. Later patches win; nothing passed in is modified.
func ApplyPatch(base Styles, patches ...Styles) Styles {
	size := len(base)
	for _, p := range patches {
		size += len(p)
	}

	out := make(Styles, size)
	for k, v := range base {
		out[k] = v
	}
	for _, p := range patches {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}

// Keys returns the keys in sorted order.
func (s Styles) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value for key formatted as text.
func (s Styles) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok {
		return "", false
	}
	return FormatValue(v), true
}

// Float returns the numeric value for key. Strings with a unit suffix such
// as "12px" or "-4deg" are accepted.
func (s Styles) Float(key string) (float64, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// CSS renders the styles as a declaration block with kebab-case property
// names in sorted order.
func (s Styles) CSS() string {
	var b strings.Builder
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Kebab(k))
		b.WriteString(": ")
		b.WriteString(FormatValue(s[k]))
		b.WriteByte(';')
	}
	return b.String()
}

// FormatValue renders a style value as text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// ToFloat converts a style value into a number, dropping any unit suffix.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		trimmed := strings.TrimRightFunc(strings.TrimSpace(t), func(r rune) bool {
			return unicode.IsLetter(r) || r == '%'
		})
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Kebab converts a camelCase property name to its CSS form. Vendor
// prefixed names gain a leading dash: WebkitTransform becomes
// -webkit-transform and msTransform becomes -ms-transform.
func Kebab(name string) string {
	var b strings.Builder
	for _, v := range vendors {
		rest := strings.TrimPrefix(name, v.key)
		if rest != name && rest != "" && unicode.IsUpper(rune(rest[0])) {
			b.WriteString(v.css)
			name = rest
			break
		}
	}

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Transition builds a CSS transition shorthand for each property, such as
// "opacity 480ms ease,transform 480ms ease".
func Transition(props []string, duration time.Duration, easing string) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = fmt.Sprintf("%s %dms %s", p, duration.Milliseconds(), easing)
	}
	return strings.Join(parts, ",")
}
