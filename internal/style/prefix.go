package style

import (
	"strings"
)

type vendor struct {
	key string // prefix of the camelCase property, e.g. Webkit
	css string // prefix of the CSS property, e.g. -webkit-
}

var (
	webkit = vendor{key: "Webkit", css: "-webkit-"}
	moz    = vendor{key: "Moz", css: "-moz-"}
	ms     = vendor{key: "ms", css: "-ms-"}

	vendors = []vendor{webkit, moz, ms}

	// prefixedProperties maps properties to the vendors that still need a
	// duplicate declaration.
	prefixedProperties = map[string][]vendor{
		"transform":          {webkit, ms},
		"transformOrigin":    {webkit, ms},
		"transformStyle":     {webkit},
		"transition":         {webkit},
		"perspective":        {webkit},
		"perspectiveOrigin":  {webkit},
		"backfaceVisibility": {webkit},
		"filter":             {webkit},
		"userSelect":         {webkit, moz, ms},
		"appearance":         {webkit, moz},
	}
)

// Prefix returns a copy of s with vendor-prefixed duplicates of every
// property that needs one. Prefixed transition values also name the
// prefixed property, e.g. WebkitTransition: "-webkit-transform 480ms ease".
func Prefix(s Styles) Styles {
	out := make(Styles, len(s)*2)
	for k, v := range s {
		out[k] = v
	}

	for k, v := range s {
		for _, vend := range prefixedProperties[k] {
			name := vend.key + capitalise(k)
			if _, exists := s[name]; exists {
				continue
			}
			if k == "transition" {
				if text, ok := v.(string); ok {
					out[name] = prefixTransitionValue(text, vend)
					continue
				}
			}
			out[name] = v
		}
	}
	return out
}

// prefixTransitionValue rewrites the property of each transition entry
// that the vendor also prefixes. Everything else, including the spacing
// inside timing functions, is kept as written.
func prefixTransitionValue(value string, vend vendor) string {
	entries := splitTopLevel(value)
	for i, entry := range entries {
		trimmed := strings.TrimLeft(entry, " ")
		lead := entry[:len(entry)-len(trimmed)]
		prop, rest, found := strings.Cut(trimmed, " ")
		if needsVendor(camel(prop), vend) {
			prop = vend.css + prop
		}
		if found {
			entries[i] = lead + prop + " " + rest
		} else {
			entries[i] = lead + prop
		}
	}
	return strings.Join(entries, ",")
}

// splitTopLevel splits value at commas outside parentheses.
func splitTopLevel(value string) []string {
	var entries []string
	depth, start := 0, 0
	for i, r := range value {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				entries = append(entries, value[start:i])
				start = i + 1
			}
		}
	}
	return append(entries, value[start:])
}

func needsVendor(prop string, vend vendor) bool {
	for _, v := range prefixedProperties[prop] {
		if v == vend {
			return true
		}
	}
	return false
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// camel converts a kebab-case CSS property into camelCase.
func camel(s string) string {
	parts := strings.Split(s, "-")
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalise(parts[i])
	}
	return strings.Join(parts, "")
}
