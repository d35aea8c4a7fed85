package style

// Compose maps a semantic style description to the final style map.
//
// Transform-affecting keys are folded into a single transform value built
// with units; every other key passes through unchanged. perspective is kept
// as its own property as well, since some engines only set up a 3D
// rendering context from the standalone declaration. With vendorPrefix the
// result also carries vendor-prefixed duplicates.
func Compose(s Styles, units Units, vendorPrefix bool) Styles {
	final := make(Styles, len(s)+1)
	transforms := make(Styles)

	for k, v := range s {
		if IsTransformProperty(k) {
			transforms[k] = v
			if k == "perspective" {
				final[k] = v
			}
			continue
		}
		final[k] = v
	}

	if transform := BuildTransform(transforms, units); transform != "" {
		final["transform"] = transform
	}

	if vendorPrefix {
		return Prefix(final)
	}
	return final
}
