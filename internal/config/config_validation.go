package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

// ruleMessages explains a failed rule in document terms. Rules not listed
// fall back to naming the tag.
var ruleMessages = map[string]string{
	"required":      "is required",
	"semver":        "must be a version such as \"1.0\"",
	"item_key":      "must start with a letter or digit and contain only letters, digits, '_', '.', ':' or '-'",
	"column_width":  "must be a positive number or a percentage such as \"25%\"",
	"easing":        "must name an easing curve (see stackgrid profiles)",
	"profile":       "must name a registered transition profile (see stackgrid profiles)",
	"excluded_with": "cannot be combined with transition",
	"hexcolor":      "must be a hex color such as #6366f1",
}

// ValidateConfig performs structural and cross-field validation on an entire document.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return gridErrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return documentError(err)
	}

	keys := make(map[string]int, len(cfg.Items))
	for i, item := range cfg.Items {
		if first, exists := keys[item.Key]; exists {
			field := fmt.Sprintf("items[%d].key", i)
			return gridErrors.NewValidationError(
				field,
				fmt.Sprintf("%s repeats key %q from items[%d]", field, item.Key, first),
				gridErrors.NewDuplicateKeyError(item.Key, first, i),
			)
		}
		keys[item.Key] = i
	}

	return nil
}

// documentError reports the first failed rule under the path it has in the
// YAML document, e.g. grid.column_width or items[2].key.
func documentError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return gridErrors.NewValidationError("config", err.Error(), err)
	}

	fe := ves[0]
	field := documentPath(fe.Namespace())
	rule, ok := ruleMessages[fe.Tag()]
	if !ok {
		rule = fmt.Sprintf("failed the %s rule", fe.ActualTag())
		if fe.Param() != "" {
			rule = fmt.Sprintf("failed the %s=%s rule", fe.ActualTag(), fe.Param())
		}
	}
	return gridErrors.NewValidationError(field, field+" "+rule, err)
}

// documentPath drops the root type from a validator namespace.
func documentPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
