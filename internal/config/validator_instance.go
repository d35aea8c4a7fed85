package config

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern  = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	itemKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("item_key", func(fl validator.FieldLevel) bool {
			return itemKeyPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("column_width", func(fl validator.FieldLevel) bool {
			_, err := layout.ParseColumnSpec(fl.Field().Interface())
			return err == nil
		})

		_ = v.RegisterValidation("easing", func(fl validator.FieldLevel) bool {
			_, err := transition.ParseEasing(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("profile", func(fl validator.FieldLevel) bool {
			_, ok := transition.Lookup(fl.Field().String())
			return ok
		})

		validateInst = v
	})

	return validateInst
}
