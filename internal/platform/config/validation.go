package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags reported by the store layout check.
const (
	tagSingleCatchAll = "single_catchall"
	tagEntityOwner    = "single_owner"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their koanf key so messages match the YAML.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})
	v.RegisterStructValidation(validateStoreLayout, ContainerConfig{})

	return v
}

// validateStoreLayout rejects layouts the engine cannot route: more than one
// catch-all store, or an entity listed by two stores.
func validateStoreLayout(sl validator.StructLevel) {
	c, ok := sl.Current().Interface().(ContainerConfig)
	if !ok {
		return
	}

	catchAll := 0
	owners := make(map[string]string)

	for _, s := range c.Stores {
		if len(s.Entities) == 0 {
			catchAll++
			if catchAll == 2 {
				sl.ReportError(c.Stores, "stores", "Stores", tagSingleCatchAll, "")
			}

			continue
		}

		for _, e := range s.Entities {
			if prev, taken := owners[e]; taken && prev != s.Name {
				sl.ReportError(c.Stores, "stores", "Stores", tagEntityOwner, e)
				continue
			}
			owners[e] = s.Name
		}
	}
}

// Validate checks the configuration. The service refuses to start when it
// fails.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, len(fieldErrs))
	for i, e := range fieldErrs {
		msgs[i] = fieldMessage(e)
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

func fieldMessage(e validator.FieldError) string {
	field := fieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		other, value, _ := strings.Cut(e.Param(), " ")
		return fmt.Sprintf("%s is required when %s is %s", field, strings.ToLower(other), value)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "unique":
		return fmt.Sprintf("%s must have unique %s values", field, strings.ToLower(e.Param()))
	case "url":
		return field + " must be a valid URL"
	case tagSingleCatchAll:
		return field + " may contain at most one store without entities"
	case tagEntityOwner:
		return fmt.Sprintf("%s list entity %q in more than one store", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// fieldPath drops the root struct from a namespace such as
// "Config.server.read_timeout".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return path
}
