package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hamed0406/pinglight/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report yaml keys, which is what users write
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks c once, up front. An empty ping address is reported as
// domain.ErrConfigMissing so callers can tell it apart from a bad value.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(fes))
	missing := false
	for _, fe := range fes {
		if fe.Field() == "ping_address" && fe.Tag() == "required" {
			missing = true
			continue
		}
		msgs = append(msgs, describe(fe))
	}
	if missing {
		if len(msgs) == 0 {
			return domain.ErrConfigMissing
		}
		return fmt.Errorf("%w; invalid config: %s", domain.ErrConfigMissing, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be >= %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be <= %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", fe.Field(), fe.Param(), fe.Value())
	case "hostname_rfc1123|ip":
		return fmt.Sprintf("%s must be a hostname or IP address (got %q)", fe.Field(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL", fe.Field())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}
