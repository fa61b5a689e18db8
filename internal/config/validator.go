package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/go-playground/validator/v10"
)

// templatePlaceholders are replaced with sample values before a URL template is parsed
var templatePlaceholders = strings.NewReplacer("{repo}", "owner/repo", "{sha}", "0", "{path}", "file.bin", "{size}", "1")

// newValidator builds a validator with the application-specific tags registered
func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("probemethod", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "icmp", "exec", "httpx":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("digestalgo", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "md5", "sha1", "sha256", "sha512":
			return true
		default:
			return false
		}
	})

	// A URL template must become an absolute http(s) URL once placeholders are filled in
	_ = validate.RegisterValidation("urltemplate", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(templatePlaceholders.Replace(fl.Field().String()))
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})

	return validate
}

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.WrapError(common.ErrInvalidConfiguration, "configuration is nil")
	}

	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	validationErrorMessages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		validationErrorMessages = append(validationErrorMessages, msg)
	}
	return fmt.Errorf("%w:\n  %s", common.ErrInvalidConfiguration, strings.Join(validationErrorMessages, "\n  "))
}

// ValidateSize checks the size selector entered by the user.
func ValidateSize(sizeMB int) error {
	if sizeMB < MinSizeMB || sizeMB > MaxSizeMB {
		return common.NewValidationError("size", sizeMB, fmt.Sprintf("must be between %d and %d", MinSizeMB, MaxSizeMB))
	}
	return nil
}
