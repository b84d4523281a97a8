package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/ultramac/internal/mathgen"
	"github.com/verte-zerg/ultramac/internal/model"
	"github.com/verte-zerg/ultramac/internal/store"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

var fieldNames = map[string]string{
	"Username":  "user",
	"TimeLimit": "time-limit",
	"Lower":     "lower",
	"Upper":     "upper",
	"Store":     "store",
	"LogLevel":  "log-level",
}

// Validate checks merged settings, including that the difficulty range
// leaves room for multiplication operands and that the store can key games
// by the username.
func Validate(cfg model.Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	if err := store.CheckUsername(cfg.Store, cfg.Username); err != nil {
		return fmt.Errorf("%w: user: %w", ErrInvalidConfig, err)
	}
	if err := (mathgen.Difficulty{Lower: cfg.Lower, Upper: cfg.Upper}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Template != "" {
		if _, err := mathgen.ParseTemplate(cfg.Template); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	name, ok := fieldNames[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", name, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", name, fieldNames[fe.Param()])
	default:
		return fmt.Sprintf("%s must satisfy %s=%s, got %v", name, fe.Tag(), fe.Param(), fe.Value())
	}
}
