// Package validation checks domain records against the rules declared in
// their `validate` struct tags.
//
// Besides the validator/v10 built-ins it understands:
//   - notblank: string with at least one non-space character
//   - nowhitespace: string without any whitespace
//   - cinemaepoch: time not before model.CinemaBirthday
//   - notfuture: time not after the current moment
//
// Every failure is reported as model.ErrValidation.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/humanbelnik/filmorate/internal/model"
)

var (
	instance *validator.Validate
	once     sync.Once

	now = time.Now
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		if err := Register(instance); err != nil {
			panic(err)
		}
	})
	return instance
}

// Register adds the custom tags to v. It is also used to extend gin's binding engine.
func Register(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"notblank":     notBlank,
		"nowhitespace": noWhitespace,
		"cinemaepoch":  cinemaEpoch,
		"notfuture":    notFuture,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// Struct validates s and wraps every failure into model.ErrValidation.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, message(fe))
		}
		return fmt.Errorf("%w: %s", model.ErrValidation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %w", model.ErrValidation, err)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "nowhitespace":
		return fmt.Sprintf("%s must not contain whitespace", field)
	case "cinemaepoch":
		return fmt.Sprintf("%s must not be before %s", field, model.CinemaBirthday.Format(time.DateOnly))
	case "notfuture":
		return fmt.Sprintf("%s must not be in the future", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func noWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

func cinemaEpoch(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.Before(model.CinemaBirthday)
}

func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(now())
}
