package dto

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var productNamePattern = regexp.MustCompile(`^[A-Za-z0-9 '\-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Decimals are validated as float64 so the numeric tags apply to them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "productname", func(fl validator.FieldLevel) bool {
		return productNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})
	mustRegister(v, "money", func(fl validator.FieldLevel) bool {
		cents := fl.Field().Float() * 100
		return math.Abs(cents-math.Round(cents)) < 1e-6
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("dto: register %s validation: %v", tag, err))
	}
}

// crossFieldRule is implemented by inputs with rules spanning several fields.
type crossFieldRule interface {
	crossFieldErrors() []apperrors.FieldError
}

// Validate runs the struct rules on v and returns an *apperrors.AppError
// listing every failed field, or nil.
func Validate(v any) error {
	var fields []apperrors.FieldError

	if err := validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return apperrors.Internal(err)
		}
		for _, fe := range validationErrors {
			fields = append(fields, apperrors.FieldError{
				Field:      fe.Field(),
				Message:    messageFor(fe),
				Value:      fe.Value(),
				Constraint: fe.Tag(),
			})
		}
	}

	if rule, ok := v.(crossFieldRule); ok {
		fields = append(fields, rule.crossFieldErrors()...)
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "productname":
		return fmt.Sprintf("%s can only contain letters, numbers, spaces, hyphens and apostrophes", field)
	case "category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.CategoryNames(), ", "))
	case "money":
		return fmt.Sprintf("%s must have at most 2 decimal places", field)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}

// trimmed returns s without surrounding whitespace, or nil when nothing is left.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// lowered is trimmed plus lower-casing.
func lowered(s *string) *string {
	s = trimmed(s)
	if s == nil {
		return nil
	}
	v := strings.ToLower(*s)
	return &v
}
