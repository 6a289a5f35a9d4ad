package graph

import (
	"strconv"

	"catalog/internal/apperrors"

	"github.com/shopspring/decimal"
)

// Argument maps come from graphql-go already coerced: ID and String as
// string, Int as int, Float as float64, lists as []any, inputs as map[string]any.

func optString(args map[string]any, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]any, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func optFloat(args map[string]any, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func optDecimal(args map[string]any, key string) *decimal.Decimal {
	f := optFloat(args, key)
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func stringList(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func inputArg(args map[string]any, key string) map[string]any {
	if m, ok := args[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// idArg reads the id argument as a positive integer.
func idArg(args map[string]any, resource string) (uint, error) {
	raw, _ := args["id"].(string)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation([]apperrors.FieldError{{
			Field:      "id",
			Message:    resource + " ID must be a positive integer",
			Value:      raw,
			Constraint: "positiveInt",
		}})
	}
	return uint(id), nil
}

// resolverError is what GraphQL clients see: the message of the AppError,
// with code and details under extensions. The wrapped cause stays server side.
type resolverError struct {
	*apperrors.AppError
}

func (e resolverError) Error() string { return e.Message }
