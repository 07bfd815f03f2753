package types

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"translation-quote/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report JSON field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks a request DTO against its validate tags. Failures are
// INVALID_ARGUMENT errors listing every offending field.
func Validate(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.TypeInvalidArgument, "invalid request", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describe(fe))
	}
	return errors.New(errors.TypeInvalidArgument, "invalid request: "+strings.Join(fields, "; ")).
		WithContext("fields", fields)
}

func describe(fe validator.FieldError) string {
	// drop the root struct name: "QuoteRequest.documents[0].complexity"
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "min":
		return field + " must have at least " + fe.Param() + " entries"
	case "max":
		return field + " exceeds maximum " + fe.Param()
	case "gte":
		return field + " must be >= " + fe.Param()
	case "lte":
		return field + " must be <= " + fe.Param()
	case "numeric":
		return field + " must be a decimal number"
	default:
		return field + " failed " + fe.Tag()
	}
}
