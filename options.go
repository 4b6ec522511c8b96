package statsapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaEncoder = schema.NewEncoder()
)

// OptionsError reports helper options that failed validation.
type OptionsError struct {
	// Fields maps each offending field to a short description.
	Fields map[string]string
}

func (e *OptionsError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid options: " + strings.Join(parts, "; ")
}

// encodeOptions validates a helper options struct and converts its schema
// tagged fields into a parameter bag. Names are sorted; multi-valued fields
// are joined with commas, the list form the Stats API expects.
func encodeOptions(opts any) (Params, error) {
	if err := validate.Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = describeValidation(fe)
			}
			return nil, &OptionsError{Fields: fields}
		}
		return nil, err
	}

	values := make(map[string][]string)
	if err := schemaEncoder.Encode(opts, values); err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	names := make([]string, 0, len(values))
	for name, v := range values {
		if len(v) == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	params := make(Params, 0, len(names))
	for _, name := range names {
		params = append(params, Param{Name: name, Value: strings.Join(values[name], ",")})
	}
	return params, nil
}

func describeValidation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "required_with":
		return fmt.Sprintf("required together with %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
