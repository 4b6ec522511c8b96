package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a resolution failure.
type Kind int

const (
	UnknownEndpoint Kind = iota + 1
	MissingPathParam
	MissingQueryParams
)

func (k Kind) String() string {
	switch k {
	case UnknownEndpoint:
		return "unknown endpoint"
	case MissingPathParam:
		return "missing required path parameter"
	case MissingQueryParams:
		return "missing required query parameter(s)"
	default:
		return "unknown failure"
	}
}

// Sentinels for errors.Is matching against *Error.
var (
	ErrUnknownEndpoint    = errors.New("unknown endpoint")
	ErrMissingPathParam   = errors.New("missing required path parameter")
	ErrMissingQueryParams = errors.New("missing required query parameter(s)")
)

// Error is a structured resolution failure.
type Error struct {
	Kind     Kind
	Endpoint string
	// Params names the offending parameters: the missing path parameter, or the
	// shortfall of the closest required set.
	Params []string
	// Alternatives holds every required query set of the endpoint.
	Alternatives [][]string
	Note         string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownEndpoint:
		return fmt.Sprintf("invalid endpoint (%s)", e.Endpoint)
	case MissingPathParam:
		return fmt.Sprintf("missing required path parameter {%s} for the %s endpoint", strings.Join(e.Params, ", "), e.Endpoint)
	case MissingQueryParams:
		var b strings.Builder
		fmt.Fprintf(&b, "missing required parameter(s): %s", strings.Join(e.Params, ", "))
		fmt.Fprintf(&b, "; required parameters for the %s endpoint: %s", e.Endpoint, FormatSets(e.Alternatives))
		if len(e.Alternatives) > 1 {
			b.WriteString("; any one of the sets satisfies the endpoint")
		}
		if e.Note != "" {
			fmt.Fprintf(&b, "; endpoint note: %s", e.Note)
		}
		return b.String()
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Endpoint)
	}
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnknownEndpoint:
		return e.Kind == UnknownEndpoint
	case ErrMissingPathParam:
		return e.Kind == MissingPathParam
	case ErrMissingQueryParams:
		return e.Kind == MissingQueryParams
	}
	return false
}

// FormatSets renders required sets as [a + b] or [c].
func FormatSets(sets [][]string) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		parts = append(parts, "["+strings.Join(set, " + ")+"]")
	}
	return strings.Join(parts, " or ")
}
