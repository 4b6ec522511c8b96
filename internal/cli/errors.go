package cli

import (
	"errors"
	"fmt"

	"github.com/mark3labs/statsapi"
	"github.com/mark3labs/statsapi/internal/endpoint"
)

var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

// friendlyError turns caller mistakes reported by the client into usage
// errors. Transport and server failures pass through unchanged.
func friendlyError(err error) error {
	if err == nil {
		return nil
	}
	var (
		re *statsapi.ResolveError
		me *statsapi.MetaTypeError
		oe *statsapi.OptionsError
		ce *endpoint.CatalogError
	)
	switch {
	case errors.As(err, &re):
		if errors.Is(re, statsapi.ErrUnknownEndpoint) {
			return newUsageError(re.Error() + "\nHint: run `statsapi endpoints` to list endpoint names.")
		}
		return newUsageError(re.Error() + fmt.Sprintf("\nHint: run `statsapi notes %s` to list its parameters.", re.Endpoint))
	case errors.As(err, &me), errors.As(err, &oe):
		return newUsageError(err.Error())
	case errors.As(err, &ce):
		msg := fmt.Sprintf("catalog: %s", ce.Message)
		if ce.Location != "" {
			msg = fmt.Sprintf("%s\nLocation: %s", msg, ce.Location)
		}
		return newUsageError(msg)
	}
	return err
}
