// Package errors turns backend call failures into bounded metric label values.
package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strings"

	"github.com/sony/gobreaker"

	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
)

// Classify names the failure of a backend call. Categorised application errors
// report their code, breaker rejections report "breaker_open", and anything else
// falls back to the innermost concrete type, e.g. "net_operror".
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case goerrors.Is(err, gobreaker.ErrOpenState), goerrors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case goerrors.Is(err, context.DeadlineExceeded):
		return string(apperrors.ErrCodeTimeout)
	case goerrors.Is(err, context.Canceled):
		return string(apperrors.ErrCodeCanceled)
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	return typeName(err)
}

func typeName(err error) string {
	for {
		inner := goerrors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.String() == "" {
		return "unknown"
	}
	return strings.ReplaceAll(strings.ToLower(t.String()), ".", "_")
}
