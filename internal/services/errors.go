package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthentication   = errors.New("authorization failed")
	ErrTokenAcquisition = errors.New("token acquisition failed")
	ErrTimeout          = errors.New("request timeout")
	ErrRetryExhausted   = errors.New("retry attempts exhausted")
	ErrTransport        = errors.New("transport error")
	ErrHTTPStatus       = errors.New("http status error")
	ErrParse            = errors.New("parse error")
	ErrConfiguration    = errors.New("configuration error")
	ErrCategoryNotFound = errors.New("category not found")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
