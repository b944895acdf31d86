package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrAssetMissing  = errors.New("asset missing")
	ErrEncode        = errors.New("encode error")
	ErrTimeout       = errors.New("timeout")
)

// Failure kind labels persisted with job records and surfaced in result
// manifests.
const (
	KindConfiguration = "configuration"
	KindAssetMissing  = "asset_missing"
	KindEncode        = "encode"
	KindTimeout       = "timeout"
	KindUnknown       = "unknown"
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above; a nil marker leaves the error
// unclassified.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureKind maps an error to the label recorded for a failed render job.
// Timeouts take precedence over the other markers, so a deadline abort
// wrapped inside an encode failure still reports as a timeout.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrAssetMissing):
		return KindAssetMissing
	case errors.Is(err, ErrEncode):
		return KindEncode
	default:
		return KindUnknown
	}
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
