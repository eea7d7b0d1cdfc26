package failures

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInputShape    = errors.New("input shape error")
	ErrFormat        = errors.New("format error")
	ErrConfiguration = errors.New("configuration error")
	ErrOutput        = errors.New("output error")
)

// Exit codes returned by the CLI for each marker.
const (
	ExitGeneric       = 1
	ExitConfiguration = 2
	ExitInput         = 3
	ExitOutput        = 4
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker. The marker should be one of the exported sentinels above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
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

// ExitCode maps a terminating error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, ErrInputShape), errors.Is(err, ErrFormat):
		return ExitInput
	case errors.Is(err, ErrOutput):
		return ExitOutput
	default:
		return ExitGeneric
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
