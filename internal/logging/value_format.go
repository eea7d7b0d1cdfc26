package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

// plainValue renders v without quoting. Component and stage tags use it.
func plainValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

// formatValue renders v for a key=value field. Free text is quoted when it is
// empty or would be ambiguous next to other fields.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	s := plainValue(v)
	switch v.Kind() {
	case slog.KindString, slog.KindAny, slog.KindGroup, slog.KindLogValuer:
		return quoteIfNeeded(s)
	default:
		return s
	}
}

func quoteIfNeeded(s string) string {
	if s != "" && !strings.ContainsFunc(s, breaksField) {
		return s
	}
	return strconv.Quote(s)
}

func breaksField(r rune) bool {
	return r == '=' || r == '"' || r == ' ' || unicode.IsControl(r)
}
