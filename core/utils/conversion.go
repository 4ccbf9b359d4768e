package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLimit parses a stack limit typed by an operator.
// It accepts digit groups separated by "," or "_" (e.g. "1,000").
func ParseLimit(s string) (int, error) {
	clean := strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("stack size is required")
	}
	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid stack size %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("stack size must be positive, got %d", n)
	}
	return n, nil
}

// ToInt converts numeric values decoded from JSON or YAML to int.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := ParseLimit(v)
		return n, err == nil
	default:
		return 0, false
	}
}
