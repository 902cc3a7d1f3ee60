package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a user-supplied record ID such as "12" or "#12" into the
// store's unsigned key. Zero is rejected because the store never assigns it.
func Parse(s string) (uint, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if raw == "" {
		return 0, fmt.Errorf("empty id")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", s)
	}
	return uint(n), nil
}

// Format renders an ID the way listings print it.
func Format(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
