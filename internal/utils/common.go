package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSizeString converts human-readable size strings ("10MB", "512KB",
// "1048576") to a byte count.
func ParseSizeString(sizeStr string) (int64, error) {
	s := strings.TrimSpace(sizeStr)

	units := []struct {
		suffix string
		factor float64
	}{
		{"TB", 1 << 40},
		{"GB", 1 << 30},
		{"MB", 1 << 20},
		{"KB", 1 << 10},
		{"B", 1},
	}

	for _, u := range units {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		num := strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
		size, err := strconv.ParseFloat(num, 64)
		if err != nil {
			break
		}
		return int64(size * u.factor), nil
	}

	// Raw byte count without a unit.
	if size, err := strconv.ParseInt(s, 10, 64); err == nil {
		return size, nil
	}

	return 0, fmt.Errorf("invalid size format: %s", sizeStr)
}
