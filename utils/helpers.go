package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBoundedInt parses raw as an integer in [min, max]. An empty string
// returns def. The error text is written to be embedded in a validation
// message naming the field.
func ParseBoundedInt(raw string, def, min, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if n < min || n > max {
		return 0, fmt.Errorf("must be between %d and %d", min, max)
	}
	return n, nil
}

// ParsePriceRange parses the "min-max" price range query format. Either end
// may be open: "10-" means at least 10, "-99.5" means at most 99.5. Returned
// pointers are nil for open ends.
func ParsePriceRange(raw string) (min, max *float64, err error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("must look like min-max")
	}
	parse := func(s string) (*float64, error) {
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bound %q is not a number", s)
		}
		if f < 0 {
			return nil, fmt.Errorf("bound %q is negative", s)
		}
		return &f, nil
	}
	if min, err = parse(parts[0]); err != nil {
		return nil, nil, err
	}
	if max, err = parse(parts[1]); err != nil {
		return nil, nil, err
	}
	if min != nil && max != nil && *min > *max {
		return nil, nil, fmt.Errorf("minimum exceeds maximum")
	}
	return min, max, nil
}
