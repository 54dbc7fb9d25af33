package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToInt converts a telemetry or settings value to an int. Strings are read
// as base-10 integers only, so "050" is 50 and "0x32" is rejected. Floats
// truncate toward zero; other shapes go through cast.
func ToInt(v any) (int, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToIntE(v)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a base-10 integer", s)
	}
	return n, nil
}
