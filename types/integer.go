package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Integer is an int64 that also accepts JSON string values. The browser
// client submits numeric form inputs as strings, so "10" and 10 must both
// decode. It marshals as a plain JSON number.
type Integer int64

func (i *Integer) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid integer %s: %w", s, err)
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", s, err)
	}
	*i = Integer(v)
	return nil
}
