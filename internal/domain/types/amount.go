package types

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value. The API serialises decimals either as JSON
// numbers or as strings such as "1500.00", so both are accepted.
type Amount float64

// Float returns the amount as a float64.
func (a Amount) Float() float64 { return float64(a) }

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			*a = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", s, err)
	}
	*a = Amount(f)
	return nil
}
