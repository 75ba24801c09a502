package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a payment-method amount. Clients send either a JSON number or a
// string that may carry a leading "$" ("$120.50"); both decode to the same
// numeric value. Non-numeric strings are rejected at decode time.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimPrefix(strings.TrimSpace(s), "$")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q is not a number", s)
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Float64 returns the amount as a plain float64.
func (a Amount) Float64() float64 {
	return float64(a)
}

// sum adds amounts in the order given. Callers pass the entity's fixed
// field list so every field participates exactly once.
func sum(amounts ...Amount) float64 {
	var total float64
	for _, a := range amounts {
		total += float64(a)
	}
	return total
}
