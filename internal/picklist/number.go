package picklist

import (
	"math"
	"strconv"
	"strings"
)

// parseInt parses an integer token with thousands separators ("1,990").
// Returns 0 when the token is malformed; callers only pass regex-validated
// tokens, so that branch is defensive only at the boundary.
func parseInt(s string) int {
	v, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return v
}

// parseIntOrNil parses an optional integer token. An all-underscore
// placeholder ("____") is a staging field left blank on the document and
// maps to nil, not zero. Fractional tokens round to the nearest integer,
// halves away from zero.
func parseIntOrNil(s string) *int {
	s = strings.ReplaceAll(s, ",", "")
	if strings.TrimSpace(s) == "" || strings.Contains(s, "_") {
		return nil
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		// math.Round rounds halves away from zero, matching the document
		// convention for fractional quantities.
		v := int(math.Round(f))
		return &v
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// parseDecOrNil parses an optional decimal token, tolerating thousands
// separators, stray spaces, and a trailing inch mark.
func parseDecOrNil(s string) *float64 {
	r := strings.NewReplacer(" ", "", ",", "", `"`, "")
	s = r.Replace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
