package picklist

import (
	"regexp"
	"strings"
)

var (
	reEmail      = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	rePostalCode = regexp.MustCompile(`\b[A-Z]\d[A-Z]\s?\d[A-Z]\d\b`)
)

// addressColumnLines is how many physical lines below the SOLD TO / SHIP TO
// label row carry address content in the fixed layout.
const addressColumnLines = 3

// extractParties locates the SOLD TO / SHIP TO label row in the raw text and
// slices the two fixed-geometry columns from the lines beneath it. The ship-to
// column ends at the SHIP VIA label column when present, and is truncated at
// an embedded FOB POINT label.
func extractParties(raw string) (soldTo, shipTo Party) {
	lines := strings.Split(unifyText(raw), "\n")

	var soldToLines, shipToLines []string
	for i, line := range lines {
		soldPos := strings.Index(line, "SOLD TO")
		shipPos := strings.Index(line, "SHIP TO")
		if soldPos < 0 || shipPos < 0 {
			continue
		}
		shipViaPos := strings.Index(line, "SHIP VIA")

		for j := i + 1; j <= i+addressColumnLines && j < len(lines); j++ {
			shipEnd := len(lines[j])
			if shipViaPos > shipPos {
				shipEnd = shipViaPos
			}
			soldCol := safeSlice(lines[j], soldPos, shipPos)
			shipCol := safeSlice(lines[j], shipPos, shipEnd)
			if fob := strings.Index(shipCol, "FOB POINT"); fob >= 0 {
				shipCol = shipCol[:fob]
			}
			soldToLines = append(soldToLines, strings.TrimSpace(soldCol))
			shipToLines = append(shipToLines, strings.TrimSpace(shipCol))
		}
		break
	}

	soldTo = parseParty(soldToLines)
	shipTo = parseParty(shipToLines)

	// Single-delivery-location documents omit the ship-to geography; inherit
	// it from sold-to so the record stays routable.
	if strOrEmpty(shipTo.City) == "" && strOrEmpty(soldTo.City) != "" {
		shipTo.City = clonePtr(soldTo.City)
		shipTo.Province = clonePtr(soldTo.Province)
		shipTo.PostalCode = clonePtr(soldTo.PostalCode)
	}
	return soldTo, shipTo
}

// parseParty classifies the accumulated column lines: first non-blank line is
// the name, an email-looking line becomes the email, a postal-code line yields
// postal code plus a comma-split city/province pair, and whatever remains is
// joined into the street address.
func parseParty(lines []string) Party {
	var party Party

	remaining := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			remaining = append(remaining, l)
		}
	}
	if len(remaining) == 0 {
		return party
	}

	name := remaining[0]
	party.Name = &name
	remaining = remaining[1:]

	for i, l := range remaining {
		if m := reEmail.FindString(l); m != "" {
			party.Email = &m
			remaining = append(remaining[:i], remaining[i+1:]...)
			break
		}
	}

	for i, l := range remaining {
		loc := rePostalCode.FindStringIndex(l)
		if loc == nil {
			continue
		}
		pc := strings.ReplaceAll(l[loc[0]:loc[1]], " ", "")
		party.PostalCode = &pc

		cityProv := strings.TrimSpace(l[:loc[0]])
		parts := strings.Split(cityProv, ",")
		if city := strings.TrimSpace(parts[0]); city != "" {
			party.City = &city
		}
		if len(parts) > 1 {
			if prov := strings.TrimSpace(parts[1]); prov != "" {
				party.Province = &prov
			}
		}
		remaining = append(remaining[:i], remaining[i+1:]...)
		break
	}

	if len(remaining) > 0 {
		addr := strings.Join(remaining, " ")
		party.AddressLine = &addr
	}
	return party
}

func safeSlice(s string, start, end int) string {
	if start < 0 || start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	if end <= start {
		return ""
	}
	return s[start:end]
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
