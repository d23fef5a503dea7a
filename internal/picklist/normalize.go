package picklist

import (
	"regexp"
	"strings"
)

// sectionAnchors are the fixed labels of the document layout, in the order
// they are split on. The renderer frequently concatenates several fields onto
// one physical line; breaking before each anchor restores logical lines.
var sectionAnchors = []string{
	"PICKING LIST", "PRINT DATE/TIME:", "PULLED BY", "TOTAL WT",
	"PICKING GROUP", "BUYER", "SHIP DATE", "PURCHASE ORDER", "ORDER DATE",
	"JOB NAME", "SALES REP", "SHIP VIA", "SOLD TO", "SHIP TO", "FOB POINT",
	"ROUTE", "TERMS", "LINE ", "TAG #", "TAG:", "SOURCE:",
	"Other Reservations:",
}

// cruftPrefixes start boilerplate lines printed on every page.
var cruftPrefixes = []string{
	"MAX SKID WEIGHT",
	"RECEIVING HOURS",
	"Coil to be packaged",
	"MUST WRITE DOWN LINEAL FOOTAGE",
	"-",
}

var (
	reHorizWS  = regexp.MustCompile(`[ \t]+`)
	reDigitGap = regexp.MustCompile(`(\d)[ \t]+(\d)`)
	reDivider  = regexp.MustCompile(`-{6,}|\*{6,}`)

	rePageHeader = regexp.MustCompile(`(?i)^PICKING\s*LIST\s*No\.|^PRINT\s*DATE/TIME:|^\s*PG\s+\d+\s+OF\s+\d+`)
)

// Normalize turns raw extracted text into the ordered sequence of trimmed,
// non-empty logical lines the item scanner consumes. Header and address
// probes run against the raw text instead; their patterns tolerate the
// original layout.
func Normalize(raw string) []string {
	text := unifyText(raw)

	text = reHorizWS.ReplaceAllString(text, " ")

	// Some renderers inject spaces inside numbers ("1 990"). Go's regexp has
	// no lookbehind, so collapse repeatedly until stable.
	for {
		next := reDigitGap.ReplaceAllString(text, "$1$2")
		if next == text {
			break
		}
		text = next
	}

	for _, anchor := range sectionAnchors {
		text = strings.ReplaceAll(text, anchor, "\n"+anchor)
	}

	text = reDivider.ReplaceAllString(text, "\n")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || isCruft(l) {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// unifyText maps smart quotes to plain quotes and all line-ending styles to \n.
func unifyText(s string) string {
	r := strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"\r\n", "\n",
		"\r", "\n",
	)
	return r.Replace(s)
}

func isCruft(line string) bool {
	if rePageHeader.MatchString(line) {
		return true
	}
	upper := strings.ToUpper(line)
	for _, p := range cruftPrefixes {
		if strings.HasPrefix(upper, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}
