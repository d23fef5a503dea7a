package picklist

import (
	"regexp"
	"strings"

	"github.com/jccirs09/picklist/constants"
)

var (
	// Item header: line no, quantity, unit, staged quantity (possibly an
	// underscore placeholder), item code, width, optional length, weight.
	// Order-sensitive; a dot is allowed inside the item code.
	reItemHeader = regexp.MustCompile(`(?i)^\s*(\d+)\s+(\d{1,3}(?:,\d{3})*|\d+)\s+(PCS|LBS)\s+([_\d,]+)\s+([A-Z0-9\-./]+)\s+(\d+(?:\.\d+)?)"(?:\s+(\d+(?:\.\d+)?)")?\s+(\d+(?:,\d{3})*(?:\.\d+)?)\b`)

	reTagHeader = regexp.MustCompile(`(?i)TAG\s*#\s+HEAT\s*#`)
	reTagRow    = regexp.MustCompile(`(?i)^\s*(\d+)\s+([A-Za-z0-9\-]+)\s+([A-Za-z0-9\-]+)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*(PCS|LBS)?\s+(\d+(?:\.\d+)?)"?\s+(\d+"\s*X\s*\d+")\s+([A-Za-z0-9\-]+)\s*$`)

	reOtherRes      = regexp.MustCompile(`^Other Reservations:`)
	reProcessMarker = regexp.MustCompile(`(?i)^CTL\s*-?$`)
)

type scanState int

const (
	// stateScanning looks for the next item header.
	stateScanning scanState = iota
	// stateTrailer consumes boilerplate and process-type markers directly
	// below an item header.
	stateTrailer
	// stateDescription accumulates free-text description lines.
	stateDescription
	// stateOtherRes skips an "Other Reservations:" block.
	stateOtherRes
	// stateTagTable consumes tag-detail rows.
	stateTagTable
)

// itemScanner is the parse state carried across one pass over the normalized
// lines: the current state, the item and tag rows being built, and the
// committed output sequence.
type itemScanner struct {
	state   scanState
	current *Item
	desc    []string
	items   []Item
}

// scanItems runs the state machine over the normalized line sequence once
// and returns the items in document order.
func scanItems(lines []string) []Item {
	s := &itemScanner{state: stateScanning, items: []Item{}}
	for _, line := range lines {
		// A transition out of a consuming state may need to re-dispatch the
		// same line (e.g. the line that closes a description also opens the
		// next item). step reports whether it consumed the line.
		for !s.step(line) {
		}
	}
	s.commit()
	return s.items
}

func (s *itemScanner) step(line string) bool {
	switch s.state {
	case stateScanning:
		if m := reItemHeader.FindStringSubmatch(line); m != nil {
			s.start(m)
			return true
		}
		return true

	case stateTrailer:
		switch {
		case reProcessMarker.MatchString(line):
			if s.current.ProcessType == nil {
				pt := constants.ProcessCTL
				s.current.ProcessType = &pt
			}
			return true
		case isCruft(line):
			return true
		default:
			s.state = stateDescription
			return false
		}

	case stateDescription:
		switch {
		case hasPrefixFold(line, "TAG:"):
			return true
		case reOtherRes.MatchString(line):
			s.state = stateOtherRes
			return true
		case reItemHeader.MatchString(line):
			s.commit()
			s.start(reItemHeader.FindStringSubmatch(line))
			return true
		case reTagHeader.MatchString(line):
			s.finalizeDescription()
			s.state = stateTagTable
			return true
		case hasPrefixFold(line, "SOURCE:") || rePageHeader.MatchString(line):
			s.commit()
			s.state = stateScanning
			return true
		default:
			if t := strings.TrimSpace(line); t != "" {
				s.desc = append(s.desc, t)
			}
			return true
		}

	case stateOtherRes:
		if strings.TrimSpace(line) == "" ||
			hasPrefixFold(line, "SOURCE:") ||
			reItemHeader.MatchString(line) ||
			reTagHeader.MatchString(line) ||
			rePageHeader.MatchString(line) {
			s.state = stateDescription
			return false
		}
		return true

	case stateTagTable:
		switch {
		case reItemHeader.MatchString(line):
			s.commit()
			s.start(reItemHeader.FindStringSubmatch(line))
			return true
		case strings.TrimSpace(line) == "",
			hasPrefixFold(line, "SOURCE:"),
			rePageHeader.MatchString(line):
			s.commit()
			s.state = stateScanning
			return true
		default:
			if m := reTagRow.FindStringSubmatch(line); m != nil {
				s.current.TagDetails = append(s.current.TagDetails, newTagDetail(m))
			}
			// Stray continuation text inside the table is tolerated.
			return true
		}
	}
	return true
}

// start opens a new item from an item-header match and enters TRAILER.
func (s *itemScanner) start(m []string) {
	unit, _ := constants.ParseQuantityUnit(m[3])
	s.current = &Item{
		LineNo:         parseInt(m[1]),
		Quantity:       parseInt(m[2]),
		QuantityUnit:   unit,
		QuantityStaged: parseIntOrNil(m[4]),
		ItemCode:       strings.TrimSpace(m[5]),
		WidthIn:        parseDecOrNil(m[6]),
		LengthIn:       parseDecOrNil(m[7]),
		WeightLbs:      parseDecOrNil(m[8]),
		TagDetails:     []TagDetail{},
	}
	s.desc = s.desc[:0]
	s.state = stateTrailer
}

// finalizeDescription folds the accumulated lines into the item and infers
// the process type from keywords when no explicit marker set it.
func (s *itemScanner) finalizeDescription() {
	if s.current == nil {
		return
	}
	if s.current.Description == nil && len(s.desc) > 0 {
		d := strings.Join(s.desc, " ")
		s.current.Description = &d
	}
	if s.current.ProcessType == nil && s.current.Description != nil {
		upper := strings.ToUpper(*s.current.Description)
		var pt constants.ProcessType
		switch {
		case strings.Contains(upper, "SHEET"):
			pt = constants.ProcessSheetStock
		case strings.Contains(upper, "CTL"):
			pt = constants.ProcessCTL
		case strings.Contains(upper, "SLIT"):
			pt = constants.ProcessSlitter
		default:
			return
		}
		s.current.ProcessType = &pt
	}
}

// commit closes the in-progress item, if any, onto the output sequence.
func (s *itemScanner) commit() {
	if s.current == nil {
		return
	}
	s.finalizeDescription()
	s.items = append(s.items, *s.current)
	s.current = nil
	s.desc = s.desc[:0]
}

func newTagDetail(m []string) TagDetail {
	td := TagDetail{
		TagNo:       nonEmptyPtr(m[1]),
		HeatNo:      nonEmptyPtr(m[2]),
		MillRef:     nonEmptyPtr(m[3]),
		Qty:         parseIntOrNil(m[4]),
		ThicknessIn: parseDecOrNil(m[6]),
		Location:    nonEmptyPtr(m[8]),
	}
	if unit, ok := constants.ParseQuantityUnit(m[5]); ok {
		td.QtyUnit = &unit
	}
	// Sizes like `48" X 96"` are stored with internal whitespace removed.
	if size := strings.ReplaceAll(strings.TrimSpace(m[7]), " ", ""); size != "" {
		td.Size = &size
	}
	return td
}

func nonEmptyPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
