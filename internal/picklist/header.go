package picklist

import (
	"regexp"
	"strings"
	"time"
)

// Header probes. Each one is independent and best-effort: a miss leaves the
// field nil and never affects the other probes. They run against the raw
// text because they tolerate the original physical-line layout.
var (
	reOrderNo        = regexp.MustCompile(`(?i)PICKING\s*LIST\s*No\.\s*(\d+)`)
	reOrderNoGeneric = regexp.MustCompile(`\bNo\.\s*([0-9A-Z\-]+)`)
	rePrintDT        = regexp.MustCompile(`(?i)PRINT\s*DATE/TIME:\s*(\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2})`)
	reShipDate       = regexp.MustCompile(`(?i)\bSHIP\s*DATE\s*(\d{2}/\d{2}/\d{4})`)
	reOrderDate      = regexp.MustCompile(`(?i)\bORDER\s*DATE\s*(\d{2}/\d{2}/\d{4})`)
	reBuyer          = regexp.MustCompile(`(?i)\bBUYER\s+(.+?)\s+(?:SHIP\s*DATE|PURCHASE\s*ORDER|ORDER\s*DATE)`)
	rePO             = regexp.MustCompile(`(?i)PURCHASE\s*ORDER\s*#\s*([A-Za-z0-9\-]+)`)
	reSalesRep       = regexp.MustCompile(`(?i)\bSALES\s*REP\s+(.+?)\s+SHIP\s*VIA`)
	reShipVia        = regexp.MustCompile(`(?i)\bSHIP\s*VIA\s+([A-Z][A-Z ]+)`)
	reTerms          = regexp.MustCompile(`(?i)\bNET\s+\d+\s+DAYS\b`)
	rePickingGroup   = regexp.MustCompile(`(?i)\bPICKING\s*GROUP\s+([A-Z0-9\-]+)`)
	reJobName        = regexp.MustCompile(`(?i)\bJOB\s*NAME\s+(.+?)\s+SALES\s*REP`)
	reFOBPoint       = regexp.MustCompile(`(?i)\bFOB\s*POINT\s+([A-Z][A-Z ]*[A-Z])`)
	reRoute          = regexp.MustCompile(`(?i)\bROUTE\s+([A-Z0-9\-]+)`)
	reRecvHours      = regexp.MustCompile(`(?i)RECEIVING\s*HOURS:?\s*([0-9][0-9:APM\- ]*[0-9PM])`)
	reCallBefore     = regexp.MustCompile(`(?i)CALL\s+(?:\S+\s+)?BEFORE\D{0,20}?(\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4})`)
	reTrailerTotal   = regexp.MustCompile(`(?im)^\s*(\d+(?:,\d{3})*(?:\.\d+)?)\s*LBS\s*$`)
)

const (
	layoutDate     = "01/02/2006"
	layoutDateTime = "01/02/2006 15:04"
)

// extractHeader fills the scalar document-level fields of the record from
// the raw text.
func extractHeader(raw string, pl *PickingList) {
	if m := reOrderNo.FindStringSubmatch(raw); m != nil {
		pl.OrderNumber = strings.TrimSpace(m[1])
	} else if m := reOrderNoGeneric.FindStringSubmatch(raw); m != nil {
		// Malformed renders sometimes detach the number from the
		// "PICKING LIST" label; the generic probe salvages those.
		pl.OrderNumber = strings.TrimSpace(m[1])
	}

	pl.PrintDateTime = probeDateTime(rePrintDT, raw, layoutDateTime)
	pl.ShipDate = probeDateTime(reShipDate, raw, layoutDate)
	pl.OrderDate = probeDateTime(reOrderDate, raw, layoutDate)

	pl.Buyer = probeString(reBuyer, raw)
	pl.PurchaseOrderNumber = probeString(rePO, raw)
	pl.SalesRep = probeString(reSalesRep, raw)
	pl.ShipVia = probeString(reShipVia, raw)
	pl.PickingGroup = probeString(rePickingGroup, raw)
	pl.JobName = probeString(reJobName, raw)
	pl.FOBPoint = probeString(reFOBPoint, raw)
	pl.Route = probeString(reRoute, raw)
	pl.ReceivingHours = probeString(reRecvHours, raw)
	pl.CallBeforePhone = probeString(reCallBefore, raw)

	if m := reTerms.FindString(raw); m != "" {
		t := strings.TrimSpace(m)
		pl.Terms = &t
	}

	if m := reTrailerTotal.FindStringSubmatch(raw); m != nil {
		pl.TotalWeightLbs = parseDecOrNil(m[1])
	}
}

func probeString(re *regexp.Regexp, raw string) *string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	s := strings.TrimSpace(m[1])
	if s == "" {
		return nil
	}
	return &s
}

func probeDateTime(re *regexp.Regexp, raw, layout string) *time.Time {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	t, err := time.Parse(layout, strings.TrimSpace(m[1]))
	if err != nil {
		return nil
	}
	return &t
}
