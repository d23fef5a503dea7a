// Package picklist turns the plain text of a picking-list PDF into a
// structured record. Extraction is best-effort throughout: a field-level
// miss leaves the field absent, and only a missing order number makes the
// record unusable downstream.
package picklist

import "log/slog"

// Parser assembles a PickingList from plain text.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseText runs the full plain-text pipeline: header probes and the address
// parser against the raw text, then the item/tag state machine over the
// normalized line sequence. It never fails; callers gate on OrderNumber
// (see Validate).
func (p *Parser) ParseText(raw string) *PickingList {
	pl := &PickingList{Items: []Item{}}

	extractHeader(raw, pl)
	pl.SoldTo, pl.ShipTo = extractParties(raw)

	lines := Normalize(raw)
	pl.Items = scanItems(lines)

	p.logger.Debug("parsed picking list",
		"order_number", pl.OrderNumber,
		"lines", len(lines),
		"items", len(pl.Items),
	)
	return pl
}
