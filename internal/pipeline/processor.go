// Package pipeline coordinates text acquisition and parsing for one
// document: PDF bytes in, structured picking-list record out.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/jccirs09/picklist/internal/common"
	"github.com/jccirs09/picklist/internal/extract"
	"github.com/jccirs09/picklist/internal/picklist"
)

// Processor runs the acquisition chain and the plain-text parser.
type Processor struct {
	Logger *slog.Logger
	Chain  *extract.Chain
	Parser *picklist.Parser
}

func NewProcessor(logger *slog.Logger, chain *extract.Chain, parser *picklist.Parser) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Chain: chain, Parser: parser}
}

// Process extracts text from the PDF bytes, parses it, and gates the result
// on the record schema (an order number must have been recognized).
// Extraction failures and incomplete records are fatal to the call; every
// field-level miss inside parsing already resolved to "absent".
func (p *Processor) Process(ctx context.Context, pdf []byte) (*picklist.PickingList, error) {
	res, err := p.Chain.Extract(ctx, pdf)
	if err != nil {
		p.Logger.Error("processor.extract.failed", "err", err)
		return nil, err
	}
	p.Logger.Info("processor.extract.ok",
		"strategy", res.Strategy,
		"pages", res.Pages,
		"bytes", len(res.Text),
	)

	pl := p.Parser.ParseText(res.Text)
	if err := picklist.Validate(pl); err != nil {
		p.Logger.Error("processor.parse.incomplete", "err", err)
		return nil, common.NewAppError("PARSE_INCOMPLETE",
			"document text did not yield a usable record", err)
	}

	p.Logger.Info("processor.parse.ok",
		"order_number", pl.OrderNumber,
		"items", len(pl.Items),
	)
	return pl, nil
}
