// Package extract obtains the best available plain text for a picking-list
// PDF. Three strategies compete in a fixed cost order: the embedded text
// layer, a layout-preserving pdftotext dump, and OCR over rasterized pages.
// The chain stops at the first result that clears the usability gate.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Strategy is one text-acquisition technique.
type Strategy interface {
	// Name identifies the strategy in results and logs.
	Name() string
	// CanHandle reports whether the strategy's preconditions hold
	// (binaries resolvable, trained data configured, ...).
	CanHandle() bool
	// TryExtract returns extracted text, or "" when the document yielded
	// nothing usable. An error means the strategy itself failed; the chain
	// moves on either way.
	TryExtract(ctx context.Context, pdf []byte) (string, error)
}

// Result is the accepted extraction output plus its provenance.
type Result struct {
	Text     string
	Strategy string
	Pages    int
}

// Attempt records why one strategy did not produce the accepted result.
type Attempt struct {
	Strategy string
	Skipped  bool
	Reason   string
}

// ExtractionFailedError means no strategy produced usable text. Attempts
// distinguish "not applicable" from "ran but unusable" for each strategy.
type ExtractionFailedError struct {
	Attempts []Attempt
}

func (e *ExtractionFailedError) Error() string {
	notes := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		if a.Skipped {
			notes[i] = fmt.Sprintf("%s: skipped (%s)", a.Strategy, a.Reason)
		} else {
			notes[i] = fmt.Sprintf("%s: %s", a.Strategy, a.Reason)
		}
	}
	return "extraction failed, no strategy produced usable text: " + strings.Join(notes, "; ")
}

// Chain tries strategies in priority order and accepts the first usable text.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewChain(logger *slog.Logger, strategies ...Strategy) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{strategies: strategies, logger: logger}
}

// Extract runs the chain over raw PDF bytes. Strategies whose preconditions
// fail are skipped; a strategy failure or unusable output moves on to the
// next strategy; only exhausting the chain is fatal.
func (c *Chain) Extract(ctx context.Context, pdf []byte) (Result, error) {
	pages := pageCount(pdf)

	var attempts []Attempt
	for _, s := range c.strategies {
		if !s.CanHandle() {
			c.logger.Debug("strategy not applicable", "strategy", s.Name())
			attempts = append(attempts, Attempt{Strategy: s.Name(), Skipped: true, Reason: "precondition not met"})
			continue
		}

		text, err := s.TryExtract(ctx, pdf)
		if err != nil {
			c.logger.Warn("strategy failed", "strategy", s.Name(), "error", err)
			attempts = append(attempts, Attempt{Strategy: s.Name(), Reason: err.Error()})
			continue
		}
		if strings.TrimSpace(text) == "" {
			c.logger.Debug("strategy produced no usable text", "strategy", s.Name())
			attempts = append(attempts, Attempt{Strategy: s.Name(), Reason: "no usable text"})
			continue
		}

		c.logger.Info("text acquired",
			"strategy", s.Name(),
			"pages", pages,
			"bytes", len(text),
		)
		return Result{Text: text, Strategy: s.Name(), Pages: pages}, nil
	}

	return Result{}, &ExtractionFailedError{Attempts: attempts}
}

// pageCount is best-effort document metadata; a document pdfcpu cannot read
// may still yield text via OCR, so failures only cost the page count.
func pageCount(pdf []byte) int {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return 0
	}
	return pdfCtx.PageCount
}
