package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// minEmbeddedTextLen is the usability gate for the embedded text layer.
// Image-only pages carry a near-empty layer; anything shorter than this
// after trimming is treated as no text so the chain can fall through.
const minEmbeddedTextLen = 40

// EmbeddedStrategy reads the PDF's internal text layer page by page.
// Deterministic and cheap; always the first choice.
type EmbeddedStrategy struct{}

func NewEmbeddedStrategy() *EmbeddedStrategy {
	return &EmbeddedStrategy{}
}

func (*EmbeddedStrategy) Name() string { return "embedded" }

func (*EmbeddedStrategy) CanHandle() bool { return true }

func (*EmbeddedStrategy) TryExtract(ctx context.Context, pdfBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A malformed page loses only its own text.
			continue
		}
		if strings.TrimSpace(text) != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	text := sb.String()
	if !usableEmbeddedText(text) {
		return "", nil
	}
	return text, nil
}

// usableEmbeddedText reports whether an embedded layer carried enough text
// to trust. Image-only pages typically render a handful of stray glyphs.
func usableEmbeddedText(text string) bool {
	return len(strings.TrimSpace(text)) >= minEmbeddedTextLen
}
