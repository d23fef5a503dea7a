package extract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

const (
	// DefaultOCRDPI is the rasterization resolution for scanned pages.
	DefaultOCRDPI = 350
	// DefaultOCRPSM is tesseract's "single uniform block of text" mode,
	// which suits the picking list's column layout.
	DefaultOCRPSM = 6

	ocrLanguage = "eng"
)

// OCRStrategy rasterizes each page with pdftoppm, cleans the raster up
// (grayscale, deskew, contrast stretch, binarization), and feeds it to
// tesseract. The slowest strategy; it only runs when a trained-data
// directory is configured.
type OCRStrategy struct {
	// TessdataDir enables the strategy; it must exist on disk.
	TessdataDir string
	// PopplerPath is an optional directory hint for pdftoppm.
	PopplerPath string
	DPI         int
	PSM         int

	runner Runner
}

func NewOCRStrategy(tessdataDir, popplerPath string, dpi, psm int) *OCRStrategy {
	if dpi <= 0 {
		dpi = DefaultOCRDPI
	}
	if psm <= 0 {
		psm = DefaultOCRPSM
	}
	return &OCRStrategy{
		TessdataDir: tessdataDir,
		PopplerPath: popplerPath,
		DPI:         dpi,
		PSM:         psm,
		runner:      execRunner{},
	}
}

func (*OCRStrategy) Name() string { return "ocr" }

func (s *OCRStrategy) CanHandle() bool {
	if s.TessdataDir == "" {
		return false
	}
	st, err := os.Stat(s.TessdataDir)
	return err == nil && st.IsDir()
}

func (s *OCRStrategy) TryExtract(ctx context.Context, pdf []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "picklist-ocr-*")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()

	tmpPdf := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(tmpPdf, pdf, 0o600); err != nil {
		return "", err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	if _, errb, err := s.runner.Run(ctx, s.resolvePdftoppm(), "-r", fmt.Sprintf("%d", s.DPI), "-png", tmpPdf, prefix); err != nil {
		return "", fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// pdftoppm writes prefix-1.png, prefix-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no images")
	}

	client := gosseract.NewClient()
	defer client.Close()
	client.TessdataPrefix = s.TessdataDir
	if err := client.SetLanguage(ocrLanguage); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(s.PSM)); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}

	var sb strings.Builder
	for _, imgPath := range matches {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		txt, err := s.recognizePage(client, imgPath)
		if err != nil {
			// One unreadable page costs only its own text.
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(txt)
	}
	return sb.String(), nil
}

func (s *OCRStrategy) recognizePage(client *gosseract.Client, imgPath string) (string, error) {
	raw, err := os.ReadFile(imgPath)
	if err != nil {
		return "", err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	cleaned := Preprocess(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, cleaned); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", err
	}
	return client.Text()
}

func (s *OCRStrategy) resolvePdftoppm() string {
	if s.PopplerPath != "" {
		candidate := filepath.Join(s.PopplerPath, "pdftoppm")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "pdftoppm"
}
