package extract

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPdftotextTimeout bounds the external dump subprocess.
const DefaultPdftotextTimeout = 20 * time.Second

// PdftotextStrategy shells out to poppler's layout-preserving pdftotext
// against a temporary copy of the input bytes. Temporary files are removed
// on every exit path, including timeout.
type PdftotextStrategy struct {
	// PopplerPath is an optional directory hint; empty means resolve
	// pdftotext from PATH.
	PopplerPath string
	Timeout     time.Duration

	runner Runner
}

func NewPdftotextStrategy(popplerPath string, timeout time.Duration) *PdftotextStrategy {
	if timeout <= 0 {
		timeout = DefaultPdftotextTimeout
	}
	return &PdftotextStrategy{
		PopplerPath: popplerPath,
		Timeout:     timeout,
		runner:      execRunner{},
	}
}

func (*PdftotextStrategy) Name() string { return "pdftotext" }

func (s *PdftotextStrategy) CanHandle() bool {
	return s.resolveExe() != ""
}

func (s *PdftotextStrategy) TryExtract(ctx context.Context, pdf []byte) (string, error) {
	exe := s.resolveExe()
	if exe == "" {
		return "", nil
	}

	tmpPdf, err := os.CreateTemp("", "picklist-*.pdf")
	if err != nil {
		return "", err
	}
	tmpTxt := strings.TrimSuffix(tmpPdf.Name(), ".pdf") + ".txt"
	defer func() {
		_ = os.Remove(tmpPdf.Name())
		_ = os.Remove(tmpTxt)
	}()

	if _, err := tmpPdf.Write(pdf); err != nil {
		tmpPdf.Close()
		return "", err
	}
	if err := tmpPdf.Close(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// pdftotext -layout -nopgbrk <in.pdf> <out.txt>
	if _, _, err := s.runner.Run(ctx, exe, "-layout", "-nopgbrk", tmpPdf.Name(), tmpTxt); err != nil {
		return "", err
	}

	out, err := os.ReadFile(tmpTxt)
	if err != nil {
		// The tool exited zero but wrote nothing; not usable, not fatal.
		return "", nil
	}
	return string(out), nil
}

func (s *PdftotextStrategy) resolveExe() string {
	if s.PopplerPath != "" {
		candidate := filepath.Join(s.PopplerPath, "pdftotext")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if path, err := exec.LookPath("pdftotext"); err == nil {
		return path
	}
	return ""
}
