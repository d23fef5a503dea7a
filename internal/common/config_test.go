package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("TESSDATA_PREFIX", "")
	t.Setenv("OCR_DPI", "")
	t.Setenv("OCR_PSM", "")
	t.Setenv("PDFTOTEXT_TIMEOUT", "")

	cfg := LoadConfig()

	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 350, cfg.Parsing.OCRDPI)
	assert.Equal(t, 6, cfg.Parsing.OCRPSM)
	assert.Equal(t, 20*time.Second, cfg.Parsing.PdftotextTimeout)
	assert.Empty(t, cfg.Parsing.TessdataDir)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/picklist")
	t.Setenv("TESSDATA_PREFIX", "/usr/share/tessdata")
	t.Setenv("OCR_DPI", "600")
	t.Setenv("OCR_PSM", "3")
	t.Setenv("PDFTOTEXT_TIMEOUT", "45s")

	cfg := LoadConfig()

	assert.Equal(t, "postgres://localhost/picklist", cfg.Database.DSN)
	assert.Equal(t, "/usr/share/tessdata", cfg.Parsing.TessdataDir)
	assert.Equal(t, 600, cfg.Parsing.OCRDPI)
	assert.Equal(t, 3, cfg.Parsing.OCRPSM)
	assert.Equal(t, 45*time.Second, cfg.Parsing.PdftotextTimeout)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("OCR_DPI", "not-a-number")
	t.Setenv("PDFTOTEXT_TIMEOUT", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 350, cfg.Parsing.OCRDPI)
	assert.Equal(t, 20*time.Second, cfg.Parsing.PdftotextTimeout)
}
