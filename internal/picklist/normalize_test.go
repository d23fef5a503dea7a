package picklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSplitsOnSectionAnchors(t *testing.T) {
	lines := Normalize("PICKING GROUP A1 BUYER JANE DOE SHIP VIA OUR TRUCK")

	assert.Equal(t, []string{
		"PICKING GROUP A1",
		"BUYER JANE DOE",
		"SHIP VIA OUR TRUCK",
	}, lines)
}

func TestNormalizeRemovesDigitGaps(t *testing.T) {
	lines := Normalize("TOTAL WT 3 520 LBS")
	assert.Equal(t, []string{"TOTAL WT 3520 LBS"}, lines)

	// Repeated gaps collapse fully, not just pairwise.
	lines = Normalize("TOTAL WT 1 9 9 0 LBS")
	assert.Equal(t, []string{"TOTAL WT 1990 LBS"}, lines)
}

func TestNormalizeDropsCruftAndDividers(t *testing.T) {
	raw := "SHIP VIA OUR TRUCK\n" +
		"MAX SKID WEIGHT 4000\n" +
		"- DO NOT STACK\n" +
		"*********\n" +
		"PG 1 OF 2\n" +
		"RECEIVING HOURS: 7AM-3PM\n" +
		"USABLE LINE"

	lines := Normalize(raw)
	assert.Equal(t, []string{"SHIP VIA OUR TRUCK", "USABLE LINE"}, lines)
}

func TestNormalizeUnifiesQuotesAndLineEndings(t *testing.T) {
	lines := Normalize("LEFT “QUOTED” RIGHT\r\nSECOND\rTHIRD")
	assert.Equal(t, []string{`LEFT "QUOTED" RIGHT`, "SECOND", "THIRD"}, lines)
}

func TestNormalizeCollapsesHorizontalWhitespace(t *testing.T) {
	lines := Normalize("SHIP VIA  OUR \t TRUCK")
	assert.Equal(t, []string{"SHIP VIA OUR TRUCK"}, lines)
}
