package picklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jccirs09/picklist/constants"
)

func TestScanItemsSingleItem(t *testing.T) {
	lines := []string{
		`1 1990 LBS ____ PP2448IO/C 15.875" 1990`,
		`24 GA(.0245) X48" DB IRON ORE/CHARCOAL`,
		`PG 1 OF 2`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, 1, item.LineNo)
	assert.Equal(t, 1990, item.Quantity)
	assert.Equal(t, constants.UnitLBS, item.QuantityUnit)
	assert.Nil(t, item.QuantityStaged)
	assert.Equal(t, "PP2448IO/C", item.ItemCode)
	require.NotNil(t, item.WidthIn)
	assert.Equal(t, 15.875, *item.WidthIn)
	assert.Nil(t, item.LengthIn)
	require.NotNil(t, item.WeightLbs)
	assert.Equal(t, 1990.0, *item.WeightLbs)
	require.NotNil(t, item.Description)
	assert.Contains(t, *item.Description, `24 GA(.0245) X48" DB IRON ORE/CHARCOAL`)
}

func TestScanItemsThousandsSeparators(t *testing.T) {
	lines := []string{
		`1 1,990 LBS 1,200 PP2448IO/C 15.875" 48" 1,990.00`,
		`PG 1 OF 1`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, 1990, item.Quantity)
	require.NotNil(t, item.QuantityStaged)
	assert.Equal(t, 1200, *item.QuantityStaged)
	require.NotNil(t, item.LengthIn)
	assert.Equal(t, 48.0, *item.LengthIn)
	require.NotNil(t, item.WeightLbs)
	assert.Equal(t, 1990.0, *item.WeightLbs)
}

func TestScanItemsExplicitProcessMarker(t *testing.T) {
	lines := []string{
		`2 10 PCS ____ HR-PLATE-1 48" 96" 2,400`,
		`CTL`,
		`HOT ROLLED PLATE`,
		`PG 1 OF 1`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].ProcessType)
	assert.Equal(t, constants.ProcessCTL, *items[0].ProcessType)
}

func TestScanItemsProcessInferredFromDescription(t *testing.T) {
	lines := []string{
		`1 12 PCS ____ GALV-0245 48" 120" 1,530`,
		`24 GA GALVANIZED SHEET CUT TO SIZE`,
		`PG 1 OF 1`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].ProcessType)
	assert.Equal(t, constants.ProcessSheetStock, *items[0].ProcessType)
}

func TestScanItemsNoProcessKeyword(t *testing.T) {
	lines := []string{
		`1 12 PCS ____ GALV-0245 48" 120" 1,530`,
		`24 GA GALVANIZED IRON ORE`,
		`PG 1 OF 1`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ProcessType)
}

func TestScanItemsTagTable(t *testing.T) {
	lines := []string{
		`1 1990 LBS ____ PP2448IO/C 15.875" 1990`,
		`24 GA DB IRON ORE`,
		`TAG # HEAT # MILL REF QTY THK SIZE LOC`,
		`101 H12345 M-778 1,990 LBS 0.0245" 48" X 96" A-12`,
		`scrap note that is not a row`,
		`102 H12346 M-779 500 PCS 0.030" 60" X 120" B-03`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)

	tags := items[0].TagDetails
	require.Len(t, tags, 2)

	first := tags[0]
	require.NotNil(t, first.TagNo)
	assert.Equal(t, "101", *first.TagNo)
	require.NotNil(t, first.HeatNo)
	assert.Equal(t, "H12345", *first.HeatNo)
	require.NotNil(t, first.MillRef)
	assert.Equal(t, "M-778", *first.MillRef)
	require.NotNil(t, first.Qty)
	assert.Equal(t, 1990, *first.Qty)
	require.NotNil(t, first.QtyUnit)
	assert.Equal(t, constants.UnitLBS, *first.QtyUnit)
	require.NotNil(t, first.ThicknessIn)
	assert.Equal(t, 0.0245, *first.ThicknessIn)
	require.NotNil(t, first.Size)
	assert.Equal(t, `48"X96"`, *first.Size)
	require.NotNil(t, first.Location)
	assert.Equal(t, "A-12", *first.Location)
}

func TestScanItemsBlankLineClosesTagTable(t *testing.T) {
	lines := []string{
		`1 1990 LBS ____ PP2448IO/C 15.875" 1990`,
		`24 GA DB IRON ORE`,
		`TAG # HEAT # MILL REF QTY THK SIZE LOC`,
		`101 H12345 M-778 1,990 LBS 0.0245" 48" X 96" A-12`,
		``,
		`2 500 PCS ____ GALV-0245 48" 1,530`,
		`GALVANIZED COIL`,
		`PG 1 OF 1`,
	}

	items := scanItems(lines)
	require.Len(t, items, 2)
	assert.Len(t, items[0].TagDetails, 1)
	assert.Equal(t, 2, items[1].LineNo)
	assert.Equal(t, "GALV-0245", items[1].ItemCode)
}

func TestScanItemsBackToBackHeaders(t *testing.T) {
	lines := []string{
		`1 1990 LBS ____ PP2448IO/C 15.875" 1990`,
		`SHEET STOCK ITEM ONE`,
		`2 500 PCS 250 GALV-0245 48" 1,530`,
		`ITEM TWO TEXT`,
		`SOURCE: WAREHOUSE 4`,
	}

	items := scanItems(lines)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "SHEET STOCK ITEM ONE", *items[0].Description)
	require.NotNil(t, items[1].QuantityStaged)
	assert.Equal(t, 250, *items[1].QuantityStaged)
}

func TestScanItemsSkipsTagMarkerAndOtherReservations(t *testing.T) {
	lines := []string{
		`1 1990 LBS ____ PP2448IO/C 15.875" 1990`,
		`TAG: 44210`,
		`Other Reservations:`,
		`SO 441200 1,000 LBS`,
		``,
		`DOUBLE BONDERIZED IRON ORE`,
		`PG 1 OF 1`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "DOUBLE BONDERIZED IRON ORE", *items[0].Description)
}

func TestScanItemsEndOfInputCommitsOpenItem(t *testing.T) {
	lines := []string{
		`7 25 PCS ____ AL-5052 36" 48" 312`,
		`ALUMINUM BLANKS`,
	}

	items := scanItems(lines)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].LineNo)
}
