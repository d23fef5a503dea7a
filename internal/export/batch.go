package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jccirs09/picklist/internal/picklist"
)

const sheetBatch = "Picking Lists"

// BatchWorkbookBytes returns a single XLSX summarizing several records: one
// row per picking list plus a combined item sheet keyed by order number.
func (s *Service) BatchWorkbookBytes(lists []*picklist.PickingList) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetBatch); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetItems); err != nil {
		return nil, err
	}

	summaryHeaders := []string{
		"Order Number", "Buyer", "Ship Date", "Ship Via",
		"Sold To", "Ship To", "Items", "Total Weight (LBS)",
	}
	if err := writeRow(f, sheetBatch, 1, toAnySlice(summaryHeaders)); err != nil {
		return nil, err
	}

	itemHeaders := []string{
		"Order Number", "Line", "Quantity", "Unit", "Item Code",
		"Width (in)", "Length (in)", "Weight (lbs)", "Process",
	}
	if err := writeRow(f, sheetItems, 1, toAnySlice(itemHeaders)); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, pl := range lists {
		values := []any{
			pl.OrderNumber, strVal(pl.Buyer), timeVal(pl.ShipDate),
			strVal(pl.ShipVia), partyLine(pl.SoldTo), partyLine(pl.ShipTo),
			len(pl.Items), floatVal(pl.TotalWeightLbs),
		}
		if err := writeRow(f, sheetBatch, i+2, values); err != nil {
			return nil, err
		}

		for _, item := range pl.Items {
			values := []any{
				pl.OrderNumber, item.LineNo, item.Quantity,
				string(item.QuantityUnit), item.ItemCode,
				floatVal(item.WidthIn), floatVal(item.LengthIn),
				floatVal(item.WeightLbs), procVal(item.ProcessType),
			}
			if err := writeRow(f, sheetItems, itemRow, values); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Debug("batch workbook built",
		"records", len(lists),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
