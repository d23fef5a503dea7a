package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jccirs09/picklist/constants"
	"github.com/jccirs09/picklist/internal/picklist"
)

// Service produces XLSX bytes for a parsed picking list: one sheet of header
// fields, one of items, one of tag details.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const (
	sheetHeader = "Picking List"
	sheetItems  = "Items"
	sheetTags   = "Tag Details"
)

// WorkbookBytes returns an XLSX workbook for the record.
func (s *Service) WorkbookBytes(pl *picklist.PickingList) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	// excelize starts with "Sheet1"; rename it instead of leaving it around.
	if err := f.SetSheetName("Sheet1", sheetHeader); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetItems); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetTags); err != nil {
		return nil, err
	}

	if err := s.writeHeaderSheet(f, pl); err != nil {
		return nil, err
	}
	if err := s.writeItemSheets(f, pl); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Debug("workbook built",
		"order_number", pl.OrderNumber,
		"items", len(pl.Items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeHeaderSheet(f *excelize.File, pl *picklist.PickingList) error {
	rows := [][2]any{
		{"Order Number", pl.OrderNumber},
		{"Print Date/Time", timeVal(pl.PrintDateTime)},
		{"Picking Group", strVal(pl.PickingGroup)},
		{"Buyer", strVal(pl.Buyer)},
		{"Ship Date", timeVal(pl.ShipDate)},
		{"Purchase Order #", strVal(pl.PurchaseOrderNumber)},
		{"Order Date", timeVal(pl.OrderDate)},
		{"Job Name", strVal(pl.JobName)},
		{"Sales Rep", strVal(pl.SalesRep)},
		{"Ship Via", strVal(pl.ShipVia)},
		{"Sold To", partyLine(pl.SoldTo)},
		{"Ship To", partyLine(pl.ShipTo)},
		{"FOB Point", strVal(pl.FOBPoint)},
		{"Route", strVal(pl.Route)},
		{"Terms", strVal(pl.Terms)},
		{"Receiving Hours", strVal(pl.ReceivingHours)},
		{"Call Before", strVal(pl.CallBeforePhone)},
		{"Total Weight (LBS)", floatVal(pl.TotalWeightLbs)},
	}
	for i, kv := range rows {
		if err := f.SetCellValue(sheetHeader, fmt.Sprintf("A%d", i+1), kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetHeader, fmt.Sprintf("B%d", i+1), kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeItemSheets(f *excelize.File, pl *picklist.PickingList) error {
	itemHeaders := []string{
		"Line", "Quantity", "Unit", "Staged", "Item Code",
		"Width (in)", "Length (in)", "Weight (lbs)", "Process", "Description",
	}
	if err := writeRow(f, sheetItems, 1, toAnySlice(itemHeaders)); err != nil {
		return err
	}

	tagHeaders := []string{
		"Item Line", "Tag #", "Heat #", "Mill Ref", "Qty", "Unit",
		"Thickness (in)", "Size", "Location",
	}
	if err := writeRow(f, sheetTags, 1, toAnySlice(tagHeaders)); err != nil {
		return err
	}

	itemRow, tagRow := 2, 2
	for _, item := range pl.Items {
		values := []any{
			item.LineNo, item.Quantity, string(item.QuantityUnit),
			intVal(item.QuantityStaged), item.ItemCode,
			floatVal(item.WidthIn), floatVal(item.LengthIn),
			floatVal(item.WeightLbs), procVal(item.ProcessType),
			strVal(item.Description),
		}
		if err := writeRow(f, sheetItems, itemRow, values); err != nil {
			return err
		}
		itemRow++

		for _, tag := range item.TagDetails {
			values := []any{
				item.LineNo, strVal(tag.TagNo), strVal(tag.HeatNo),
				strVal(tag.MillRef), intVal(tag.Qty), unitVal(tag.QtyUnit),
				floatVal(tag.ThicknessIn), strVal(tag.Size), strVal(tag.Location),
			}
			if err := writeRow(f, sheetTags, tagRow, values); err != nil {
				return err
			}
			tagRow++
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func partyLine(p picklist.Party) string {
	parts := []*string{p.Name, p.AddressLine, p.City, p.Province, p.PostalCode}
	line := ""
	for _, s := range parts {
		if s == nil || *s == "" {
			continue
		}
		if line != "" {
			line += ", "
		}
		line += *s
	}
	return line
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func strVal(s *string) any {
	if s == nil {
		return ""
	}
	return *s
}

func intVal(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func floatVal(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func timeVal(t *time.Time) any {
	if t == nil {
		return ""
	}
	return t.Format("01/02/2006 15:04")
}

func procVal(pt *constants.ProcessType) any {
	if pt == nil {
		return ""
	}
	return string(*pt)
}

func unitVal(u *constants.QuantityUnit) any {
	if u == nil {
		return ""
	}
	return string(*u)
}
