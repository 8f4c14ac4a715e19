package httpapi

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"dorry-backend/internal/domain"
)

// BOQExportHeader is the line-item sheet header.
var BOQExportHeader = []string{
	"Category",
	"Name",
	"Description",
	"Unit",
	"Quantity",
	"Unit Price (EGP)",
	"Total Price (EGP)",
}

// BuildBOQWorkbook renders a bill of quantities as an .xlsx workbook:
// one row per line item, followed by per-category subtotals and the
// grand total.
func BuildBOQWorkbook(projectName string, boq *domain.BOQ, categories map[string]float64) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here: WriteTo needs the file open.

	sheetName := "Bill of Quantities"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	setCell := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		return f.SetCellValue(sheetName, cell, value)
	}

	// Title and header rows.
	if err := setCell(1, 1, fmt.Sprintf("Bill of Quantities - %s", projectName)); err != nil {
		f.Close()
		return nil, err
	}
	for col, header := range BOQExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{24, 22, 42, 10, 14, 18, 18}
	for col, width := range columnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err == nil {
			_ = f.SetColWidth(sheetName, name, name, width)
		}
	}

	row := 3
	for _, item := range boq.Items {
		values := []any{item.Category, item.Name, item.Description, item.Unit, item.Quantity, item.UnitPrice, item.TotalPrice}
		for col, v := range values {
			if err := setCell(col+1, row, v); err != nil {
				f.Close()
				return nil, err
			}
		}
		row++
	}

	// Category subtotals in a stable order.
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	row++ // blank separator row
	for _, name := range names {
		if err := setCell(1, row, name+" Subtotal"); err != nil {
			f.Close()
			return nil, err
		}
		if err := setCell(7, row, categories[name]); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	if err := setCell(1, row, "Total"); err != nil {
		f.Close()
		return nil, err
	}
	if err := setCell(7, row, boq.TotalCost); err != nil {
		f.Close()
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
