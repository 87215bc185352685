// Package report renders worksheets and the calculation journal as xlsx.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vanilla-bot/internal/calculator"
	"vanilla-bot/internal/storage"

	"github.com/xuri/excelize/v2"
)

const (
	SheetWorksheet = "Worksheet"
	SheetCosts     = "Cost Breakdown"
	SheetJournal   = "Calculations"
)

// WriteWorksheet writes res as a workbook with the main worksheet and, for
// the extended variant, the cost breakdown. Values are rounded to cents.
func WriteWorksheet(w io.Writer, res calculator.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWorksheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRows(f, SheetWorksheet, res.Worksheet()); err != nil {
		return err
	}
	f.SetCellValue(SheetWorksheet, "D1", "Variant")
	f.SetCellValue(SheetWorksheet, "E1", res.Input.Variant.Title())

	if breakdown := res.CostBreakdown(); breakdown != nil {
		if _, err := f.NewSheet(SheetCosts); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := writeRows(f, SheetCosts, breakdown); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WorksheetBytes is WriteWorksheet into memory.
func WorksheetBytes(res calculator.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWorksheet(&buf, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows []calculator.Row) error {
	f.SetCellValue(sheet, "A1", "Parameter")
	f.SetCellValue(sheet, "B1", "Value")

	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.Rounded())
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	f.SetCellStyle(sheet, "A1", "B1", style)
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 16)
	return nil
}

var journalHeaders = []string{
	"ID", "Chat ID", "Variant", "Beans", "Folds", "Base Price (USD/oz)",
	"USD→BRL", "EUR→BRL", "EUR→USD", "Extract Price (USD)",
	"Final Balance (USD)", "Created At",
}

// WriteJournal writes calcs as one table row per calculation.
func WriteJournal(w io.Writer, calcs []storage.Calculation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetJournal); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range journalHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(SheetJournal, cell, header)
	}

	for row, c := range calcs {
		data := []interface{}{
			c.ID,
			c.ChatID,
			c.Variant,
			c.BeanCount,
			c.Folds,
			optional(c.BasePrice),
			c.USDToBRL,
			optional(c.EURToBRL),
			optional(c.EURToUSD),
			calculator.Round2(c.PriceUSD),
			optional(c.FinalBalanceUSD),
			c.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(SheetJournal, cell, value)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveJournal writes the journal to dir/name.xlsx and returns the path.
func SaveJournal(dir, name string, calcs []storage.Calculation) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, name+".xlsx")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	if err := WriteJournal(file, calcs); err != nil {
		return "", err
	}
	return path, nil
}

// SaveWorksheet writes res to path.
func SaveWorksheet(path string, res calculator.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	return WriteWorksheet(file, res)
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return calculator.Round2(*v)
}
