package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/raphalinka/bomator/internal/bom"
)

const sheetName = "BOM"

// Document is a priced BOM ready for spreadsheet export.
type Document struct {
	Prompt   string
	Currency string
	Items    []bom.Item
	Subtotal float64
}

// WriteXLSX serializes the document as an xlsx workbook: a prompt header,
// column headers, one row per item with its line total, and a subtotal row.
// The link column prefers the verified link and falls back to the manual
// search link.
func WriteXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export xlsx: rename sheet: %w", err)
	}

	setRow := func(row int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheetName, cell, &values)
	}

	if err := setRow(1, []any{"BOM generated from prompt:", doc.Prompt}); err != nil {
		return fmt.Errorf("export xlsx: prompt row: %w", err)
	}

	headers := []any{
		"Part", "Specification", "Qty", "Unit",
		fmt.Sprintf("Unit Price (%s)", doc.Currency),
		fmt.Sprintf("Line Total (%s)", doc.Currency),
		"Supplier", "Link",
	}
	if err := setRow(3, headers); err != nil {
		return fmt.Errorf("export xlsx: header row: %w", err)
	}

	row := 4
	for _, it := range doc.Items {
		lineTotal, _ := it.LineTotal().Float64()
		values := []any{
			it.Part, it.Spec, it.Qty, it.Unit,
			it.UnitPrice, lineTotal,
			it.Supplier, it.ExportLink(),
		}
		if err := setRow(row, values); err != nil {
			return fmt.Errorf("export xlsx: item row %d: %w", row, err)
		}
		row++
	}

	row++
	if err := setRow(row, []any{"Subtotal", "", "", "", "", doc.Subtotal, "", ""}); err != nil {
		return fmt.Errorf("export xlsx: subtotal row: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export xlsx: write workbook: %w", err)
	}
	return nil
}
