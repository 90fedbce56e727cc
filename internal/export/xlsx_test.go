package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/raphalinka/bomator/internal/bom"
)

func TestWriteXLSX(t *testing.T) {
	items := []bom.Item{
		{Part: "LM317T", Spec: "TO-220", Qty: 2, Unit: "pcs", UnitPrice: 0.59,
			Supplier: "Mouser Electronics", Link: "https://example.com/mouser/lm317t", LinkStatus: bom.LinkOK},
		{Part: "Flux capacitor", Qty: 1, Unit: "pcs", LinkStatus: bom.LinkMissing,
			SearchLinks: map[string]string{"digikey.com": "https://www.digikey.com/en/products/result?keywords=flux"}},
	}

	var buf bytes.Buffer
	err := WriteXLSX(&buf, Document{
		Prompt:   "adjustable power supply",
		Currency: "EUR",
		Items:    items,
		Subtotal: bom.Subtotal(items),
	})
	if err != nil {
		t.Fatalf("WriteXLSX() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheetName, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", ref, err)
		}
		return v
	}

	if got := cell("B1"); got != "adjustable power supply" {
		t.Errorf("B1 = %q, want the prompt", got)
	}
	if got := cell("E3"); got != "Unit Price (EUR)" {
		t.Errorf("E3 = %q", got)
	}
	if got := cell("A4"); got != "LM317T" {
		t.Errorf("A4 = %q", got)
	}
	if got := cell("F4"); got != "1.18" {
		t.Errorf("F4 = %q, want the 2 x 0.59 line total", got)
	}
	if got := cell("H4"); got != "https://example.com/mouser/lm317t" {
		t.Errorf("H4 = %q, want the verified link", got)
	}
	if got := cell("H5"); got != "https://www.digikey.com/en/products/result?keywords=flux" {
		t.Errorf("H5 = %q, want the manual search fallback link", got)
	}
	if got := cell("A7"); got != "Subtotal" {
		t.Errorf("A7 = %q", got)
	}
	if got := cell("F7"); got != "1.18" {
		t.Errorf("F7 = %q, want the subtotal", got)
	}
}
