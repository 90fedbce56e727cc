package bom

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// LinkStatus describes the outcome of link resolution for an item.
type LinkStatus string

const (
	LinkOK      LinkStatus = "ok"
	LinkBroken  LinkStatus = "broken"
	LinkMissing LinkStatus = "missing"
)

// statusRank orders items for display: verified links first, dead links
// next, unresolved last.
func statusRank(s LinkStatus) int {
	switch s {
	case LinkOK:
		return 0
	case LinkBroken:
		return 1
	default:
		return 2
	}
}

// Item is a single BOM line. It is created from the language model response
// and enriched in place by the resolution pipeline.
type Item struct {
	Part             string            `json:"part"`
	Qty              float64           `json:"qty"`
	Unit             string            `json:"unit"`
	Spec             string            `json:"spec,omitempty"`
	SuggestedProduct string            `json:"suggested_product,omitempty"`
	Supplier         string            `json:"supplier,omitempty"`
	Link             string            `json:"link,omitempty"`
	UnitPrice        float64           `json:"unit_price"`
	Notes            string            `json:"notes,omitempty"`
	LinkStatus       LinkStatus        `json:"link_status,omitempty"`
	AltLink          string            `json:"alt_link,omitempty"`
	SearchLinks      map[string]string `json:"search_links,omitempty"`
}

// Coerce normalizes model-supplied fields to safe defaults. The model output
// is best-effort structured text; no single malformed field may poison the
// item.
func (it *Item) Coerce() {
	it.Part = strings.TrimSpace(it.Part)
	it.Supplier = strings.TrimSpace(it.Supplier)
	if it.Qty <= 0 || math.IsNaN(it.Qty) || math.IsInf(it.Qty, 0) {
		it.Qty = 1
	}
	if strings.TrimSpace(it.Unit) == "" {
		it.Unit = "pcs"
	}
	if it.UnitPrice < 0 || math.IsNaN(it.UnitPrice) || math.IsInf(it.UnitPrice, 0) {
		it.UnitPrice = 0
	}
}

// ExportLink returns the link that should flow to the spreadsheet: the
// verified link when present, otherwise the first manual search link.
func (it Item) ExportLink() string {
	if it.Link != "" {
		return it.Link
	}
	for _, domain := range SearchLinkOrder {
		if link, ok := it.SearchLinks[domain]; ok {
			return link
		}
	}
	for _, link := range it.SearchLinks {
		return link
	}
	return ""
}

// LineTotal returns qty * unit price as a decimal.
func (it Item) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromFloat(it.Qty))
}

// Subtotal sums line totals across items with decimal arithmetic.
func Subtotal(items []Item) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	f, _ := total.Float64()
	return f
}

// SortByStatus orders items for display (ok < broken < missing) while keeping
// the original order within each group.
func SortByStatus(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return statusRank(items[i].LinkStatus) < statusRank(items[j].LinkStatus)
	})
}

// SearchLinkOrder is the preferred ordering of retailers when picking a
// fallback search link for export.
var SearchLinkOrder = []string{
	"digikey.com",
	"mouser.com",
	"rs-online.com",
	"farnell.com",
	"newark.com",
}
