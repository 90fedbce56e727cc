package resolver

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/raphalinka/bomator/internal/bom"
	"github.com/raphalinka/bomator/internal/logging"
	"github.com/raphalinka/bomator/internal/search"
)

// verifyConcurrency bounds parallel link verification. Probes are read-only
// and idempotent, so running them concurrently across the batch is safe.
const verifyConcurrency = 8

// OrchestratorConfig configures an Orchestrator.
type OrchestratorConfig struct {
	Catalog              *CatalogResolver
	Search               search.Provider
	Prober               *Prober
	Prices               *PriceScraper
	EnableSearchFallback bool
	Logger               logging.Logger
}

// Orchestrator runs the per-item resolution pipeline: catalog tier first,
// optional web-search fallback second, manual search links always. Model
// supplied links are never trusted.
type Orchestrator struct {
	catalog              *CatalogResolver
	search               search.Provider
	prober               *Prober
	prices               *PriceScraper
	enableSearchFallback bool
	logger               logging.Logger
}

// NewOrchestrator creates a resolution orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	return &Orchestrator{
		catalog:              cfg.Catalog,
		search:               cfg.Search,
		prober:               cfg.Prober,
		prices:               cfg.Prices,
		enableSearchFallback: cfg.EnableSearchFallback,
		logger:               cfg.Logger,
	}
}

// ItemQuery derives the catalog/search query for one item: the suggested
// product string when the model provided one, else the part name with its
// specification.
func ItemQuery(it bom.Item) string {
	if sp := strings.TrimSpace(it.SuggestedProduct); sp != "" {
		return sp
	}
	part := strings.TrimSpace(it.Part)
	if spec := strings.TrimSpace(it.Spec); spec != "" {
		return part + " " + spec
	}
	return part
}

// Annotate resolves every item in place and returns the slice. Each item
// ends in exactly one terminal state (ok, broken, missing); a failure for
// one item never aborts its siblings.
func (o *Orchestrator) Annotate(ctx context.Context, items []bom.Item, currency string) []bom.Item {
	queries := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		items[i].Coerce()
		q := ItemQuery(items[i])
		if _, dup := seen[q]; !dup && q != "" {
			seen[q] = struct{}{}
			queries = append(queries, q)
		}
	}

	offers := map[string]Offer{}
	if o.catalog != nil {
		offers = o.catalog.ResolveBatch(ctx, queries, currency)
	}

	for i := range items {
		it := &items[i]
		q := ItemQuery(*it)

		// Model-supplied links are never trusted in the catalog-first
		// design; resolution starts from a clean slate.
		it.Link = ""
		it.LinkStatus = ""

		offer := offers[q]
		if offer.MPN != "" {
			it.SuggestedProduct = offer.MPN
		}
		if offer.Link != "" {
			it.Link = offer.Link
			it.LinkStatus = bom.LinkOK
			if offer.Supplier != "" {
				it.Supplier = offer.Supplier
			}
			if offer.UnitPrice > 0 {
				it.UnitPrice = offer.UnitPrice
			}
			o.maybeScrapePrice(ctx, it)
			resolutionsTotal.WithLabelValues(string(bom.LinkOK), "catalog").Inc()
			continue
		}

		// Fallthrough: the manual search escape hatch never fails.
		it.SearchLinks = SearchLinks(q)

		if o.enableSearchFallback && o.search != nil && o.prober != nil {
			if link := o.searchFallback(ctx, *it, q); link != "" {
				it.Link = link
				it.LinkStatus = bom.LinkOK
				o.maybeScrapePrice(ctx, it)
				resolutionsTotal.WithLabelValues(string(bom.LinkOK), "search").Inc()
				continue
			}
		}

		it.LinkStatus = bom.LinkMissing
		resolutionsTotal.WithLabelValues(string(bom.LinkMissing), "none").Inc()
	}

	return items
}

// searchFallback walks the preferred retailer domains with an MPN-first
// query variant, then the full description, accepting the first candidate
// that survives verification.
func (o *Orchestrator) searchFallback(ctx context.Context, it bom.Item, query string) string {
	variants := make([]string, 0, 2)
	if mpn := ExtractMPN(query); mpn != "" && mpn != strings.TrimSpace(it.Part) {
		variants = append(variants, strings.TrimSpace(mpn+" "+it.Part))
	}
	variants = append(variants, it.Part)

	for _, domain := range PreferredDomains(it.Supplier) {
		for _, variant := range variants {
			if strings.TrimSpace(variant) == "" {
				continue
			}
			results, err := o.search.Search(ctx, variant, search.SearchOptions{Limit: 1, Site: domain})
			if err != nil || len(results) == 0 {
				continue
			}
			candidate := normalizeURL(results[0].URL)
			if candidate == "" {
				continue
			}
			if o.prober.ProbeOrLooksLikeProduct(ctx, candidate) {
				searchFallbackTotal.WithLabelValues("hit").Inc()
				return candidate
			}
		}
	}
	searchFallbackTotal.WithLabelValues("miss").Inc()
	return ""
}

func (o *Orchestrator) maybeScrapePrice(ctx context.Context, it *bom.Item) {
	if o.prices == nil || it.UnitPrice > 0 || it.Link == "" {
		return
	}
	if price, ok := o.prices.FetchUnitPrice(ctx, it.Link); ok && price > 0 {
		it.UnitPrice = price
	}
}

// VerifyModelLinks probes model-supplied links across the batch with
// bounded parallelism, marking dead ones broken. This is the direct-URL
// verification path; the default pipeline discards model links instead.
func (o *Orchestrator) VerifyModelLinks(ctx context.Context, items []bom.Item) []bom.Item {
	if o.prober == nil {
		return items
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)
	for i := range items {
		it := &items[i]
		if strings.TrimSpace(it.Link) == "" {
			continue
		}
		g.Go(func() error {
			if o.prober.ProbeOrLooksLikeProduct(ctx, it.Link) {
				it.LinkStatus = bom.LinkOK
			} else {
				it.LinkStatus = bom.LinkBroken
				resolutionsTotal.WithLabelValues(string(bom.LinkBroken), "verify").Inc()
			}
			return nil
		})
	}
	_ = g.Wait()
	return items
}
