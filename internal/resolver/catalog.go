package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/raphalinka/bomator/internal/logging"
)

// Offer is the result of a catalog lookup for one query string. A zero
// Offer means the part was not found (or the lookup failed); an Offer with
// an MPN but no link means a matching part exists without a purchasable
// offer.
type Offer struct {
	Link      string  `json:"link,omitempty"`
	Supplier  string  `json:"supplier,omitempty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
	MPN       string  `json:"mpn,omitempty"`
}

// preferredDistributors orders catalog offers by seller before scoring.
var preferredDistributors = []string{
	"Digi-Key", "Mouser", "RS", "Farnell", "Newark",
	"Texas Instruments", "STMicroelectronics", "Microchip",
	"Arrow", "Avnet", "Future Electronics",
}

const partSearchQuery = `
query PartSearch($q: String!, $limit: Int!) {
  supSearch(q: $q, limit: $limit) {
    results {
      part {
        mpn
        manufacturer { name }
        bestOffers(first: 20) {
          edges {
            node {
              company { name homepageUrl }
              sku
              clickUrl
              inventoryLevel
              prices { currency price }
            }
          }
        }
      }
    }
  }
}`

// CatalogResolverConfig configures a CatalogResolver.
type CatalogResolverConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	TokenURL     string
	APIURL       string
	Client       Doer
	Tokens       *TokenCache
	Logger       logging.Logger
}

// CatalogResolver queries a parts-distributor aggregation API for
// exact-match offers. Missing credentials disable it entirely: ResolveBatch
// then returns an empty map without touching the network.
type CatalogResolver struct {
	apiURL  string
	client  Doer
	tokens  *TokenCache
	logger  logging.Logger
	enabled bool
}

// NewCatalogResolver creates a catalog resolver. It never fails; absent
// credentials yield a disabled resolver.
func NewCatalogResolver(cfg CatalogResolverConfig) *CatalogResolver {
	enabled := cfg.ClientID != "" && cfg.ClientSecret != ""
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	tokens := cfg.Tokens
	if tokens == nil && enabled {
		tokens = NewTokenCache(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret, cfg.Scope, WithTokenDoer(client))
	}
	return &CatalogResolver{
		apiURL:  cfg.APIURL,
		client:  client,
		tokens:  tokens,
		logger:  cfg.Logger,
		enabled: enabled,
	}
}

// Enabled reports whether catalog credentials are configured.
func (r *CatalogResolver) Enabled() bool { return r.enabled }

// ResolveBatch looks up every query sequentially and returns one entry per
// query. Queries are serialized deliberately to bound concurrent load on the
// shared bearer token. A per-query failure degrades to an empty entry; a
// token failure degrades to an empty map. Neither aborts the batch.
func (r *CatalogResolver) ResolveBatch(ctx context.Context, queries []string, currency string) map[string]Offer {
	out := make(map[string]Offer, len(queries))
	if !r.enabled || len(queries) == 0 {
		return out
	}

	start := time.Now()
	defer func() { catalogBatchDuration.Observe(time.Since(start).Seconds()) }()

	token, err := r.tokens.Get(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Warn("Catalog token fetch failed - catalog tier skipped")
		}
		return out
	}

	for _, q := range queries {
		offer, err := r.resolveOne(ctx, token, q, currency)
		if err != nil {
			if r.logger != nil {
				r.logger.WithError(err).WithField("query", q).Debug("Catalog query failed")
			}
			catalogQueriesTotal.WithLabelValues("error").Inc()
			out[q] = Offer{}
			continue
		}
		if offer.MPN == "" {
			catalogQueriesTotal.WithLabelValues("miss").Inc()
		} else {
			catalogQueriesTotal.WithLabelValues("hit").Inc()
		}
		out[q] = offer
	}
	return out
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type partSearchResponse struct {
	Data struct {
		SupSearch struct {
			Results []struct {
				Part catalogPart `json:"part"`
			} `json:"results"`
		} `json:"supSearch"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type catalogPart struct {
	MPN          string `json:"mpn"`
	Manufacturer struct {
		Name string `json:"name"`
	} `json:"manufacturer"`
	BestOffers struct {
		Edges []struct {
			Node catalogOffer `json:"node"`
		} `json:"edges"`
	} `json:"bestOffers"`
}

type catalogOffer struct {
	Company struct {
		Name        string `json:"name"`
		HomepageURL string `json:"homepageUrl"`
	} `json:"company"`
	SKU            string         `json:"sku"`
	ClickURL       string         `json:"clickUrl"`
	InventoryLevel int            `json:"inventoryLevel"`
	Prices         []catalogPrice `json:"prices"`
}

type catalogPrice struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

func (r *CatalogResolver) resolveOne(ctx context.Context, token, query, currency string) (Offer, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query: partSearchQuery,
		Variables: map[string]any{
			"q":     query,
			"limit": 3,
		},
	})
	if err != nil {
		return Offer{}, fmt.Errorf("catalog: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiURL, bytes.NewReader(payload))
	if err != nil {
		return Offer{}, fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		return Offer{}, fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Offer{}, fmt.Errorf("catalog: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded partSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Offer{}, fmt.Errorf("catalog: decode response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return Offer{}, fmt.Errorf("catalog: api error: %s", decoded.Errors[0].Message)
	}

	results := decoded.Data.SupSearch.Results
	if len(results) == 0 {
		// Explicit "not found", distinguishable from an error by the caller
		// only through the metrics; both degrade to an empty offer.
		return Offer{}, nil
	}

	// The first returned part is canonical.
	part := results[0].Part
	offers := make([]catalogOffer, 0, len(part.BestOffers.Edges))
	for _, edge := range part.BestOffers.Edges {
		offers = append(offers, edge.Node)
	}

	best := pickBestOffer(offers, currency)
	if best == nil || best.ClickURL == "" {
		// Partial success: a real part without a purchasable offer.
		return Offer{MPN: part.MPN}, nil
	}

	return Offer{
		Link:      best.ClickURL,
		Supplier:  best.Company.Name,
		UnitPrice: pickPrice(best.Prices, currency),
		MPN:       part.MPN,
	}, nil
}

// pickBestOffer ranks offers by preferred distributor first, then by a
// weighted score of currency match, price presence, click-through link
// presence and capped inventory.
func pickBestOffer(offers []catalogOffer, currency string) *catalogOffer {
	if len(offers) == 0 {
		return nil
	}
	ranked := make([]catalogOffer, len(offers))
	copy(ranked, offers)

	sort.SliceStable(ranked, func(i, j int) bool {
		return preferredRank(ranked[i].Company.Name) < preferredRank(ranked[j].Company.Name)
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return offerScore(ranked[i], currency) > offerScore(ranked[j], currency)
	})
	return &ranked[0]
}

func preferredRank(company string) int {
	for i, name := range preferredDistributors {
		if strings.Contains(company, name) {
			return i
		}
	}
	return len(preferredDistributors)
}

func offerScore(o catalogOffer, currency string) float64 {
	wanted := strings.ToUpper(currency)
	currencyHit := 0.0
	for _, p := range o.Prices {
		if strings.ToUpper(p.Currency) == wanted {
			currencyHit = 1
			break
		}
	}
	hasPrice := 0.0
	if len(o.Prices) > 0 {
		hasPrice = 1
	}
	hasClick := 0.0
	if o.ClickURL != "" {
		hasClick = 1
	}
	inv := o.InventoryLevel
	if inv < 0 {
		inv = 0
	}
	if inv > 100 {
		inv = 100
	}
	return currencyHit*100 + hasPrice*10 + hasClick*5 + float64(inv)/100
}

// pickPrice prefers the entry matching the requested currency, else the
// first listed price. Returns 0 when the offer carries no prices.
func pickPrice(prices []catalogPrice, currency string) float64 {
	if len(prices) == 0 {
		return 0
	}
	wanted := strings.ToUpper(currency)
	for _, p := range prices {
		if strings.ToUpper(p.Currency) == wanted {
			return p.Price
		}
	}
	return prices[0].Price
}
