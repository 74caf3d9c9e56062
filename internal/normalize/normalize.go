// Package normalize filters, validates, and deduplicates raw search provider
// records into listings safe to embed in prompts and responses.
package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/karimhaddad/estate-scout/internal/metrics"
	"github.com/karimhaddad/estate-scout/internal/search"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// Provider error pages come back as regular search hits; these markers
// identify them.
var notFoundMarkers = []string{
	"Oops",
	"can't seem to find",
}

// assetPatterns match URLs that point at static assets rather than listings.
var assetPatterns = []string{
	".png",
	".jpg",
	".jpeg",
	".gif",
	".svg",
	".webp",
	"/logo/",
	"/assets/",
}

// priceRe captures an AED amount, optionally expressed in millions, from
// free-text descriptions, e.g. "AED 1,250,000" or "AED 2.5M".
var priceRe = regexp.MustCompile(`(?i)AED\s*([\d,]+(?:\.\d+)?)\s*(m|million)?`)

// Normalizer turns raw provider records into validated listings.
type Normalizer struct {
	blockedHosts []string
}

// New creates a Normalizer. blockedHosts are substrings of URLs that are
// always rejected, e.g. aggregator sites known to return junk.
func New(blockedHosts []string) *Normalizer {
	return &Normalizer{blockedHosts: blockedHosts}
}

// Normalize filters raw results against the query and returns at most the
// query's effective limit of listings. A provider failure is an error at the
// call site; zero survivors here is a valid empty result, never an error.
func (n *Normalizer) Normalize(
	results []search.Result,
	q domain.ListingQuery,
) []domain.NormalizedListing {
	listings := make([]domain.NormalizedListing, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	limit := q.EffectiveLimit()
	ceiling := q.MaxPriceAED()

	for _, r := range results {
		if len(listings) >= limit {
			break
		}

		if !validTitle(r.Title) {
			drop("bad_title")
			continue
		}
		if !validDescription(r.Description) {
			drop("bad_description")
			continue
		}

		u, ok := normalizeURL(r.URL)
		if !ok {
			drop("invalid_url")
			continue
		}
		if n.blockedURL(u) {
			drop("blocked_url")
			continue
		}
		if _, dup := seen[u]; dup {
			drop("duplicate")
			continue
		}

		listing := domain.NormalizedListing{
			URL:         u,
			Description: strings.TrimSpace(r.Description),
		}
		if price, found := parsePrice(r.Description); found {
			if price > ceiling {
				drop("over_budget")
				continue
			}
			listing.Price = &price
		}

		seen[u] = struct{}{}
		listings = append(listings, listing)
	}

	return listings
}

func drop(reason string) {
	metrics.ListingsDroppedTotal.WithLabelValues(reason).Inc()
}

func validTitle(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	for _, marker := range notFoundMarkers {
		if strings.Contains(title, marker) {
			return false
		}
	}
	return true
}

func validDescription(desc string) bool {
	if strings.TrimSpace(desc) == "" {
		return false
	}
	return !strings.Contains(desc, "can't seem to find")
}

// normalizeURL trims the raw URL, prepends https:// when the scheme is
// missing, and rejects anything that still fails to parse.
func normalizeURL(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "http") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	return s, true
}

func (n *Normalizer) blockedURL(u string) bool {
	for _, host := range n.blockedHosts {
		if strings.Contains(u, host) {
			return true
		}
	}
	for _, pattern := range assetPatterns {
		if strings.Contains(u, pattern) {
			return true
		}
	}
	return false
}

// parsePrice extracts an AED price from free text. An "M"/"Million" suffix
// scales the figure accordingly.
func parsePrice(desc string) (float64, bool) {
	m := priceRe.FindStringSubmatch(desc)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		v *= 1_000_000
	}
	return v, true
}

// FilterArticles keeps only search hits with both a URL and a description,
// preserving order. Used by the trend workflow where articles, not listings,
// come back from the provider.
func FilterArticles(results []search.Result) []domain.Article {
	articles := make([]domain.Article, 0, len(results))
	for _, r := range results {
		if strings.TrimSpace(r.URL) == "" || strings.TrimSpace(r.Description) == "" {
			continue
		}
		articles = append(articles, domain.Article{
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return articles
}
