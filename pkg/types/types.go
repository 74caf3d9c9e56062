// Package domain defines the core business types for estate-scout.
package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxListingLimit is the hard cap on listings returned by a live search,
// regardless of the caller-supplied limit.
const MaxListingLimit = 6

// PropertyCategory represents the market segment of a property.
type PropertyCategory string

// Property category constants.
const (
	CategoryResidential PropertyCategory = "residential"
	CategoryCommercial  PropertyCategory = "commercial"
)

// PropertyType represents the kind of residential unit.
type PropertyType string

// Property type constants.
const (
	TypeFlat      PropertyType = "flat"
	TypeVilla     PropertyType = "villa"
	TypePenthouse PropertyType = "penthouse"
	TypeTownhouse PropertyType = "townhouse"
)

// Availability represents the stored catalog availability of a property.
type Availability string

// Availability constants.
const (
	AvailabilityForSale Availability = "For Sale"
	AvailabilityForRent Availability = "For Rent"
)

// ParseAvailabilityToken maps the caller-supplied "buy"/"rent" token to the
// stored availability value. Unknown tokens return an empty Availability,
// which callers treat as "no availability filter".
func ParseAvailabilityToken(token string) Availability {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "buy":
		return AvailabilityForSale
	case "rent":
		return AvailabilityForRent
	default:
		return ""
	}
}

// ListingQuery is the immutable search criteria for a live property search.
// MaxPriceMillions follows the UI convention: the caller enters the budget
// in millions of AED (e.g. 3 means AED 3,000,000).
type ListingQuery struct {
	City             string
	MaxPriceMillions float64
	Limit            int
	Category         PropertyCategory
	Type             PropertyType
}

// ErrMissingSearchParams is returned when city or max price is absent.
var ErrMissingSearchParams = errors.New("city and maxPrice are required")

// Validate checks the required query parameters.
func (q ListingQuery) Validate() error {
	if strings.TrimSpace(q.City) == "" || q.MaxPriceMillions <= 0 {
		return ErrMissingSearchParams
	}
	return nil
}

// MaxPriceAED returns the price ceiling in raw AED.
func (q ListingQuery) MaxPriceAED() float64 {
	return q.MaxPriceMillions * 1_000_000
}

// EffectiveLimit returns the caller limit clamped to [1, MaxListingLimit].
func (q ListingQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return MaxListingLimit
	}
	if q.Limit > MaxListingLimit {
		return MaxListingLimit
	}
	return q.Limit
}

// NormalizedListing is a validated, deduplicated live-search result.
type NormalizedListing struct {
	URL         string            `json:"url"`
	Description string            `json:"description"`
	Price       *float64          `json:"price,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// CatalogProperty is a property persisted in the catalog store. Catalog
// entries are written by a separate ingestion path and served by the
// browse endpoints that bypass the live pipeline.
type CatalogProperty struct {
	ID           string       `json:"id"                     db:"id"`
	Title        string       `json:"title"                  db:"title"`
	Location     string       `json:"location"               db:"location"`
	Availability Availability `json:"availability"           db:"availability"`
	Price        float64      `json:"price"                  db:"price"`
	Currency     string       `json:"currency"               db:"currency"`
	Description  string       `json:"description,omitempty"  db:"description"`
	ImageURL     string       `json:"image_url,omitempty"    db:"image_url"`
	Bedrooms     *int         `json:"bedrooms,omitempty"     db:"bedrooms"`
	Bathrooms    *int         `json:"bathrooms,omitempty"    db:"bathrooms"`
	AreaSqft     *float64     `json:"area_sqft,omitempty"    db:"area_sqft"`
	CreatedAt    time.Time    `json:"created_at"             db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"             db:"updated_at"`
}

// Article is a search hit for the city market-trend workflow.
type Article struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// TrendPoint is a single historical price observation.
type TrendPoint struct {
	Period       string `json:"period"`
	PricePerSqft string `json:"price_per_sqft"`
}

// TrendData is a city-level price-per-area time series.
type TrendData struct {
	City             string       `json:"location_name"`
	CurrentPrice     string       `json:"current_price_per_sqft"`
	CurrentPriceDate string       `json:"current_price_date"`
	Historical       []TrendPoint `json:"historical_prices"`
}

// MatchesCity reports whether the trend data plausibly belongs to the
// requested city. Case-insensitive substring match; multi-word city names
// with diacritics may produce false negatives.
func (t TrendData) MatchesCity(city string) bool {
	return strings.Contains(
		strings.ToLower(t.City),
		strings.ToLower(strings.TrimSpace(city)),
	)
}

// TrendAnalysis is a cached LLM analysis of a city's price trend.
type TrendAnalysis struct {
	ID          string    `json:"id"           db:"id"`
	City        string    `json:"city"         db:"city"`
	Trend       TrendData `json:"trend"        db:"trend"`
	Analysis    string    `json:"analysis"     db:"analysis"`
	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
}
