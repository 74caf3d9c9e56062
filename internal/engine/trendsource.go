package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// ErrNoTrendData is returned when a trend source has no series for a city.
var ErrNoTrendData = errors.New("no trend data for city")

// TrendSource provides price-per-area series for cities. The scheduled
// refresher feeds these series to the analyst to produce cached analyses.
type TrendSource interface {
	CityTrend(ctx context.Context, city string) (domain.TrendData, error)
}

// FileTrendSource serves trend series from a YAML dataset file, keyed by
// city name (case-insensitive).
type FileTrendSource struct {
	series map[string]domain.TrendData
}

type trendDatasetFile struct {
	Cities []trendSeriesEntry `yaml:"cities"`
}

type trendSeriesEntry struct {
	City             string            `yaml:"city"`
	CurrentPrice     string            `yaml:"current_price_per_sqft"`
	CurrentPriceDate string            `yaml:"current_price_date"`
	Historical       []trendPointEntry `yaml:"historical_prices"`
}

type trendPointEntry struct {
	Period       string `yaml:"period"`
	PricePerSqft string `yaml:"price_per_sqft"`
}

// NewFileTrendSource loads a YAML trend dataset from disk.
func NewFileTrendSource(path string) (*FileTrendSource, error) {
	data, err := os.ReadFile(path) //nolint:gosec // dataset path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading trend dataset: %w", err)
	}

	var file trendDatasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing trend dataset: %w", err)
	}

	src := &FileTrendSource{series: make(map[string]domain.TrendData, len(file.Cities))}
	for _, entry := range file.Cities {
		if strings.TrimSpace(entry.City) == "" {
			return nil, fmt.Errorf("trend dataset entry missing city name")
		}

		td := domain.TrendData{
			City:             entry.City,
			CurrentPrice:     entry.CurrentPrice,
			CurrentPriceDate: entry.CurrentPriceDate,
		}
		for _, hp := range entry.Historical {
			td.Historical = append(td.Historical, domain.TrendPoint{
				Period:       hp.Period,
				PricePerSqft: hp.PricePerSqft,
			})
		}
		src.series[normalizeCityKey(entry.City)] = td
	}

	return src, nil
}

// Cities returns the city names the source has series for.
func (s *FileTrendSource) Cities() []string {
	cities := make([]string, 0, len(s.series))
	for _, td := range s.series {
		cities = append(cities, td.City)
	}
	return cities
}

// CityTrend returns the trend series for a city.
func (s *FileTrendSource) CityTrend(_ context.Context, city string) (domain.TrendData, error) {
	td, ok := s.series[normalizeCityKey(city)]
	if !ok {
		return domain.TrendData{}, fmt.Errorf("%q: %w", city, ErrNoTrendData)
	}
	return td, nil
}

func normalizeCityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
