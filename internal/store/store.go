// Package store defines the catalog datastore abstraction for estate-scout.
// Business logic depends on the Store interface, never on concrete
// implementations, so handlers can be tested without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// PropertyFilter defines optional filters for catalog property queries.
// Location matches case-insensitively as a substring; Availability matches
// exactly.
type PropertyFilter struct {
	Availability domain.Availability
	Location     string
}

// Store defines all data access operations for estate-scout.
type Store interface {
	// Catalog properties
	ListProperties(ctx context.Context) ([]domain.CatalogProperty, error)
	FilterProperties(ctx context.Context, f PropertyFilter) ([]domain.CatalogProperty, error)
	UpsertProperty(ctx context.Context, p *domain.CatalogProperty) error

	// Cached trend analyses
	SaveTrendAnalysis(ctx context.Context, a *domain.TrendAnalysis) error
	GetTrendAnalysis(ctx context.Context, city string) (*domain.TrendAnalysis, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close()
}
