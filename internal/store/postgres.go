package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/karimhaddad/estate-scout/internal/metrics"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// ListProperties returns every catalog property, newest first.
func (s *PostgresStore) ListProperties(ctx context.Context) ([]domain.CatalogProperty, error) {
	metrics.CatalogQueriesTotal.WithLabelValues("list_all").Inc()

	rows, err := s.pool.Query(ctx, queryListProperties)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// FilterProperties returns catalog properties matching the filter. Location
// matches as a case-insensitive substring, availability exactly. Empty
// filter fields are ignored.
func (s *PostgresStore) FilterProperties(ctx context.Context, f PropertyFilter) ([]domain.CatalogProperty, error) {
	metrics.CatalogQueriesTotal.WithLabelValues("filter").Inc()

	query := strings.Builder{}
	query.WriteString(`
		SELECT id, title, location, availability, price, currency,
			COALESCE(description, ''), COALESCE(image_url, ''),
			bedrooms, bathrooms, area_sqft,
			created_at, updated_at
		FROM properties`)

	var conds []string
	var args []any
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if f.Availability != "" {
		args = append(args, string(f.Availability))
		conds = append(conds, fmt.Sprintf("availability = $%d", len(args)))
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC")

	rows, err := s.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("filtering properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// UpsertProperty inserts or updates a catalog property by ID, assigning a
// new UUID when the ID is empty.
func (s *PostgresStore) UpsertProperty(ctx context.Context, p *domain.CatalogProperty) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	args := pgx.NamedArgs{
		"id":           p.ID,
		"title":        p.Title,
		"location":     p.Location,
		"availability": string(p.Availability),
		"price":        p.Price,
		"currency":     p.Currency,
		"description":  p.Description,
		"image_url":    p.ImageURL,
		"bedrooms":     p.Bedrooms,
		"bathrooms":    p.Bathrooms,
		"area_sqft":    p.AreaSqft,
	}

	err := s.pool.QueryRow(ctx, queryUpsertProperty, args).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting property %s: %w", p.ID, err)
	}
	return nil
}

// SaveTrendAnalysis caches a generated trend analysis, replacing any prior
// analysis for the same city.
func (s *PostgresStore) SaveTrendAnalysis(ctx context.Context, a *domain.TrendAnalysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	trendJSON, err := json.Marshal(a.Trend)
	if err != nil {
		return fmt.Errorf("marshaling trend data: %w", err)
	}

	args := pgx.NamedArgs{
		"id":           a.ID,
		"city":         a.City,
		"trend":        trendJSON,
		"analysis":     a.Analysis,
		"generated_at": a.GeneratedAt,
	}

	if _, err := s.pool.Exec(ctx, queryUpsertTrendAnalysis, args); err != nil {
		return fmt.Errorf("saving trend analysis for %s: %w", a.City, err)
	}
	return nil
}

// GetTrendAnalysis returns the cached analysis for a city, or ErrNotFound.
func (s *PostgresStore) GetTrendAnalysis(ctx context.Context, city string) (*domain.TrendAnalysis, error) {
	metrics.CatalogQueriesTotal.WithLabelValues("trend_analysis").Inc()

	var a domain.TrendAnalysis
	var trendJSON []byte
	err := s.pool.QueryRow(ctx, queryGetTrendAnalysis, city).Scan(
		&a.ID, &a.City, &trendJSON, &a.Analysis, &a.GeneratedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("trend analysis for %q: %w", city, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting trend analysis for %s: %w", city, err)
	}

	if err := json.Unmarshal(trendJSON, &a.Trend); err != nil {
		return nil, fmt.Errorf("unmarshaling trend data for %s: %w", city, err)
	}
	return &a, nil
}

func scanProperties(rows pgx.Rows) ([]domain.CatalogProperty, error) {
	var properties []domain.CatalogProperty
	for rows.Next() {
		var p domain.CatalogProperty
		err := rows.Scan(
			&p.ID, &p.Title, &p.Location, &p.Availability, &p.Price, &p.Currency,
			&p.Description, &p.ImageURL,
			&p.Bedrooms, &p.Bathrooms, &p.AreaSqft,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning property row: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating property rows: %w", err)
	}
	return properties, nil
}
