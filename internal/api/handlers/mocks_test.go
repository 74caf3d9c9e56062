package handlers_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/karimhaddad/estate-scout/internal/pipeline"
	"github.com/karimhaddad/estate-scout/internal/store"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockOrchestrator struct {
	mock.Mock
}

func (m *mockOrchestrator) SearchProperties(ctx context.Context, q domain.ListingQuery) (*pipeline.SearchResult, error) {
	args := m.Called(ctx, q)
	if r := args.Get(0); r != nil {
		return r.(*pipeline.SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrchestrator) CityTrends(ctx context.Context, city string) ([]domain.Article, error) {
	args := m.Called(ctx, city)
	if r := args.Get(0); r != nil {
		return r.([]domain.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrchestrator) AnalyzeTrendData(ctx context.Context, city string, trend domain.TrendData) (string, error) {
	args := m.Called(ctx, city, trend)
	return args.String(0), args.Error(1)
}

func (m *mockOrchestrator) SummarizeArticle(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

func (m *mockOrchestrator) Chat(ctx context.Context, userInput string) (string, error) {
	args := m.Called(ctx, userInput)
	return args.String(0), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListProperties(ctx context.Context) ([]domain.CatalogProperty, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]domain.CatalogProperty), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) FilterProperties(ctx context.Context, f store.PropertyFilter) ([]domain.CatalogProperty, error) {
	args := m.Called(ctx, f)
	if r := args.Get(0); r != nil {
		return r.([]domain.CatalogProperty), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) UpsertProperty(ctx context.Context, p *domain.CatalogProperty) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockStore) SaveTrendAnalysis(ctx context.Context, a *domain.TrendAnalysis) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockStore) GetTrendAnalysis(ctx context.Context, city string) (*domain.TrendAnalysis, error) {
	args := m.Called(ctx, city)
	if r := args.Get(0); r != nil {
		return r.(*domain.TrendAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() {
	m.Called()
}
