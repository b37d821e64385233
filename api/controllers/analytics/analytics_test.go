package analytics

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orderpulse/backend/internal/analytics"
	"github.com/orderpulse/backend/pkg/enums"
	pkgerrors "github.com/orderpulse/backend/pkg/errors"
	"github.com/orderpulse/backend/pkg/logger"
	"github.com/shopspring/decimal"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestKPIsRequiresTimeFilter(t *testing.T) {
	stub := &testAnalyticsService{}
	handler := KPIs(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/kpis", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without time_filter, got %d", resp.Code)
	}
	if stub.kpiCalls != 0 {
		t.Fatal("service should not be invoked on invalid input")
	}
}

func TestKPIsRejectsUnknownFilter(t *testing.T) {
	stub := &testAnalyticsService{}
	handler := KPIs(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/kpis?time_filter=yesterday", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown filter, got %d", resp.Code)
	}
}

func TestKPIsSuccess(t *testing.T) {
	stub := &testAnalyticsService{kpis: &analytics.KPIReport{
		TotalRevenue:  decimal.RequireFromString("175.50"),
		TotalOrders:   3,
		NewCustomers:  1,
		AvgOrderValue: decimal.RequireFromString("58.50"),
	}}
	handler := KPIs(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/kpis?time_filter=last_30_days", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastFilter != enums.TimeFilterLast30Days {
		t.Fatalf("unexpected filter %q", stub.lastFilter)
	}

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range []string{"totalRevenue", "totalOrders", "newCustomers", "avgOrderValue"} {
		if _, ok := envelope.Data[field]; !ok {
			t.Fatalf("missing contract field %q", field)
		}
	}
}

func TestSalesForecastRequiresGranularity(t *testing.T) {
	handler := SalesForecast(&testAnalyticsService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/sales-forecast?time_filter=all_time", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without granularity, got %d", resp.Code)
	}
}

func TestSalesForecastPassesHorizon(t *testing.T) {
	stub := &testAnalyticsService{}
	handler := SalesForecast(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/analytics/sales-forecast?time_filter=last_365_days&granularity=month&periods=4", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastHorizon != 4 {
		t.Fatalf("expected horizon 4, got %d", stub.lastHorizon)
	}
}

func TestDashboardDependencyFailure(t *testing.T) {
	stub := &testAnalyticsService{
		err: pkgerrors.New(pkgerrors.CodeDependency, "no analytics metric could be computed"),
	}
	handler := Dashboard(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/analytics/dashboard?time_filter=last_7_days&granularity=week", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when nothing could be computed, got %d", resp.Code)
	}
}

func TestInventoryHealthIgnoresWindowParams(t *testing.T) {
	stub := &testAnalyticsService{health: &analytics.InventoryHealthReport{
		TotalInventoryValue: decimal.RequireFromString("522.00"),
		LowStockItems:       []analytics.ProductRef{},
		OutOfStockItems:     []analytics.ProductRef{},
	}}
	handler := InventoryHealth(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/inventory-health", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

type testAnalyticsService struct {
	kpis        *analytics.KPIReport
	health      *analytics.InventoryHealthReport
	err         error
	kpiCalls    int
	lastFilter  enums.TimeFilter
	lastHorizon int
}

func (s *testAnalyticsService) KPIs(ctx context.Context, filter enums.TimeFilter) (*analytics.KPIReport, error) {
	s.kpiCalls++
	s.lastFilter = filter
	if s.kpis == nil {
		s.kpis = &analytics.KPIReport{}
	}
	return s.kpis, s.err
}

func (s *testAnalyticsService) SalesTrend(ctx context.Context, filter enums.TimeFilter, g enums.Granularity) ([]analytics.TrendPoint, error) {
	s.lastFilter = filter
	return []analytics.TrendPoint{}, s.err
}

func (s *testAnalyticsService) SalesForecast(ctx context.Context, filter enums.TimeFilter, g enums.Granularity, horizon int) ([]analytics.TrendPoint, error) {
	s.lastFilter = filter
	s.lastHorizon = horizon
	return []analytics.TrendPoint{}, s.err
}

func (s *testAnalyticsService) StatusDistribution(ctx context.Context, filter enums.TimeFilter) (analytics.StatusDistribution, error) {
	s.lastFilter = filter
	return analytics.StatusDistribution{}, s.err
}

func (s *testAnalyticsService) InventoryHealth(ctx context.Context) (*analytics.InventoryHealthReport, error) {
	if s.health == nil {
		s.health = &analytics.InventoryHealthReport{}
	}
	return s.health, s.err
}

func (s *testAnalyticsService) ProductPerformance(ctx context.Context, filter enums.TimeFilter, topN int) ([]analytics.ProductPerformance, error) {
	s.lastFilter = filter
	return []analytics.ProductPerformance{}, s.err
}

func (s *testAnalyticsService) InventoryNeedsForecast(ctx context.Context, p analytics.Params) ([]analytics.InventoryNeed, error) {
	s.lastFilter = p.Filter
	s.lastHorizon = p.Periods
	return []analytics.InventoryNeed{}, s.err
}

func (s *testAnalyticsService) CatalogSuggestions(ctx context.Context, filter enums.TimeFilter, topN int) ([]analytics.CatalogSuggestion, error) {
	s.lastFilter = filter
	return []analytics.CatalogSuggestion{}, s.err
}

func (s *testAnalyticsService) Dashboard(ctx context.Context, p analytics.Params) (*analytics.Dashboard, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &analytics.Dashboard{}, nil
}
