package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/orderpulse/backend/internal/analytics/periods"
	"github.com/orderpulse/backend/pkg/config"
	"github.com/orderpulse/backend/pkg/enums"
	apperrors "github.com/orderpulse/backend/pkg/errors"
	"github.com/orderpulse/backend/pkg/logger"
	"github.com/orderpulse/backend/pkg/metrics"
	"github.com/orderpulse/backend/pkg/redis"
)

// Metric slot names. They key the dashboard error map, the Prometheus
// labels, and the per-metric log fields.
const (
	MetricKPIs               = "kpis"
	MetricSalesTrend         = "sales_trend"
	MetricStatusDistribution = "order_status_distribution"
	MetricInventoryHealth    = "inventory_health"
	MetricProductPerformance = "product_performance"
	MetricCatalogSuggestions = "catalog_suggestions"
	MetricInventoryNeeds     = "inventory_needs"
	MetricSalesForecast      = "sales_forecast"
)

const dashboardCacheScope = "dashboard"

// Params carries the request knobs the window-scoped operations share.
type Params struct {
	Filter      enums.TimeFilter
	Granularity enums.Granularity
	Periods     int
	TopN        int
}

// Service computes the analytics reports. All operations are read-only
// views over a request-scoped snapshot.
type Service interface {
	KPIs(ctx context.Context, filter enums.TimeFilter) (*KPIReport, error)
	SalesTrend(ctx context.Context, filter enums.TimeFilter, g enums.Granularity) ([]TrendPoint, error)
	SalesForecast(ctx context.Context, filter enums.TimeFilter, g enums.Granularity, horizon int) ([]TrendPoint, error)
	StatusDistribution(ctx context.Context, filter enums.TimeFilter) (StatusDistribution, error)
	InventoryHealth(ctx context.Context) (*InventoryHealthReport, error)
	ProductPerformance(ctx context.Context, filter enums.TimeFilter, topN int) ([]ProductPerformance, error)
	InventoryNeedsForecast(ctx context.Context, p Params) ([]InventoryNeed, error)
	CatalogSuggestions(ctx context.Context, filter enums.TimeFilter, topN int) ([]CatalogSuggestion, error)
	Dashboard(ctx context.Context, p Params) (*Dashboard, error)
}

// DashboardCache is the optional response cache surface. Satisfied by
// *redis.Client; nil disables caching.
type DashboardCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ServiceParams wires the service dependencies.
type ServiceParams struct {
	Orders   orderReader
	Products productReader
	Requests requestReader
	Config   config.AnalyticsConfig
	Logger   *logger.Logger
	Metrics  *metrics.AggregationMetrics
	Cache    DashboardCache
	Now      func() time.Time
}

type service struct {
	loader *snapshotLoader
	cfg    config.AnalyticsConfig
	logg   *logger.Logger
	agg    *metrics.AggregationMetrics
	cache  DashboardCache
	now    func() time.Time
}

// NewService builds the analytics service.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil || params.Products == nil || params.Requests == nil {
		return nil, fmt.Errorf("order, product, and request readers are required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	agg := params.Metrics
	if agg == nil {
		agg = metrics.NewAggregationMetrics(nil)
	}
	return &service{
		loader: &snapshotLoader{
			orders:   params.Orders,
			products: params.Products,
			requests: params.Requests,
			backoff:  params.Config.StoreRetryBackoff,
		},
		cfg:   params.Config,
		logg:  params.Logger,
		agg:   agg,
		cache: params.Cache,
		now:   now,
	}, nil
}

func (s *service) KPIs(ctx context.Context, filter enums.TimeFilter) (*KPIReport, error) {
	snap, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	var report KPIReport
	err = s.instrument(ctx, MetricKPIs, func() error {
		if snap.OrdersErr != nil {
			return snap.OrdersErr
		}
		report = computeKPIs(snap)
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "computing kpis")
	}
	return &report, nil
}

func (s *service) SalesTrend(ctx context.Context, filter enums.TimeFilter, g enums.Granularity) ([]TrendPoint, error) {
	snap, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	points := []TrendPoint{}
	err = s.instrument(ctx, MetricSalesTrend, func() error {
		if snap.OrdersErr != nil {
			return snap.OrdersErr
		}
		historical, _, trendErr := computeTrend(snap, g)
		if trendErr != nil {
			return trendErr
		}
		if historical != nil {
			points = historical
		}
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "computing sales trend")
	}
	return points, nil
}

func (s *service) SalesForecast(ctx context.Context, filter enums.TimeFilter, g enums.Granularity, horizon int) ([]TrendPoint, error) {
	snap, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	points := []TrendPoint{}
	err = s.instrument(ctx, MetricSalesForecast, func() error {
		if snap.OrdersErr != nil {
			return snap.OrdersErr
		}
		historical, buckets, trendErr := computeTrend(snap, g)
		if trendErr != nil {
			return trendErr
		}
		if extended := appendForecast(historical, buckets, g, s.horizon(horizon)); extended != nil {
			points = extended
		}
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "computing sales forecast")
	}
	return points, nil
}

func (s *service) StatusDistribution(ctx context.Context, filter enums.TimeFilter) (StatusDistribution, error) {
	snap, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	dist := StatusDistribution{}
	err = s.instrument(ctx, MetricStatusDistribution, func() error {
		if snap.OrdersErr != nil {
			return snap.OrdersErr
		}
		dist = computeStatusCounts(snap)
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "computing status distribution")
	}
	return dist, nil
}

func (s *service) InventoryHealth(ctx context.Context) (*InventoryHealthReport, error) {
	// Inventory is a point-in-time read; no window applies.
	snap := s.loader.load(ctx, periods.Window{}, sourceProducts)
	var report InventoryHealthReport
	err := s.instrument(ctx, MetricInventoryHealth, func() error {
		if snap.ProductsErr != nil {
			return snap.ProductsErr
		}
		report = computeInventoryHealth(snap.Products, s.cfg.LowStockThreshold)
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "computing inventory health")
	}
	return &report, nil
}

func (s *service) ProductPerformance(ctx context.Context, filter enums.TimeFilter, topN int) ([]ProductPerformance, error) {
	snap, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	ranked := []ProductPerformance{}
	err = s.instrument(ctx, MetricProductPerformance, func() error {
		if snap.OrdersErr != nil {
			return snap.OrdersErr
		}
		ranked = computeTopProducts(snap, s.topN(topN))
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "ranking product performance")
	}
	return ranked, nil
}

func (s *service) InventoryNeedsForecast(ctx context.Context, p Params) ([]InventoryNeed, error) {
	snap, err := s.snapshot(ctx, p.Filter)
	if err != nil {
		return nil, err
	}
	needs := []InventoryNeed{}
	err = s.instrument(ctx, MetricInventoryNeeds, func() error {
		if snap.OrdersErr != nil {
			return snap.OrdersErr
		}
		computed, needsErr := computeInventoryNeeds(snap, p.Granularity, s.topN(p.TopN), s.horizon(p.Periods))
		if needsErr != nil {
			return needsErr
		}
		needs = computed
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "forecasting inventory needs")
	}
	return needs, nil
}

func (s *service) CatalogSuggestions(ctx context.Context, filter enums.TimeFilter, topN int) ([]CatalogSuggestion, error) {
	// The filter is optional here. Without one, suggestions rank the full
	// request log.
	window := periods.Window{}
	if filter != "" {
		resolved, err := periods.Resolve(filter, s.now())
		if err != nil {
			return nil, err
		}
		window = resolved
		ctx = s.logg.WithTimeFilter(ctx, filter.String())
	}
	snap := s.loader.load(ctx, window, sourceRequests)
	suggestions := []CatalogSuggestion{}
	err := s.instrument(ctx, MetricCatalogSuggestions, func() error {
		if snap.RequestsErr != nil {
			return snap.RequestsErr
		}
		suggestions = computeCatalogSuggestions(snap.Requests, window, s.topN(topN))
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "ranking catalog suggestions")
	}
	return suggestions, nil
}

// Dashboard assembles every metric over one shared snapshot. Slots compute
// concurrently and are independently timeboxed; a failed or timed-out slot
// degrades to its zero value with an entry in Errors. The request as a
// whole fails only when no slot succeeded.
func (s *service) Dashboard(ctx context.Context, p Params) (*Dashboard, error) {
	if cached := s.cachedDashboard(ctx, p); cached != nil {
		return cached, nil
	}

	window, err := periods.Resolve(p.Filter, s.now())
	if err != nil {
		return nil, err
	}
	snap := s.loader.load(ctx, window, sourceAll)

	dash := &Dashboard{
		StatusDistribution: StatusDistribution{},
		SalesTrend:         []TrendPoint{},
		InventoryHealth:    computeInventoryHealth(nil, s.cfg.LowStockThreshold),
		ProductPerformance: []ProductPerformance{},
		InventoryNeeds:     []InventoryNeed{},
		CatalogSuggestions: []CatalogSuggestion{},
		Errors:             map[string]string{},
	}

	// Slots return a commit closure instead of writing dash directly; the
	// collector applies it only for slots that finished in time, so a
	// timed-out goroutine can never race the response.
	slots := []struct {
		name string
		run  func() (func(), error)
	}{
		{MetricKPIs, func() (func(), error) {
			if snap.OrdersErr != nil {
				return nil, snap.OrdersErr
			}
			report := computeKPIs(snap)
			return func() { dash.KPIs = report }, nil
		}},
		{MetricSalesTrend, func() (func(), error) {
			if snap.OrdersErr != nil {
				return nil, snap.OrdersErr
			}
			historical, buckets, trendErr := computeTrend(snap, p.Granularity)
			if trendErr != nil {
				return nil, trendErr
			}
			extended := appendForecast(historical, buckets, p.Granularity, s.horizon(p.Periods))
			return func() {
				if extended != nil {
					dash.SalesTrend = extended
				}
			}, nil
		}},
		{MetricStatusDistribution, func() (func(), error) {
			if snap.OrdersErr != nil {
				return nil, snap.OrdersErr
			}
			dist := computeStatusCounts(snap)
			return func() { dash.StatusDistribution = dist }, nil
		}},
		{MetricInventoryHealth, func() (func(), error) {
			if snap.ProductsErr != nil {
				return nil, snap.ProductsErr
			}
			report := computeInventoryHealth(snap.Products, s.cfg.LowStockThreshold)
			return func() { dash.InventoryHealth = report }, nil
		}},
		{MetricProductPerformance, func() (func(), error) {
			if snap.OrdersErr != nil {
				return nil, snap.OrdersErr
			}
			ranked := computeTopProducts(snap, s.topN(p.TopN))
			return func() { dash.ProductPerformance = ranked }, nil
		}},
		{MetricInventoryNeeds, func() (func(), error) {
			if snap.OrdersErr != nil {
				return nil, snap.OrdersErr
			}
			needs, needsErr := computeInventoryNeeds(snap, p.Granularity, s.topN(p.TopN), s.horizon(p.Periods))
			if needsErr != nil {
				return nil, needsErr
			}
			return func() { dash.InventoryNeeds = needs }, nil
		}},
		{MetricCatalogSuggestions, func() (func(), error) {
			if snap.RequestsErr != nil {
				return nil, snap.RequestsErr
			}
			suggestions := computeCatalogSuggestions(snap.Requests, snap.Window, s.topN(p.TopN))
			return func() { dash.CatalogSuggestions = suggestions }, nil
		}},
	}

	type result struct {
		name   string
		commit func()
		err    error
	}
	results := make(chan result, len(slots))
	for _, slot := range slots {
		slot := slot
		go func() {
			commit, err := s.runSlot(ctx, slot.name, slot.run)
			results <- result{slot.name, commit, err}
		}()
	}

	succeeded := 0
	for range slots {
		r := <-results
		if r.err != nil {
			dash.Errors[r.name] = r.err.Error()
			continue
		}
		r.commit()
		succeeded++
	}

	if succeeded == 0 {
		return nil, apperrors.Wrap(apperrors.CodeDependency, snap.Err(), "no analytics metric could be computed")
	}
	if len(dash.Errors) == 0 {
		dash.Errors = nil
		s.storeDashboard(ctx, p, dash)
	}
	return dash, nil
}

// runSlot executes one dashboard slot with its own timebox so a slow metric
// cannot hold up the rest of the response.
func (s *service) runSlot(ctx context.Context, name string, fn func() (func(), error)) (func(), error) {
	ctx = s.logg.WithMetric(ctx, name)

	timeout := s.cfg.MetricTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	type outcome struct {
		commit func()
		err    error
	}
	done := make(chan outcome, 1)
	started := time.Now()
	go func() {
		commit, err := fn()
		done <- outcome{commit, err}
	}()

	var commit func()
	var err error
	select {
	case out := <-done:
		commit, err = out.commit, out.err
	case <-timer.C:
		err = fmt.Errorf("metric %s timed out after %s", name, timeout)
	case <-ctx.Done():
		err = ctx.Err()
	}

	s.agg.ObserveDuration(name, time.Since(started))
	if err != nil {
		s.agg.IncFailure(name)
		s.logg.Error(ctx, "analytics metric failed", err)
		return nil, err
	}
	s.agg.IncSuccess(name)
	return commit, nil
}

func (s *service) snapshot(ctx context.Context, filter enums.TimeFilter) (*Snapshot, error) {
	window, err := periods.Resolve(filter, s.now())
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithTimeFilter(ctx, filter.String())
	return s.loader.load(ctx, window, sourceAll), nil
}

// instrument wraps a single-metric endpoint computation with duration and
// outcome metrics.
func (s *service) instrument(ctx context.Context, name string, fn func() error) error {
	ctx = s.logg.WithMetric(ctx, name)
	started := time.Now()
	err := fn()
	s.agg.ObserveDuration(name, time.Since(started))
	if err != nil {
		s.agg.IncFailure(name)
		s.logg.Error(ctx, "analytics metric failed", err)
		return err
	}
	s.agg.IncSuccess(name)
	return nil
}

// classify keeps validation errors as 400s and treats everything else as a
// dependency failure.
func (s *service) classify(err error, msg string) error {
	if appErr := apperrors.As(err); appErr != nil && appErr.Code() == apperrors.CodeValidation {
		return err
	}
	return apperrors.Wrap(apperrors.CodeDependency, err, msg)
}

func (s *service) topN(n int) int {
	if n > 0 {
		return n
	}
	return s.cfg.DefaultTopN
}

func (s *service) horizon(n int) int {
	if n > 0 {
		return n
	}
	return s.cfg.DefaultPeriods
}

func (s *service) cacheKey(p Params) string {
	return redis.CacheKey(dashboardCacheScope, fmt.Sprintf("%s:%s:%d:%d", p.Filter, p.Granularity, p.TopN, p.Periods))
}

func (s *service) cachedDashboard(ctx context.Context, p Params) *Dashboard {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(p))
	if err != nil {
		return nil
	}
	var dash Dashboard
	if err := json.Unmarshal([]byte(raw), &dash); err != nil {
		return nil
	}
	return &dash
}

// storeDashboard caches only fully successful payloads so a degraded
// response never gets pinned for the TTL.
func (s *service) storeDashboard(ctx context.Context, p Params, dash *Dashboard) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(dash)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(p), string(raw), s.cfg.DashboardCacheTTL); err != nil {
		s.logg.Warn(ctx, "failed to cache dashboard payload")
	}
}
