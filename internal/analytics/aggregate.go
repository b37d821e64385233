package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/orderpulse/backend/internal/analytics/forecast"
	"github.com/orderpulse/backend/internal/analytics/periods"
	"github.com/orderpulse/backend/pkg/db/models"
	"github.com/orderpulse/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

const lastRequestedLayout = "2006-01-02"

// computeKPIs sums the windowed order set into scalar totals. A customer
// counts as new when their first order ever falls inside the window.
func computeKPIs(snap *Snapshot) KPIReport {
	report := KPIReport{
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}
	for _, o := range snap.Orders {
		report.TotalRevenue = report.TotalRevenue.Add(o.TotalValue)
	}
	report.TotalOrders = len(snap.Orders)
	for _, first := range snap.FirstOrders {
		if snap.Window.Contains(first) {
			report.NewCustomers++
		}
	}
	if report.TotalOrders > 0 {
		report.AvgOrderValue = report.TotalRevenue.
			Div(decimal.NewFromInt(int64(report.TotalOrders))).
			Round(2)
	}
	return report
}

// computeTrend buckets windowed revenue by period. Every order lands in
// exactly one bucket. The bucket slice is returned alongside the points so
// the forecaster can continue the period sequence. A window with no orders
// yields an empty series rather than a run of zero points; without sales
// there is no trend to report or extend.
func computeTrend(snap *Snapshot, g enums.Granularity) ([]TrendPoint, []periods.Bucket, error) {
	buckets, err := periods.Buckets(snap.Window, g)
	if err != nil {
		return nil, nil, err
	}
	if len(buckets) == 0 || len(snap.Orders) == 0 {
		return nil, nil, nil
	}

	index := make(map[string]int, len(buckets))
	totals := make([]decimal.Decimal, len(buckets))
	for i, b := range buckets {
		index[b.Key] = i
		totals[i] = decimal.Zero
	}
	for _, o := range snap.Orders {
		key := periods.Key(periods.Align(o.PlacedAt, g), g)
		if i, ok := index[key]; ok {
			totals[i] = totals[i].Add(o.TotalValue)
		}
	}

	points := make([]TrendPoint, len(buckets))
	for i, b := range buckets {
		points[i] = TrendPoint{
			Period:  b.Key,
			Revenue: totals[i],
			Kind:    enums.TrendPointKindHistorical,
		}
	}
	return points, buckets, nil
}

// appendForecast extends a historical trend with n projected points.
func appendForecast(historical []TrendPoint, buckets []periods.Bucket, g enums.Granularity, n int) []TrendPoint {
	if len(buckets) == 0 || n <= 0 {
		return historical
	}
	series := make([]float64, len(historical))
	for i, p := range historical {
		series[i] = p.Revenue.InexactFloat64()
	}
	lastAnchor := buckets[len(buckets)-1].Anchor
	out := historical
	for _, p := range forecast.ProjectPeriods(series, lastAnchor, g, n) {
		out = append(out, TrendPoint{
			Period:  p.Key,
			Revenue: p.Value,
			Kind:    enums.TrendPointKindForecast,
		})
	}
	return out
}

// computeStatusCounts tallies windowed orders per status string. Statuses
// the enum does not recognize fold into "unknown".
func computeStatusCounts(snap *Snapshot) StatusDistribution {
	dist := StatusDistribution{}
	for _, o := range snap.Orders {
		dist[string(o.Status.Normalize())]++
	}
	return dist
}

// computeTopProducts ranks per-product sales over the window: revenue
// descending, quantity descending on ties, then product id ascending so the
// order is a stable total order.
func computeTopProducts(snap *Snapshot, topN int) []ProductPerformance {
	byProduct := map[string]*ProductPerformance{}
	for _, o := range snap.Orders {
		for _, item := range o.Items {
			perf, ok := byProduct[item.ProductID]
			if !ok {
				perf = &ProductPerformance{
					ProductID:    item.ProductID,
					ProductName:  item.ProductName,
					TotalRevenue: decimal.Zero,
				}
				byProduct[item.ProductID] = perf
			}
			perf.TotalQuantitySold += item.Quantity
			perf.TotalRevenue = perf.TotalRevenue.Add(item.LineTotal)
		}
	}

	ranked := make([]ProductPerformance, 0, len(byProduct))
	for _, perf := range byProduct {
		ranked = append(ranked, *perf)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if cmp := ranked[i].TotalRevenue.Cmp(ranked[j].TotalRevenue); cmp != 0 {
			return cmp > 0
		}
		if ranked[i].TotalQuantitySold != ranked[j].TotalQuantitySold {
			return ranked[i].TotalQuantitySold > ranked[j].TotalQuantitySold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// computeInventoryHealth partitions the product snapshot by stock level.
// Not window-scoped; it reads the catalog as it stands now.
func computeInventoryHealth(products []models.Product, lowStockThreshold int) InventoryHealthReport {
	report := InventoryHealthReport{
		TotalInventoryValue: decimal.Zero,
		LowStockItems:       []ProductRef{},
		OutOfStockItems:     []ProductRef{},
	}
	for _, p := range products {
		report.TotalInventoryValue = report.TotalInventoryValue.
			Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		switch {
		case p.Stock == 0:
			report.OutOfStockItems = append(report.OutOfStockItems, ProductRef{ID: p.ID, Name: p.Name})
		case p.Stock <= lowStockThreshold:
			report.LowStockItems = append(report.LowStockItems, ProductRef{ID: p.ID, Name: p.Name})
		}
	}
	return report
}

// computeCatalogSuggestions groups request events by normalized item name
// and ranks by frequency, most recent request breaking ties. A zero window
// ranks the full request log; a concrete one only counts requests inside it.
func computeCatalogSuggestions(requests []models.CatalogRequest, w periods.Window, topN int) []CatalogSuggestion {
	type group struct {
		name  string
		count int
		last  time.Time
	}
	groups := map[string]*group{}
	for _, r := range requests {
		if !w.IsZero() && !w.Contains(r.RequestedAt) {
			continue
		}
		norm := strings.ToLower(strings.TrimSpace(r.ItemName))
		if norm == "" {
			continue
		}
		g, ok := groups[norm]
		if !ok {
			g = &group{name: strings.TrimSpace(r.ItemName)}
			groups[norm] = g
		}
		g.count++
		if r.RequestedAt.After(g.last) {
			g.last = r.RequestedAt
		}
	}

	ranked := make([]*group, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, g)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].last.After(ranked[j].last)
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	out := make([]CatalogSuggestion, 0, len(ranked))
	for _, g := range ranked {
		out = append(out, CatalogSuggestion{
			ItemName:      g.name,
			RequestCount:  g.count,
			LastRequested: g.last.UTC().Format(lastRequestedLayout),
		})
	}
	return out
}

// computeInventoryNeeds projects per-product unit demand for the top-N
// products. Each product's historical quantity series is built over the same
// buckets as the revenue trend, then extended with the shared trend model.
func computeInventoryNeeds(snap *Snapshot, g enums.Granularity, topN, horizon int) ([]InventoryNeed, error) {
	buckets, err := periods.Buckets(snap.Window, g)
	if err != nil {
		return nil, err
	}
	top := computeTopProducts(snap, topN)
	if len(buckets) == 0 || len(top) == 0 {
		return []InventoryNeed{}, nil
	}

	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		index[b.Key] = i
	}
	series := map[string][]float64{}
	for _, o := range snap.Orders {
		key := periods.Key(periods.Align(o.PlacedAt, g), g)
		i, ok := index[key]
		if !ok {
			continue
		}
		for _, item := range o.Items {
			s, ok := series[item.ProductID]
			if !ok {
				s = make([]float64, len(buckets))
				series[item.ProductID] = s
			}
			s[i] += float64(item.Quantity)
		}
	}

	lastAnchor := buckets[len(buckets)-1].Anchor
	out := make([]InventoryNeed, 0, len(top))
	for _, perf := range top {
		need := InventoryNeed{
			ProductID:        perf.ProductID,
			ProductName:      perf.ProductName,
			ForecastedDemand: []DemandPoint{},
		}
		for _, p := range forecast.ProjectUnits(series[perf.ProductID], lastAnchor, g, horizon) {
			need.ForecastedDemand = append(need.ForecastedDemand, DemandPoint{
				Period:   p.Key,
				Quantity: p.Units,
			})
		}
		out = append(out, need)
	}
	return out, nil
}
