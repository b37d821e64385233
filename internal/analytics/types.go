package analytics

import (
	"github.com/orderpulse/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// KPIReport holds the scalar totals for a reporting window.
type KPIReport struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalOrders   int             `json:"totalOrders"`
	NewCustomers  int             `json:"newCustomers"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
}

// TrendPoint is one period of a revenue series. Historical and forecast
// points share a single continuous sequence with no duplicate period.
type TrendPoint struct {
	Period  string               `json:"period"`
	Revenue decimal.Decimal      `json:"revenue"`
	Kind    enums.TrendPointKind `json:"type"`
}

// StatusDistribution maps order status strings to counts over a window.
type StatusDistribution map[string]int

// ProductRef identifies a product in inventory health listings.
type ProductRef struct {
	ID   string `json:"p_id"`
	Name string `json:"p_name"`
}

// InventoryHealthReport classifies the current product snapshot by stock
// level. Every product lands in exactly one of healthy, low, or out of
// stock.
type InventoryHealthReport struct {
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	LowStockItems       []ProductRef    `json:"lowStockItems"`
	OutOfStockItems     []ProductRef    `json:"outOfStockItems"`
}

// ProductPerformance is one ranked entry of per-product sales totals.
type ProductPerformance struct {
	ProductID         string          `json:"p_id"`
	ProductName       string          `json:"p_name"`
	TotalQuantitySold int             `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}

// DemandPoint is one projected period of unit demand for a product.
type DemandPoint struct {
	Period   string `json:"period"`
	Quantity int    `json:"quantity"`
}

// InventoryNeed carries the demand projection for one top-selling product.
type InventoryNeed struct {
	ProductID        string        `json:"p_id"`
	ProductName      string        `json:"p_name"`
	ForecastedDemand []DemandPoint `json:"forecasted_demand_periods"`
}

// CatalogSuggestion is one ranked unmet-demand entry. LastRequested is the
// date of the most recent request, formatted YYYY-MM-DD.
type CatalogSuggestion struct {
	ItemName      string `json:"item_name"`
	RequestCount  int    `json:"request_count"`
	LastRequested string `json:"last_requested"`
}

// Dashboard bundles every metric for one request. A slot that failed to
// compute holds its zero default and records the failure in Errors keyed by
// slot name, so one bad metric never blanks the rest.
type Dashboard struct {
	KPIs               KPIReport             `json:"kpis"`
	SalesTrend         []TrendPoint          `json:"salesTrend"`
	StatusDistribution StatusDistribution    `json:"orderStatusDistribution"`
	InventoryHealth    InventoryHealthReport `json:"inventoryHealth"`
	ProductPerformance []ProductPerformance  `json:"productPerformance"`
	InventoryNeeds     []InventoryNeed       `json:"inventoryNeedsForecast"`
	CatalogSuggestions []CatalogSuggestion   `json:"catalogSuggestions"`
	Errors             map[string]string     `json:"errors,omitempty"`
}
