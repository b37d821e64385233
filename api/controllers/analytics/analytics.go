package analytics

import (
	"net/http"

	"github.com/orderpulse/backend/api/responses"
	"github.com/orderpulse/backend/api/validators"
	"github.com/orderpulse/backend/internal/analytics"
	"github.com/orderpulse/backend/pkg/logger"
)

func KPIs(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, true, false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := service.KPIs(ctx, q.TimeFilter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func SalesTrend(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, true, true)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		points, err := service.SalesTrend(ctx, q.TimeFilter, q.Granularity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, points)
	}
}

func SalesForecast(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, true, true)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		points, err := service.SalesForecast(ctx, q.TimeFilter, q.Granularity, q.Periods)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, points)
	}
}

func StatusDistribution(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, true, false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dist, err := service.StatusDistribution(ctx, q.TimeFilter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dist)
	}
}

func InventoryHealth(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		report, err := service.InventoryHealth(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func ProductPerformance(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, true, false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ranked, err := service.ProductPerformance(ctx, q.TimeFilter, q.TopN)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, ranked)
	}
}

func InventoryNeedsForecast(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, true, true)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		needs, err := service.InventoryNeedsForecast(ctx, analytics.Params{
			Filter:      q.TimeFilter,
			Granularity: q.Granularity,
			Periods:     q.Periods,
			TopN:        q.TopN,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, needs)
	}
}

func CatalogSuggestions(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, false, false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		suggestions, err := service.CatalogSuggestions(ctx, q.TimeFilter, q.TopN)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestions)
	}
}

func Dashboard(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q, err := validators.ParseAnalyticsQuery(r, true, true)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dash, err := service.Dashboard(ctx, analytics.Params{
			Filter:      q.TimeFilter,
			Granularity: q.Granularity,
			Periods:     q.Periods,
			TopN:        q.TopN,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dash)
	}
}
