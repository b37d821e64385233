package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orderpulse/backend/internal/analytics/periods"
	"github.com/orderpulse/backend/pkg/db/models"
	"go.uber.org/multierr"
)

// Consumed read interfaces. The engine never writes.
type orderReader interface {
	ListInWindow(ctx context.Context, start, end time.Time) ([]models.Order, error)
	FirstOrderTimes(ctx context.Context) (map[string]time.Time, error)
}

type productReader interface {
	List(ctx context.Context) ([]models.Product, error)
}

type requestReader interface {
	List(ctx context.Context) ([]models.CatalogRequest, error)
}

// Snapshot is the immutable record set one request computes against. Each
// source carries its own load error so metrics that do not depend on a
// failed source still run.
type Snapshot struct {
	Window periods.Window

	Orders      []models.Order
	FirstOrders map[string]time.Time
	Products    []models.Product
	Requests    []models.CatalogRequest

	OrdersErr   error
	ProductsErr error
	RequestsErr error
}

// Err combines the per-source load failures.
func (s *Snapshot) Err() error {
	return multierr.Combine(s.OrdersErr, s.ProductsErr, s.RequestsErr)
}

// source selects which stores a snapshot load touches. Point-in-time
// endpoints skip the order scan entirely.
type source uint8

const (
	sourceOrders source = 1 << iota
	sourceProducts
	sourceRequests

	sourceAll = sourceOrders | sourceProducts | sourceRequests
)

// snapshotLoader pulls the selected read sources concurrently, retrying each
// failed read once after a short backoff.
type snapshotLoader struct {
	orders   orderReader
	products productReader
	requests requestReader
	backoff  time.Duration
}

func (l *snapshotLoader) load(ctx context.Context, w periods.Window, sources source) *Snapshot {
	snap := &Snapshot{Window: w}

	var wg sync.WaitGroup

	if sources&sourceOrders != 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap.OrdersErr = l.withRetry(ctx, func() error {
				orders, err := l.orders.ListInWindow(ctx, w.Start, w.End)
				if err != nil {
					return fmt.Errorf("listing orders: %w", err)
				}
				firsts, err := l.orders.FirstOrderTimes(ctx)
				if err != nil {
					return fmt.Errorf("listing first order times: %w", err)
				}
				snap.Orders = orders
				snap.FirstOrders = firsts
				return nil
			})
		}()
	}

	if sources&sourceProducts != 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap.ProductsErr = l.withRetry(ctx, func() error {
				products, err := l.products.List(ctx)
				if err != nil {
					return fmt.Errorf("listing products: %w", err)
				}
				snap.Products = products
				return nil
			})
		}()
	}

	if sources&sourceRequests != 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap.RequestsErr = l.withRetry(ctx, func() error {
				requests, err := l.requests.List(ctx)
				if err != nil {
					return fmt.Errorf("listing catalog requests: %w", err)
				}
				snap.Requests = requests
				return nil
			})
		}()
	}

	wg.Wait()
	return snap
}

func (l *snapshotLoader) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return multierr.Append(err, ctx.Err())
	case <-time.After(l.backoff):
	}
	if retryErr := fn(); retryErr != nil {
		return multierr.Append(err, retryErr)
	}
	return nil
}
