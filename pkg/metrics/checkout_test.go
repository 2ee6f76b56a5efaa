package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCheckoutMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCheckoutMetrics(reg)

	metrics.IncOrderCreated("cod")
	metrics.IncOrderCreated("cod")
	metrics.IncFailure("EMPTY_CART")
	metrics.IncInventoryMiss()
	metrics.IncOrderNumberRetry()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "checkout_orders_created_total", "payment_method", "cod"); err != nil {
		t.Fatalf("fetch orders created: %v", err)
	} else if got != 2 {
		t.Fatalf("expected orders created=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "checkout_failures_total", "code", "EMPTY_CART"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if mf := findMetricFamily(mfs, "checkout_inventory_decrement_misses_total"); mf == nil {
		t.Fatalf("inventory miss counter not registered")
	} else if mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one inventory miss")
	}
}

func TestCheckoutMetricsNilSafe(t *testing.T) {
	var metrics *CheckoutMetrics
	metrics.IncOrderCreated("cod")
	metrics.IncFailure("x")
	metrics.IncInventoryMiss()
	metrics.IncOrderNumberRetry()

	unregistered := NewCheckoutMetrics(nil)
	unregistered.IncOrderCreated("cod")
}

func TestCronJobMetricsAddSwept(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCronJobMetrics(reg)
	metrics.AddSwept("stale-cart-sweep", 7)
	metrics.AddSwept("stale-cart-sweep", 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "job_rows_swept_total", "job", "stale-cart-sweep"); err != nil {
		t.Fatalf("fetch swept: %v", err)
	} else if got != 7 {
		t.Fatalf("expected swept=7, got %f", got)
	}
}
