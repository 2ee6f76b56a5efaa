package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics tracks order placement outcomes.
type CheckoutMetrics struct {
	ordersCreated    *prometheus.CounterVec
	checkoutFailures *prometheus.CounterVec
	inventoryMisses  prometheus.Counter
	orderNumberRetry prometheus.Counter
}

// NewCheckoutMetrics registers checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_created_total",
		Help: "Orders created by checkout, labelled by payment method.",
	}, []string{"payment_method"})
	checkoutFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout attempts rejected, labelled by error code.",
	}, []string{"code"})
	inventoryMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_inventory_decrement_misses_total",
		Help: "Post-order inventory decrements skipped due to insufficient stock.",
	})
	orderNumberRetry := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_order_number_retries_total",
		Help: "Order number collisions that forced a regeneration.",
	})
	reg.MustRegister(ordersCreated, checkoutFailures, inventoryMisses, orderNumberRetry)
	return &CheckoutMetrics{
		ordersCreated:    ordersCreated,
		checkoutFailures: checkoutFailures,
		inventoryMisses:  inventoryMisses,
		orderNumberRetry: orderNumberRetry,
	}
}

// IncOrderCreated records a successful checkout for the given payment method.
func (c *CheckoutMetrics) IncOrderCreated(paymentMethod string) {
	if c == nil || c.ordersCreated == nil {
		return
	}
	c.ordersCreated.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// IncFailure records a rejected checkout attempt by error code.
func (c *CheckoutMetrics) IncFailure(code string) {
	if c == nil || c.checkoutFailures == nil {
		return
	}
	c.checkoutFailures.WithLabelValues(normalizeLabel(code)).Inc()
}

// IncInventoryMiss records a skipped inventory decrement.
func (c *CheckoutMetrics) IncInventoryMiss() {
	if c == nil || c.inventoryMisses == nil {
		return
	}
	c.inventoryMisses.Inc()
}

// IncOrderNumberRetry records an order number collision retry.
func (c *CheckoutMetrics) IncOrderNumberRetry() {
	if c == nil || c.orderNumberRetry == nil {
		return
	}
	c.orderNumberRetry.Inc()
}
