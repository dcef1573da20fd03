package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverytrack_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	DeliveriesAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverytrack_deliveries_assigned_total",
		Help: "Total number of orders assigned to a courier.",
	})

	DeliveriesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverytrack_deliveries_completed_total",
		Help: "Total number of deliveries marked as supplied.",
	})

	OrdersCanceledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverytrack_orders_canceled_total",
		Help: "Total number of orders canceled.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deliverytrack_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	RouteFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverytrack_route_fallbacks_total",
		Help: "Times the routing service failed and air distance was used instead.",
	})

	EventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deliverytrack_events_dropped_total",
		Help: "Change events dropped because a subscriber queue was full.",
	})
)
