// Package status derives an order's operational and schedule state from its
// delivery history, the business configuration and the application clock.
// Nothing here is ever stored: every read recomputes, so status cannot
// drift from the delivery records.
package status

import (
	"time"

	"deliverytrack/internal/model"
)

// Latest returns the authoritative delivery for an order: the one with the
// most recent start time. ok is false when the order has no deliveries.
func Latest(deliveries []model.Delivery) (latest model.Delivery, ok bool) {
	for _, d := range deliveries {
		if !ok || d.StartedAt.After(latest.StartedAt) {
			latest = d
			ok = true
		}
	}
	return latest, ok
}

// ForOrder maps the latest delivery (nil when none exists) to the order's
// operational status.
func ForOrder(latest *model.Delivery) model.OrderStatus {
	if latest == nil {
		return model.StatusOpen
	}
	if latest.Active() {
		if latest.CourierID == 0 {
			return model.StatusOpen
		}
		return model.StatusInProgress
	}
	if latest.Outcome == nil {
		return model.StatusCanceled
	}
	switch *latest.Outcome {
	case model.OutcomeSupplied:
		return model.StatusDelivered
	case model.OutcomeRefusedByCustomer:
		return model.StatusDeclined
	default:
		// Canceled, Failed, CustomerNotFound.
		return model.StatusCanceled
	}
}

// SpeedKmh returns the configured average speed for a transport type, 0 for
// anything unrecognized.
func SpeedKmh(cfg model.Config, t model.DeliveryType) float64 {
	switch t {
	case model.ByCar:
		return cfg.SpeedCarKmh
	case model.ByMotorcycle:
		return cfg.SpeedMotorcycleKmh
	case model.ByBicycle:
		return cfg.SpeedBicycleKmh
	case model.OnFoot:
		return cfg.SpeedFootKmh
	default:
		return 0
	}
}

// Deadline is the hard completion deadline for an order.
func Deadline(o model.Order, cfg model.Config) time.Time {
	return o.PlacedAt.Add(cfg.MaxDeliveryTime)
}

// ExpectedCompletion estimates when an active delivery should finish, based
// on its recorded distance and the average speed for its transport. ok is
// false when no estimate can be made.
func ExpectedCompletion(d model.Delivery, cfg model.Config) (time.Time, bool) {
	if d.DistanceKm == nil {
		return time.Time{}, false
	}
	speed := SpeedKmh(cfg, d.Type)
	if speed <= 0 {
		return time.Time{}, false
	}
	hours := *d.DistanceKm / speed
	return d.StartedAt.Add(time.Duration(hours * float64(time.Hour))), true
}

// Schedule classifies the order's timeliness at the given clock value.
//
// For a completed delivery the answer is retrospective: OnTime iff it
// finished by the deadline, otherwise Late; InRisk never applies
// retroactively. For an order that is still open or in progress the
// configured RiskRule decides when OnTime turns into InRisk.
func Schedule(o model.Order, latest *model.Delivery, cfg model.Config, now time.Time) model.ScheduleStatus {
	deadline := Deadline(o, cfg)

	if latest != nil && !latest.Active() {
		if latest.CompletedAt.After(deadline) {
			return model.Late
		}
		return model.OnTime
	}

	if now.After(deadline) {
		return model.Late
	}

	if cfg.RiskRule == model.RiskByEstimate && latest != nil && latest.Active() && latest.CourierID != 0 {
		if expected, ok := ExpectedCompletion(*latest, cfg); ok {
			if now.After(expected) {
				return model.InRisk
			}
			return model.OnTime
		}
	}

	if now.After(deadline.Add(-cfg.RiskWindow)) {
		return model.InRisk
	}
	return model.OnTime
}
