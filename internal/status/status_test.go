package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"deliverytrack/internal/model"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func cfg() model.Config {
	c := model.DefaultConfig(t0)
	c.MaxDeliveryTime = 2 * time.Hour
	c.RiskWindow = 30 * time.Minute
	return c
}

func order() model.Order {
	return model.Order{ID: 1000, PlacedAt: t0, Lat: 32.08, Lon: 34.78}
}

func outcome(o model.Outcome) *model.Outcome { return &o }

func completed(start time.Time, end time.Time, o model.Outcome) model.Delivery {
	return model.Delivery{
		ID: 1, OrderID: 1000, CourierID: 500, Type: model.ByCar,
		StartedAt: start, CompletedAt: &end, Outcome: outcome(o),
	}
}

func TestLatestPicksMostRecentStart(t *testing.T) {
	first := model.Delivery{ID: 1, StartedAt: t0}
	second := model.Delivery{ID: 2, StartedAt: t0.Add(time.Hour)}

	latest, ok := Latest([]model.Delivery{first, second})
	assert.True(t, ok)
	assert.Equal(t, 2, latest.ID)

	_, ok = Latest(nil)
	assert.False(t, ok)
}

func TestForOrder(t *testing.T) {
	end := t0.Add(time.Hour)

	tests := []struct {
		name   string
		latest *model.Delivery
		want   model.OrderStatus
	}{
		{"no delivery", nil, model.StatusOpen},
		{"active with courier", &model.Delivery{CourierID: 500, StartedAt: t0}, model.StatusInProgress},
		{"active without courier", &model.Delivery{CourierID: 0, StartedAt: t0}, model.StatusOpen},
		{"supplied", &model.Delivery{CourierID: 500, StartedAt: t0, CompletedAt: &end, Outcome: outcome(model.OutcomeSupplied)}, model.StatusDelivered},
		{"refused", &model.Delivery{CourierID: 500, StartedAt: t0, CompletedAt: &end, Outcome: outcome(model.OutcomeRefusedByCustomer)}, model.StatusDeclined},
		{"canceled", &model.Delivery{CourierID: 0, StartedAt: t0, CompletedAt: &end, Outcome: outcome(model.OutcomeCanceled)}, model.StatusCanceled},
		{"failed", &model.Delivery{CourierID: 500, StartedAt: t0, CompletedAt: &end, Outcome: outcome(model.OutcomeFailed)}, model.StatusCanceled},
		{"customer not found", &model.Delivery{CourierID: 500, StartedAt: t0, CompletedAt: &end, Outcome: outcome(model.OutcomeCustomerNotFound)}, model.StatusCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForOrder(tt.latest))
		})
	}
}

func TestSpeedKmhIsTotal(t *testing.T) {
	c := cfg()
	assert.Equal(t, c.SpeedCarKmh, SpeedKmh(c, model.ByCar))
	assert.Equal(t, c.SpeedMotorcycleKmh, SpeedKmh(c, model.ByMotorcycle))
	assert.Equal(t, c.SpeedBicycleKmh, SpeedKmh(c, model.ByBicycle))
	assert.Equal(t, c.SpeedFootKmh, SpeedKmh(c, model.OnFoot))
	assert.Zero(t, SpeedKmh(c, model.DeliveryType("hoverboard")))
}

func TestScheduleCompletedDeliveries(t *testing.T) {
	c := cfg()
	o := order()

	onTime := completed(t0, t0.Add(90*time.Minute), model.OutcomeSupplied)
	assert.Equal(t, model.OnTime, Schedule(o, &onTime, c, t0.Add(10*time.Hour)))

	// Exactly at the deadline still counts as on time.
	atDeadline := completed(t0, t0.Add(2*time.Hour), model.OutcomeSupplied)
	assert.Equal(t, model.OnTime, Schedule(o, &atDeadline, c, t0.Add(10*time.Hour)))

	late := completed(t0, t0.Add(3*time.Hour), model.OutcomeSupplied)
	assert.Equal(t, model.Late, Schedule(o, &late, c, t0.Add(10*time.Hour)))
}

// Order placed at T0 with a 2h deadline and a 30m risk window, still
// unassigned: at T0+1h45m the clock is past the risk threshold (T0+1h30m)
// but before the deadline, so the order is in risk.
func TestScheduleOpenOrderRiskWindow(t *testing.T) {
	c := cfg()
	o := order()

	assert.Equal(t, model.OnTime, Schedule(o, nil, c, t0.Add(time.Hour)))
	assert.Equal(t, model.InRisk, Schedule(o, nil, c, t0.Add(105*time.Minute)))
	assert.Equal(t, model.Late, Schedule(o, nil, c, t0.Add(121*time.Minute)))
}

func TestScheduleInProgressByDeadlineRule(t *testing.T) {
	c := cfg()
	o := order()

	km := 25.0 // 30 minutes at 50 km/h
	active := model.Delivery{
		ID: 1, OrderID: o.ID, CourierID: 500, Type: model.ByCar,
		StartedAt: t0, DistanceKm: &km,
	}

	// Under the deadline rule the estimate is ignored: the order stays on
	// time until the risk threshold even though the expected completion
	// (T0+30m) has long passed.
	assert.Equal(t, model.OnTime, Schedule(o, &active, c, t0.Add(time.Hour)))
	assert.Equal(t, model.InRisk, Schedule(o, &active, c, t0.Add(100*time.Minute)))
}

func TestScheduleInProgressByEstimateRule(t *testing.T) {
	c := cfg()
	c.RiskRule = model.RiskByEstimate
	o := order()

	km := 25.0
	active := model.Delivery{
		ID: 1, OrderID: o.ID, CourierID: 500, Type: model.ByCar,
		StartedAt: t0, DistanceKm: &km,
	}

	assert.Equal(t, model.OnTime, Schedule(o, &active, c, t0.Add(20*time.Minute)))
	assert.Equal(t, model.InRisk, Schedule(o, &active, c, t0.Add(40*time.Minute)))
	assert.Equal(t, model.Late, Schedule(o, &active, c, t0.Add(3*time.Hour)))
}
