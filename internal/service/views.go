package service

import (
	"sort"
	"time"

	"deliverytrack/internal/model"
	"deliverytrack/internal/status"
)

// CourierView is a courier as shown in listings: credential stripped,
// enriched with completion counts and the order currently in progress.
type CourierView struct {
	ID            int                `json:"id"`
	FullName      string             `json:"full_name"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	Active        bool               `json:"active"`
	Type          model.DeliveryType `json:"type"`
	EmployedAt    time.Time          `json:"employed_at"`
	MaxDistanceKm *float64           `json:"max_distance_km,omitempty"`

	CompletedOnTime int  `json:"completed_on_time"`
	CompletedLate   int  `json:"completed_late"`
	CurrentOrderID  *int `json:"current_order_id,omitempty"`
}

// OrderView is an order with every derived field a caller might branch on.
type OrderView struct {
	model.Order

	Status        model.OrderStatus    `json:"status"`
	Schedule      model.ScheduleStatus `json:"schedule"`
	AirDistanceKm float64              `json:"air_distance_km"`
	Deadline      time.Time            `json:"deadline"`
	Remaining     time.Duration        `json:"remaining"`

	Delivery           *model.Delivery `json:"delivery,omitempty"`
	ExpectedCompletion *time.Time      `json:"expected_completion,omitempty"`
}

// ClosedDeliveryView is one finished delivery of a courier, joined with its
// order.
type ClosedDeliveryView struct {
	DeliveryID int                `json:"delivery_id"`
	OrderID    int                `json:"order_id"`
	OrderType  model.OrderType    `json:"order_type"`
	Address    string             `json:"address"`
	Type       model.DeliveryType `json:"type"`
	DistanceKm *float64           `json:"distance_km,omitempty"`
	Duration   time.Duration      `json:"duration"`
	Outcome    model.Outcome      `json:"outcome"`
}

// Summary counts orders per status and schedule combination.
type Summary struct {
	Total int                                                 `json:"total"`
	Cells map[model.OrderStatus]map[model.ScheduleStatus]int `json:"cells"`
}

// OrderFilter narrows order listings; nil fields match everything.
type OrderFilter struct {
	Type    *model.OrderType
	Fragile *bool
}

func (f OrderFilter) matches(o model.Order) bool {
	if f.Type != nil && o.Type != *f.Type {
		return false
	}
	if f.Fragile != nil && o.Fragile != *f.Fragile {
		return false
	}
	return true
}

// OrderSort selects the listing order.
type OrderSort string

const (
	SortOrdersByID       OrderSort = "id"
	SortOrdersByDistance OrderSort = "distance"
	SortOrdersByDeadline OrderSort = "deadline"
)

func sortOrderViews(views []OrderView, by OrderSort) {
	switch by {
	case SortOrdersByDistance:
		sort.SliceStable(views, func(i, j int) bool { return views[i].AirDistanceKm < views[j].AirDistanceKm })
	case SortOrdersByDeadline:
		sort.SliceStable(views, func(i, j int) bool { return views[i].Deadline.Before(views[j].Deadline) })
	default:
		sort.SliceStable(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	}
}

// CourierSort selects the courier listing order.
type CourierSort string

const (
	SortCouriersByID   CourierSort = "id"
	SortCouriersByName CourierSort = "name"
)

func sortCourierViews(views []CourierView, by CourierSort) {
	switch by {
	case SortCouriersByName:
		sort.SliceStable(views, func(i, j int) bool { return views[i].FullName < views[j].FullName })
	default:
		sort.SliceStable(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	}
}

// orderView assembles the derived view of one order from its deliveries and
// the configuration.
func orderView(o model.Order, deliveries []model.Delivery, cfg model.Config) OrderView {
	var latest *model.Delivery
	if d, ok := status.Latest(deliveries); ok {
		latest = &d
	}

	deadline := status.Deadline(o, cfg)
	view := OrderView{
		Order:         o,
		Status:        status.ForOrder(latest),
		Schedule:      status.Schedule(o, latest, cfg, cfg.Clock),
		AirDistanceKm: airDistanceToCompany(o, cfg),
		Deadline:      deadline,
		Remaining:     deadline.Sub(cfg.Clock),
		Delivery:      latest,
	}
	if latest != nil && latest.Active() && latest.CourierID != 0 {
		if expected, ok := status.ExpectedCompletion(*latest, cfg); ok {
			view.ExpectedCompletion = &expected
		}
	}
	return view
}
