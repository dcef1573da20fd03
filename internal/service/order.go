package service

import (
	"context"
	"sort"

	"deliverytrack/internal/apperr"
	"deliverytrack/internal/events"
	"deliverytrack/internal/geo"
	"deliverytrack/internal/metrics"
	"deliverytrack/internal/model"
	"deliverytrack/internal/status"
)

func airDistanceToCompany(o model.Order, cfg model.Config) float64 {
	return geo.AirDistanceKm(cfg.CompanyLat, cfg.CompanyLon, o.Lat, o.Lon)
}

func (s *Service) orderDeliveries(orderID int) ([]model.Delivery, error) {
	return s.deliveries.List(func(d model.Delivery) bool { return d.OrderID == orderID })
}

// CreateOrder registers a new order. The address is geocoded; an
// unresolvable address is a hard validation failure here, unlike routing
// which may fall back to air distance. Admin only.
func (s *Service) CreateOrder(ctx context.Context, requesterID int, o model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return model.Order{}, err
	}

	if err := validateName(o.CustomerName); err != nil {
		return model.Order{}, err
	}
	if err := validatePhone(o.CustomerPhone); err != nil {
		return model.Order{}, err
	}
	if o.Address == "" {
		return model.Order{}, apperr.Validation("order address cannot be empty")
	}

	lat, lon, err := s.geocoder.ResolveCoordinates(ctx, o.Address)
	if err != nil {
		return model.Order{}, err
	}
	o.Lat, o.Lon = lat, lon

	if o.PlacedAt.IsZero() {
		o.PlacedAt = cfg.Clock
	}

	created, err := s.orders.Create(o)
	if err != nil {
		return model.Order{}, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.notify(events.TopicOrders, 0, cfg)
	return created, nil
}

// GetOrder returns the derived view of one order. Admin, or the courier
// whose delivery is the order's authoritative one.
func (s *Service) GetOrder(requesterID, orderID int) (OrderView, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return OrderView{}, err
	}

	o, err := s.orders.Get(orderID)
	if err != nil {
		return OrderView{}, err
	}
	deliveries, err := s.orderDeliveries(orderID)
	if err != nil {
		return OrderView{}, err
	}

	if requesterID != cfg.ManagerID {
		latest, ok := status.Latest(deliveries)
		if !ok || latest.CourierID != requesterID {
			return OrderView{}, apperr.Unauthorized("requester %d may not view order %d", requesterID, orderID)
		}
	}

	return orderView(o, deliveries, cfg), nil
}

// UpdateOrder changes an order's mutable fields. Legal only while the
// derived status is still Open; the placement time never changes, and a
// changed address is re-geocoded. Admin only.
func (s *Service) UpdateOrder(ctx context.Context, requesterID int, o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return err
	}

	existing, err := s.orders.Get(o.ID)
	if err != nil {
		return err
	}

	deliveries, err := s.orderDeliveries(o.ID)
	if err != nil {
		return err
	}
	var latest *model.Delivery
	if d, ok := status.Latest(deliveries); ok {
		latest = &d
	}
	if st := status.ForOrder(latest); st != model.StatusOpen {
		return apperr.InvalidOperation("order %d is %s and can no longer be updated", o.ID, st)
	}

	if err := validateName(o.CustomerName); err != nil {
		return err
	}
	if err := validatePhone(o.CustomerPhone); err != nil {
		return err
	}
	if o.Address == "" {
		return apperr.Validation("order address cannot be empty")
	}

	updated := o
	updated.PlacedAt = existing.PlacedAt
	if o.Address != existing.Address {
		lat, lon, err := s.geocoder.ResolveCoordinates(ctx, o.Address)
		if err != nil {
			return err
		}
		updated.Lat, updated.Lon = lat, lon
	} else {
		updated.Lat, updated.Lon = existing.Lat, existing.Lon
	}

	if err := s.orders.Update(updated); err != nil {
		return err
	}

	s.notify(events.TopicOrder, updated.ID, cfg)
	s.notify(events.TopicOrders, 0, cfg)
	return nil
}

// CancelOrder cancels an order that is Open or InProgress. An open order
// gets a synthetic canceled delivery with no courier, so the derivation
// sees a terminal record; an in-progress order has its active delivery
// completed in place with a canceled outcome. Admin only.
func (s *Service) CancelOrder(requesterID, orderID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return err
	}

	if _, err := s.orders.Get(orderID); err != nil {
		return err
	}
	deliveries, err := s.orderDeliveries(orderID)
	if err != nil {
		return err
	}

	var latest *model.Delivery
	if d, ok := status.Latest(deliveries); ok {
		latest = &d
	}
	now := cfg.Clock
	outcome := model.OutcomeCanceled

	switch st := status.ForOrder(latest); st {
	case model.StatusOpen:
		synthetic := model.Delivery{
			OrderID:     orderID,
			CourierID:   0,
			StartedAt:   now,
			CompletedAt: &now,
			Outcome:     &outcome,
		}
		if _, err := s.deliveries.Create(synthetic); err != nil {
			return err
		}
	case model.StatusInProgress:
		canceled := *latest
		canceled.CompletedAt = &now
		canceled.Outcome = &outcome
		if err := s.deliveries.Update(canceled); err != nil {
			return err
		}
	default:
		return apperr.InvalidOperation("order %d is %s and cannot be canceled", orderID, st)
	}

	metrics.OrdersCanceledTotal.Inc()
	s.notify(events.TopicOrder, orderID, cfg)
	s.notify(events.TopicOrders, 0, cfg)
	return nil
}

// DeleteOrder always fails: orders are permanent audit records. The
// operation exists only to assert that invariant.
func (s *Service) DeleteOrder(requesterID, orderID int) error {
	if _, err := s.adminOnly(requesterID); err != nil {
		return err
	}
	return apperr.InvalidOperation("order %d is a permanent record and cannot be deleted", orderID)
}

// AssignOrder hands an open order to a courier: the actual route distance
// is computed for the courier's transport and a new active delivery is
// recorded, which flips the derived status to InProgress. Admin only.
func (s *Service) AssignOrder(ctx context.Context, requesterID, courierID, orderID int) (model.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return model.Delivery{}, err
	}

	courier, err := s.couriers.Get(courierID)
	if err != nil {
		return model.Delivery{}, err
	}
	if !courier.Active {
		return model.Delivery{}, apperr.InvalidOperation("courier %d is not active", courierID)
	}

	order, err := s.orders.Get(orderID)
	if err != nil {
		return model.Delivery{}, err
	}
	deliveries, err := s.orderDeliveries(orderID)
	if err != nil {
		return model.Delivery{}, err
	}
	var latest *model.Delivery
	if d, ok := status.Latest(deliveries); ok {
		latest = &d
	}
	if st := status.ForOrder(latest); st != model.StatusOpen {
		return model.Delivery{}, apperr.InvalidOperation("order %d is %s and cannot be assigned", orderID, st)
	}

	km := geo.ActualDistanceKm(ctx, s.router, cfg.CompanyLat, cfg.CompanyLon, order.Lat, order.Lon, courier.Type)

	created, err := s.deliveries.Create(model.Delivery{
		OrderID:    orderID,
		CourierID:  courierID,
		Type:       courier.Type,
		StartedAt:  cfg.Clock,
		DistanceKm: &km,
	})
	if err != nil {
		return model.Delivery{}, err
	}

	metrics.DeliveriesAssignedTotal.Inc()
	s.notify(events.TopicOrder, orderID, cfg)
	s.notify(events.TopicOrders, 0, cfg)
	return created, nil
}

// CompleteDelivery marks a delivery as supplied. The owning courier or the
// admin may complete it; completing someone else's or an already finished
// delivery fails.
func (s *Service) CompleteDelivery(requesterID, courierID, deliveryID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOrSelf(requesterID, courierID)
	if err != nil {
		return err
	}

	d, err := s.deliveries.Get(deliveryID)
	if err != nil {
		return err
	}
	if d.CourierID != courierID {
		return apperr.InvalidOperation("delivery %d belongs to courier %d", deliveryID, d.CourierID)
	}
	if !d.Active() {
		return apperr.InvalidOperation("delivery %d is already completed", deliveryID)
	}

	now := cfg.Clock
	outcome := model.OutcomeSupplied
	d.CompletedAt = &now
	d.Outcome = &outcome
	if err := s.deliveries.Update(d); err != nil {
		return err
	}

	metrics.DeliveriesCompletedTotal.Inc()
	s.notify(events.TopicOrder, d.OrderID, cfg)
	s.notify(events.TopicOrders, 0, cfg)
	return nil
}

// Summary counts all orders by derived status and schedule. Admin only.
func (s *Service) Summary(requesterID int) (Summary, error) {
	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return Summary{}, err
	}

	views, err := s.orderViews(cfg, OrderFilter{}, nil)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Cells: map[model.OrderStatus]map[model.ScheduleStatus]int{}}
	for _, v := range views {
		if sum.Cells[v.Status] == nil {
			sum.Cells[v.Status] = map[model.ScheduleStatus]int{}
		}
		sum.Cells[v.Status][v.Schedule]++
		sum.Total++
	}
	return sum, nil
}

// ListOpenOrders returns every order whose derived status is Open. Admin
// only.
func (s *Service) ListOpenOrders(requesterID int, filter OrderFilter, sortBy OrderSort) ([]OrderView, error) {
	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return nil, err
	}

	open := model.StatusOpen
	views, err := s.orderViews(cfg, filter, &open)
	if err != nil {
		return nil, err
	}
	sortOrderViews(views, sortBy)
	return views, nil
}

// EligibleOrders returns the open orders a courier may take: within the
// company-wide range and within the courier's personal range when one is
// set. Admin or the courier themself.
func (s *Service) EligibleOrders(requesterID, courierID int, sortBy OrderSort) ([]OrderView, error) {
	cfg, err := s.adminOrSelf(requesterID, courierID)
	if err != nil {
		return nil, err
	}

	courier, err := s.couriers.Get(courierID)
	if err != nil {
		return nil, err
	}

	open := model.StatusOpen
	views, err := s.orderViews(cfg, OrderFilter{}, &open)
	if err != nil {
		return nil, err
	}

	eligible := views[:0]
	for _, v := range views {
		if cfg.MaxRangeKm != nil && v.AirDistanceKm > *cfg.MaxRangeKm {
			continue
		}
		if courier.MaxDistanceKm != nil && v.AirDistanceKm > *courier.MaxDistanceKm {
			continue
		}
		eligible = append(eligible, v)
	}

	sortOrderViews(eligible, sortBy)
	return eligible, nil
}

// ClosedDeliveries returns a courier's finished deliveries, most recent
// first. Admin or the courier themself.
func (s *Service) ClosedDeliveries(requesterID, courierID int) ([]ClosedDeliveryView, error) {
	if _, err := s.adminOrSelf(requesterID, courierID); err != nil {
		return nil, err
	}

	closed, err := s.deliveries.List(func(d model.Delivery) bool {
		return d.CourierID == courierID && !d.Active()
	})
	if err != nil {
		return nil, err
	}

	views := make([]ClosedDeliveryView, 0, len(closed))
	for _, d := range closed {
		order, err := s.orders.Get(d.OrderID)
		if err != nil {
			return nil, err
		}
		views = append(views, ClosedDeliveryView{
			DeliveryID: d.ID,
			OrderID:    d.OrderID,
			OrderType:  order.Type,
			Address:    order.Address,
			Type:       d.Type,
			DistanceKm: d.DistanceKm,
			Duration:   d.CompletedAt.Sub(d.StartedAt),
			Outcome:    *d.Outcome,
		})
	}

	sort.SliceStable(views, func(i, j int) bool { return views[i].DeliveryID > views[j].DeliveryID })
	return views, nil
}

// orderViews derives the view of every order, optionally keeping only one
// status.
func (s *Service) orderViews(cfg model.Config, filter OrderFilter, only *model.OrderStatus) ([]OrderView, error) {
	orders, err := s.orders.List(filter.matches)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		deliveries, err := s.orderDeliveries(o.ID)
		if err != nil {
			return nil, err
		}
		v := orderView(o, deliveries, cfg)
		if only != nil && v.Status != *only {
			continue
		}
		views = append(views, v)
	}
	return views, nil
}
