package service

import (
	"deliverytrack/internal/apperr"
	"deliverytrack/internal/events"
	"deliverytrack/internal/model"
	"deliverytrack/internal/status"
)

// Login resolves a requester's role from id and password. The manager id
// with the manager credential logs in as admin; a courier id with its own
// credential logs in as courier.
func (s *Service) Login(id int, password string) (model.Role, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return "", err
	}

	if id == cfg.ManagerID && checkPassword(cfg.ManagerPasswordHash, password) {
		return model.RoleAdmin, nil
	}

	c, err := s.couriers.Get(id)
	if err != nil {
		return "", err
	}
	if !checkPassword(c.PasswordHash, password) {
		return "", apperr.Unauthorized("incorrect password for courier %d", id)
	}
	return model.RoleCourier, nil
}

// CreateCourier registers a new courier. Admin only.
func (s *Service) CreateCourier(requesterID int, c model.Courier, password string) (model.Courier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return model.Courier{}, err
	}

	if err := validateName(c.FullName); err != nil {
		return model.Courier{}, err
	}
	if err := validatePhone(c.Phone); err != nil {
		return model.Courier{}, err
	}
	if err := validateEmail(c.Email); err != nil {
		return model.Courier{}, err
	}
	if err := validateStrongPassword(password); err != nil {
		return model.Courier{}, err
	}
	if c.MaxDistanceKm != nil && *c.MaxDistanceKm <= 0 {
		return model.Courier{}, apperr.Validation("personal delivery distance must be positive")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return model.Courier{}, err
	}
	c.PasswordHash = hash
	if c.EmployedAt.IsZero() {
		c.EmployedAt = cfg.Clock
	}

	created, err := s.couriers.Create(c)
	if err != nil {
		return model.Courier{}, err
	}

	s.notify(events.TopicCouriers, 0, cfg)
	return created, nil
}

// GetCourier returns one courier. Admin or the courier themself.
func (s *Service) GetCourier(requesterID, courierID int) (model.Courier, error) {
	if _, err := s.adminOrSelf(requesterID, courierID); err != nil {
		return model.Courier{}, err
	}
	return s.couriers.Get(courierID)
}

// UpdateCourier applies changes to a courier. The admin may change
// everything except the id and employment start; a courier may change only
// their own contact details, personal range and password.
func (s *Service) UpdateCourier(requesterID int, c model.Courier, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOrSelf(requesterID, c.ID)
	if err != nil {
		return err
	}

	existing, err := s.couriers.Get(c.ID)
	if err != nil {
		return err
	}

	if err := validatePhone(c.Phone); err != nil {
		return err
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.MaxDistanceKm != nil && *c.MaxDistanceKm <= 0 {
		return apperr.Validation("personal delivery distance must be positive")
	}

	updated := existing
	updated.Phone = c.Phone
	updated.Email = c.Email
	updated.MaxDistanceKm = c.MaxDistanceKm

	if requesterID == cfg.ManagerID {
		if err := validateName(c.FullName); err != nil {
			return err
		}
		updated.FullName = c.FullName
		updated.Active = c.Active
		updated.Type = c.Type
	}

	if newPassword != "" {
		if err := validateStrongPassword(newPassword); err != nil {
			return err
		}
		hash, err := hashPassword(newPassword)
		if err != nil {
			return err
		}
		updated.PasswordHash = hash
	}

	if err := s.couriers.Update(updated); err != nil {
		return err
	}

	s.notify(events.TopicCourier, updated.ID, cfg)
	s.notify(events.TopicCouriers, 0, cfg)
	return nil
}

// DeleteCourier removes a courier that owns no deliveries. Admin only.
func (s *Service) DeleteCourier(requesterID, courierID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return err
	}

	if _, err := s.couriers.Get(courierID); err != nil {
		return err
	}

	owned, err := s.deliveries.List(func(d model.Delivery) bool { return d.CourierID == courierID })
	if err != nil {
		return err
	}
	if len(owned) > 0 {
		return apperr.InvalidOperation("courier %d owns %d deliveries and cannot be deleted", courierID, len(owned))
	}

	if err := s.couriers.Delete(courierID); err != nil {
		return err
	}

	s.notify(events.TopicCouriers, 0, cfg)
	return nil
}

// ListCouriers returns courier views with per-courier completion counts and
// the order currently in progress, if any. Admin only.
func (s *Service) ListCouriers(requesterID int, onlyActive *bool, sortBy CourierSort) ([]CourierView, error) {
	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return nil, err
	}

	couriers, err := s.couriers.List(func(c model.Courier) bool {
		return onlyActive == nil || c.Active == *onlyActive
	})
	if err != nil {
		return nil, err
	}

	views := make([]CourierView, 0, len(couriers))
	for _, c := range couriers {
		view, err := s.courierView(c, cfg)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	sortCourierViews(views, sortBy)
	return views, nil
}

func (s *Service) courierView(c model.Courier, cfg model.Config) (CourierView, error) {
	view := CourierView{
		ID:            c.ID,
		FullName:      c.FullName,
		Phone:         c.Phone,
		Email:         c.Email,
		Active:        c.Active,
		Type:          c.Type,
		EmployedAt:    c.EmployedAt,
		MaxDistanceKm: c.MaxDistanceKm,
	}

	owned, err := s.deliveries.List(func(d model.Delivery) bool { return d.CourierID == c.ID })
	if err != nil {
		return view, err
	}

	for _, d := range owned {
		if d.Active() {
			continue
		}
		order, err := s.orders.Get(d.OrderID)
		if err != nil {
			return view, err
		}
		if d.CompletedAt.After(status.Deadline(order, cfg)) {
			view.CompletedLate++
		} else {
			view.CompletedOnTime++
		}
	}

	// The current order is the one behind the courier's active delivery,
	// provided that delivery is still the authoritative one for its order.
	for _, d := range owned {
		if !d.Active() {
			continue
		}
		siblings, err := s.deliveries.List(func(x model.Delivery) bool { return x.OrderID == d.OrderID })
		if err != nil {
			return view, err
		}
		if latest, ok := status.Latest(siblings); ok && latest.ID == d.ID {
			id := d.OrderID
			view.CurrentOrderID = &id
			break
		}
	}

	return view, nil
}
