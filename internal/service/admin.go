package service

import (
	"context"
	"time"

	"deliverytrack/internal/apperr"
	"deliverytrack/internal/events"
	"deliverytrack/internal/model"
)

// Clock returns the current application time. Anyone may read it.
func (s *Service) Clock() (time.Time, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return time.Time{}, err
	}
	return cfg.Clock, nil
}

// SetClock moves the application clock to an explicit value.
func (s *Service) SetClock(requesterID int, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return err
	}

	cfg.Clock = t
	if err := s.config.Put(cfg); err != nil {
		return err
	}
	s.notify(events.TopicClock, 0, cfg)
	return nil
}

// AdvanceClock moves the application clock forward by one unit.
func (s *Service) AdvanceClock(requesterID int, unit model.TimeUnit) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.adminOnly(requesterID)
	if err != nil {
		return time.Time{}, err
	}

	switch unit {
	case model.UnitMinute:
		cfg.Clock = cfg.Clock.Add(time.Minute)
	case model.UnitHour:
		cfg.Clock = cfg.Clock.Add(time.Hour)
	case model.UnitDay:
		cfg.Clock = cfg.Clock.AddDate(0, 0, 1)
	case model.UnitYear:
		cfg.Clock = cfg.Clock.AddDate(1, 0, 0)
	default:
		return time.Time{}, apperr.Validation("unknown time unit %q", unit)
	}

	if err := s.config.Put(cfg); err != nil {
		return time.Time{}, err
	}
	s.notify(events.TopicClock, 0, cfg)
	return cfg.Clock, nil
}

// Config returns the business configuration. Admin only; the manager
// password hash is part of it.
func (s *Service) Config(requesterID int) (model.Config, error) {
	return s.adminOnly(requesterID)
}

// SetConfig applies a validated configuration update. Fields are diffed
// against the current values; if the company address changed it is
// re-geocoded, and a non-empty managerPassword replaces the stored hash
// after a strength check. One config event fires if anything changed; a
// clock change additionally fires a clock event.
func (s *Service) SetConfig(ctx context.Context, requesterID int, next model.Config, managerPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.adminOnly(requesterID)
	if err != nil {
		return err
	}

	changed := false
	clockChanged := false

	if managerPassword != "" {
		if err := validateStrongPassword(managerPassword); err != nil {
			return err
		}
		hash, err := hashPassword(managerPassword)
		if err != nil {
			return err
		}
		cur.ManagerPasswordHash = hash
		changed = true
	}

	if next.ManagerID != 0 && next.ManagerID != cur.ManagerID {
		cur.ManagerID = next.ManagerID
		changed = true
	}

	if next.CompanyAddress != cur.CompanyAddress {
		if next.CompanyAddress != "" {
			lat, lon, err := s.geocoder.ResolveCoordinates(ctx, next.CompanyAddress)
			if err != nil {
				return apperr.Validation("failed to resolve company address: %v", err)
			}
			cur.CompanyLat, cur.CompanyLon = lat, lon
		}
		cur.CompanyAddress = next.CompanyAddress
		changed = true
	}

	if !eqFloatPtr(next.MaxRangeKm, cur.MaxRangeKm) {
		cur.MaxRangeKm = next.MaxRangeKm
		changed = true
	}

	speeds := []struct {
		dst *float64
		src float64
	}{
		{&cur.SpeedCarKmh, next.SpeedCarKmh},
		{&cur.SpeedMotorcycleKmh, next.SpeedMotorcycleKmh},
		{&cur.SpeedBicycleKmh, next.SpeedBicycleKmh},
		{&cur.SpeedFootKmh, next.SpeedFootKmh},
	}
	for _, sp := range speeds {
		if sp.src < 0 {
			return apperr.Validation("average speed cannot be negative")
		}
		if *sp.dst != sp.src {
			*sp.dst = sp.src
			changed = true
		}
	}

	if next.MaxDeliveryTime != cur.MaxDeliveryTime {
		if next.MaxDeliveryTime <= 0 {
			return apperr.Validation("max delivery time must be positive")
		}
		cur.MaxDeliveryTime = next.MaxDeliveryTime
		changed = true
	}
	if next.RiskWindow != cur.RiskWindow {
		if next.RiskWindow < 0 {
			return apperr.Validation("risk window cannot be negative")
		}
		cur.RiskWindow = next.RiskWindow
		changed = true
	}
	if next.InactivityWindow != cur.InactivityWindow {
		cur.InactivityWindow = next.InactivityWindow
		changed = true
	}
	if next.RiskRule != "" && next.RiskRule != cur.RiskRule {
		if next.RiskRule != model.RiskByDeadline && next.RiskRule != model.RiskByEstimate {
			return apperr.Validation("unknown risk rule %q", next.RiskRule)
		}
		cur.RiskRule = next.RiskRule
		changed = true
	}

	if !next.Clock.IsZero() && !next.Clock.Equal(cur.Clock) {
		cur.Clock = next.Clock
		changed = true
		clockChanged = true
	}

	if !changed {
		return nil
	}
	if err := s.config.Put(cur); err != nil {
		return err
	}
	if clockChanged {
		s.notify(events.TopicClock, 0, cur)
	}
	s.notify(events.TopicConfig, 0, cur)
	return nil
}

// Reset wipes all entities and restores the default configuration, keeping
// the manager identity and credential so the admin stays logged in.
func (s *Service) Reset(requesterID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.adminOnly(requesterID)
	if err != nil {
		return err
	}

	if err := s.couriers.DeleteAll(); err != nil {
		return err
	}
	if err := s.orders.DeleteAll(); err != nil {
		return err
	}
	if err := s.deliveries.DeleteAll(); err != nil {
		return err
	}

	cfg := model.DefaultConfig(time.Now().UTC())
	cfg.ManagerID = cur.ManagerID
	cfg.ManagerPasswordHash = cur.ManagerPasswordHash
	if err := s.config.Put(cfg); err != nil {
		return err
	}

	s.notify(events.TopicCouriers, 0, cfg)
	s.notify(events.TopicOrders, 0, cfg)
	s.notify(events.TopicClock, 0, cfg)
	s.notify(events.TopicConfig, 0, cfg)
	return nil
}

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
