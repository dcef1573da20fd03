// Package service implements the business operations over the entity
// stores: authorization, validation, status-checked lifecycle transitions,
// courier matching and the read-side projections. Every mutating operation
// runs under one coarse service lock, because store updates are whole-record
// replacements with no transaction support underneath.
package service

import (
	"sync"

	"go.uber.org/zap"

	"deliverytrack/internal/apperr"
	"deliverytrack/internal/events"
	"deliverytrack/internal/geo"
	"deliverytrack/internal/model"
	"deliverytrack/internal/store"
)

type Service struct {
	mu sync.Mutex

	couriers   store.Store[model.Courier]
	orders     store.Store[model.Order]
	deliveries store.Store[model.Delivery]
	config     store.ConfigStore

	geocoder geo.Geocoder
	router   geo.Router

	bus *events.Bus
	log *zap.Logger
}

func New(
	couriers store.Store[model.Courier],
	orders store.Store[model.Order],
	deliveries store.Store[model.Delivery],
	config store.ConfigStore,
	geocoder geo.Geocoder,
	router geo.Router,
	bus *events.Bus,
	log *zap.Logger,
) *Service {
	return &Service{
		couriers:   couriers,
		orders:     orders,
		deliveries: deliveries,
		config:     config,
		geocoder:   geocoder,
		router:     router,
		bus:        bus,
		log:        log,
	}
}

// adminOnly loads the configuration and verifies the requester is the
// manager.
func (s *Service) adminOnly(requesterID int) (model.Config, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return cfg, err
	}
	if requesterID != cfg.ManagerID {
		return cfg, apperr.Unauthorized("only the admin may perform this action")
	}
	return cfg, nil
}

// adminOrSelf verifies the requester is the manager or the courier whose
// resource is being touched.
func (s *Service) adminOrSelf(requesterID, courierID int) (model.Config, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return cfg, err
	}
	if requesterID != cfg.ManagerID && requesterID != courierID {
		return cfg, apperr.Unauthorized("requester %d may not act for courier %d", requesterID, courierID)
	}
	return cfg, nil
}

func (s *Service) notify(topic events.Topic, id int, at model.Config) {
	s.bus.Publish(events.Event{Topic: topic, ID: id, At: at.Clock})
}
