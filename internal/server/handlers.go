package server

import (
	"encoding/json"
	"net/http"
	"time"

	"deliverytrack/internal/model"
	"deliverytrack/internal/service"
)

func (s *Server) handleGetClock(w http.ResponseWriter, r *http.Request) {
	clock, err := s.svc.Clock()
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]time.Time{"clock": clock})
}

func (s *Server) handleSetClock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Clock time.Time `json:"clock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.SetClock(requesterID(r), req.Clock); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]time.Time{"clock": req.Clock})
}

func (s *Server) handleAdvanceClock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Unit model.TimeUnit `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clock, err := s.svc.AdvanceClock(requesterID(r), req.Unit)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]time.Time{"clock": clock})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.Config(requesterID(r))
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	cfg.ManagerPasswordHash = ""
	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		model.Config
		ManagerPassword string `json:"manager_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.SetConfig(r.Context(), requesterID(r), req.Config, req.ManagerPassword); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "configuration updated"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reset(requesterID(r)); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "data reset"})
}

func (s *Server) handleCreateCourier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		model.Courier
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.svc.CreateCourier(requesterID(r), req.Courier, req.Password)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	created.PasswordHash = ""
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListCouriers(w http.ResponseWriter, r *http.Request) {
	var onlyActive *bool
	if v := r.URL.Query().Get("active"); v == "true" || v == "false" {
		b := v == "true"
		onlyActive = &b
	}
	sortBy := service.CourierSort(r.URL.Query().Get("sort"))

	views, err := s.svc.ListCouriers(requesterID(r), onlyActive, sortBy)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetCourier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid courier id")
		return
	}

	c, err := s.svc.GetCourier(requesterID(r), id)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	c.PasswordHash = ""
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCourier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid courier id")
		return
	}

	var req struct {
		model.Courier
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = id

	if err := s.svc.UpdateCourier(requesterID(r), req.Courier, req.Password); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "courier updated"})
}

func (s *Server) handleDeleteCourier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid courier id")
		return
	}

	if err := s.svc.DeleteCourier(requesterID(r), id); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "courier deleted"})
}

func (s *Server) handleEligibleOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid courier id")
		return
	}
	sortBy := service.OrderSort(r.URL.Query().Get("sort"))

	views, err := s.svc.EligibleOrders(requesterID(r), id, sortBy)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleClosedDeliveries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid courier id")
		return
	}

	views, err := s.svc.ClosedDeliveries(requesterID(r), id)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.Order
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.svc.CreateOrder(r.Context(), requesterID(r), req)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListOpenOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter service.OrderFilter
	if v := q.Get("type"); v != "" {
		t := model.OrderType(v)
		filter.Type = &t
	}
	if v := q.Get("fragile"); v == "true" || v == "false" {
		b := v == "true"
		filter.Fragile = &b
	}
	sortBy := service.OrderSort(q.Get("sort"))

	views, err := s.svc.ListOpenOrders(requesterID(r), filter, sortBy)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Summary(requesterID(r))
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	view, err := s.svc.GetOrder(requesterID(r), id)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req model.Order
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = id

	if err := s.svc.UpdateOrder(r.Context(), requesterID(r), req); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := s.svc.DeleteOrder(requesterID(r), id); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := s.svc.CancelOrder(requesterID(r), id); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "order canceled"})
}

func (s *Server) handleAssignOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req struct {
		CourierID int `json:"courier_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := s.svc.AssignOrder(r.Context(), requesterID(r), req.CourierID, id)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

func (s *Server) handleCompleteDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid delivery id")
		return
	}

	var req struct {
		CourierID int `json:"courier_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CourierID == 0 {
		req.CourierID = requesterID(r)
	}

	if err := s.svc.CompleteDelivery(requesterID(r), req.CourierID, id); err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "delivery completed"})
}
