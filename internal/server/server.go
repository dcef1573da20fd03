// Package server exposes the delivery operations over HTTP. Requests are
// authenticated with basic auth against the manager or courier credentials;
// authorization per operation stays in the service layer, keyed by the
// requester id resolved here.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"deliverytrack/internal/apperr"
	"deliverytrack/internal/metrics"
	"deliverytrack/internal/service"
)

type ctxKey int

const requesterKey ctxKey = iota

type Server struct {
	svc    *service.Service
	server *http.Server
	log    *zap.Logger
}

func New(svc *service.Service, log *zap.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("port", port))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Routes builds the full router. Exported so tests can drive it through
// httptest without a listening socket.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(s.basicAuthMiddleware)

	api.HandleFunc("/clock", s.handleGetClock).Methods(http.MethodGet)
	api.HandleFunc("/clock", s.handleSetClock).Methods(http.MethodPut)
	api.HandleFunc("/clock/advance", s.handleAdvanceClock).Methods(http.MethodPost)

	api.HandleFunc("/config", s.handleGetConfig).Methods(http.MethodGet)
	api.HandleFunc("/config", s.handleSetConfig).Methods(http.MethodPut)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)

	api.HandleFunc("/couriers", s.handleCreateCourier).Methods(http.MethodPost)
	api.HandleFunc("/couriers", s.handleListCouriers).Methods(http.MethodGet)
	api.HandleFunc("/couriers/{id:[0-9]+}", s.handleGetCourier).Methods(http.MethodGet)
	api.HandleFunc("/couriers/{id:[0-9]+}", s.handleUpdateCourier).Methods(http.MethodPut)
	api.HandleFunc("/couriers/{id:[0-9]+}", s.handleDeleteCourier).Methods(http.MethodDelete)
	api.HandleFunc("/couriers/{id:[0-9]+}/eligible-orders", s.handleEligibleOrders).Methods(http.MethodGet)
	api.HandleFunc("/couriers/{id:[0-9]+}/closed-deliveries", s.handleClosedDeliveries).Methods(http.MethodGet)

	api.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/open", s.handleListOpenOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/summary", s.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id:[0-9]+}", s.handleGetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id:[0-9]+}", s.handleUpdateOrder).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id:[0-9]+}", s.handleDeleteOrder).Methods(http.MethodDelete)
	api.HandleFunc("/orders/{id:[0-9]+}/cancel", s.handleCancelOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/assign", s.handleAssignOrder).Methods(http.MethodPost)

	api.HandleFunc("/deliveries/{id:[0-9]+}/complete", s.handleCompleteDelivery).Methods(http.MethodPost)

	return r
}

// basicAuthMiddleware resolves the requester from basic auth. The username
// is the numeric requester id; the password is checked by the service
// against the matching credential.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "credentials required")
			return
		}

		id, err := strconv.Atoi(username)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "username must be a numeric id")
			return
		}

		if _, err := s.svc.Login(id, password); err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requesterKey, id)))
	})
}

func requesterID(r *http.Request) int {
	id, _ := r.Context().Value(requesterKey).(int)
	return id
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondAppError maps service error kinds to HTTP statuses.
func (s *Server) respondAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidOperation):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}

	op := r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			op = tmpl
		}
	}
	metrics.OperationErrorsTotal.WithLabelValues(r.Method + " " + op).Inc()
	respondError(w, status, err.Error())
}
