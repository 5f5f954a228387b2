package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/models"
)

// Server exposes the analysis API. It owns no engine state; everything goes
// through the Service.
type Server struct {
	svc    *Service
	srv    *http.Server
	logger *log.Logger
}

func New(svc *Service, addr string, logger *log.Logger) (*Server, error) {
	if addr == "" {
		return nil, fmt.Errorf("address is required")
	}

	s := &Server{
		svc:    svc,
		logger: logger,
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyses", s.createAnalysis).Methods(http.MethodPost)
	api.HandleFunc("/analyses", s.listAnalyses).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}", s.getAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}", s.deleteAnalysis).Methods(http.MethodDelete)
	api.HandleFunc("/analyses/{id}/groups", s.getGroups).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}/settings", s.updateSettings).Methods(http.MethodPut)
	api.HandleFunc("/analyses/{id}/download", s.downloadCSV).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start runs the server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = s.srv.Shutdown(shutdownCtx)
	}()

	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()

		next.ServeHTTP(w, r)

		if s.logger != nil {
			s.logger.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(t0))
		}
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) createAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusUnprocessableEntity, models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})
		return
	}

	analysis := models.Analysis{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Date:   time.Now().UTC(),
		Status: models.StatusPending,
		Data:   req.AnalysisData,
	}

	if err := s.svc.Create(r.Context(), &analysis); err != nil {
		renderJSON(w, http.StatusUnprocessableEntity, models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})
		return
	}

	renderJSON(w, http.StatusCreated, models.CreateAnalysisResponse{ID: analysis.ID})
}

func (s *Server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := s.svc.All(r.Context())
	if err != nil {
		renderJSON(w, http.StatusInternalServerError, models.APIError{Code: http.StatusInternalServerError, Message: err.Error()})
		return
	}

	renderJSON(w, http.StatusOK, analyses)
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		renderNotFoundOrError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, analysis)
}

func (s *Server) deleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		renderNotFoundOrError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getGroups returns the computed groups. The optional modes query parameter
// (comma separated, e.g. ?modes=walk,car) restricts items to those
// reachable by at least one of the given modes.
func (s *Server) getGroups(w http.ResponseWriter, r *http.Request) {
	modes, err := parseModes(r.URL.Query().Get("modes"))
	if err != nil {
		renderJSON(w, http.StatusUnprocessableEntity, models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})
		return
	}

	groups, err := s.svc.Groups(r.Context(), mux.Vars(r)["id"], modes)
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			renderJSON(w, http.StatusConflict, models.APIError{Code: http.StatusConflict, Message: err.Error()})
			return
		}

		renderNotFoundOrError(w, err)

		return
	}

	renderJSON(w, http.StatusOK, groups)
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var settings entities.DisplaySettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		renderJSON(w, http.StatusUnprocessableEntity, models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})
		return
	}

	if err := s.svc.UpdateSettings(r.Context(), mux.Vars(r)["id"], &settings); err != nil {
		renderNotFoundOrError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) downloadCSV(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	groups, err := s.svc.Groups(r.Context(), id, nil)
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			renderJSON(w, http.StatusConflict, models.APIError{Code: http.StatusConflict, Message: err.Error()})
			return
		}

		renderNotFoundOrError(w, err)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".csv"))

	if err := WriteGroupsCSV(w, groups); err != nil && s.logger != nil {
		s.logger.Printf("csv download for %s aborted: %v", id, err)
	}
}

func parseModes(raw string) ([]entities.TransportMode, error) {
	if raw == "" {
		return nil, nil
	}

	var modes []entities.TransportMode

	for _, part := range strings.Split(raw, ",") {
		mode := entities.TransportMode(strings.TrimSpace(part))
		if !mode.Valid() {
			return nil, fmt.Errorf("invalid transport mode: %s", mode)
		}

		modes = append(modes, mode)
	}

	return modes, nil
}

func renderNotFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrNotFound) {
		renderJSON(w, http.StatusNotFound, models.APIError{Code: http.StatusNotFound, Message: err.Error()})
		return
	}

	renderJSON(w, http.StatusInternalServerError, models.APIError{Code: http.StatusInternalServerError, Message: err.Error()})
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}
