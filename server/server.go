package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/kippino/pkg/domain"
	"github.com/umputun/kippino/pkg/repository"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/kpi_store.go -pkg mocks -skip-ensure -fmt goimports . KPIStore
//go:generate moq -out mocks/answer_store.go -pkg mocks -skip-ensure -fmt goimports . AnswerStore
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server exposes the read-only status API: tracked kpis, collected answers,
// users with open questions, plus a reload trigger for the scheduler.
type Server struct {
	config    ConfigProvider
	kpis      KPIStore
	answers   AnswerStore
	scheduler Scheduler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// KPIStore provides kpi definitions
type KPIStore interface {
	ListKPIs(ctx context.Context) ([]domain.KPI, error)
}

// AnswerStore provides collected answers
type AnswerStore interface {
	ListAnswers(ctx context.Context) ([]repository.AnswerRecord, error)
}

// Scheduler interface for on-demand operations
type Scheduler interface {
	Trigger()
	ActiveUsers() []string
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, kpis KPIStore, answers AnswerStore, scheduler Scheduler, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		kpis:      kpis,
		answers:   answers,
		scheduler: scheduler,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("kippino", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /kpis", s.kpisHandler)
		r.HandleFunc("GET /answers", s.answersHandler)
		r.HandleFunc("GET /pending", s.pendingHandler)
		r.HandleFunc("POST /reload", s.reloadHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"pending": len(s.scheduler.ActiveUsers()),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// kpiInfo is the JSON shape of a kpi definition
type kpiInfo struct {
	Name      string `json:"name"`
	Question  string `json:"question"`
	Owner     string `json:"owner"`
	Frequency string `json:"frequency"`
	Since     string `json:"since"`
	Enabled   bool   `json:"enabled"`
}

// kpisHandler returns all kpi definitions
func (s *Server) kpisHandler(w http.ResponseWriter, r *http.Request) {
	kpis, err := s.kpis.ListKPIs(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list kpis: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]kpiInfo, 0, len(kpis))
	for _, kpi := range kpis {
		res = append(res, kpiInfo{
			Name:      kpi.Name,
			Question:  kpi.Question,
			Owner:     kpi.Owner,
			Frequency: kpi.Frequency.Label(),
			Since:     kpi.Since.Format(domain.DateLayout),
			Enabled:   kpi.Enabled,
		})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// answerInfo is the JSON shape of a collected answer
type answerInfo struct {
	Timestamp time.Time `json:"timestamp"`
	KPI       string    `json:"kpi"`
	Value     float64   `json:"value"`
	ForDate   string    `json:"for_date"`
	Source    string    `json:"source"`
}

// answersHandler returns collected answers, most recent first
func (s *Server) answersHandler(w http.ResponseWriter, r *http.Request) {
	answers, err := s.answers.ListAnswers(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list answers: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]answerInfo, 0, len(answers))
	for _, rec := range answers {
		res = append(res, answerInfo{
			Timestamp: rec.Timestamp,
			KPI:       rec.KPI,
			Value:     rec.Value,
			ForDate:   rec.ForDate.Format(domain.DateLayout),
			Source:    rec.Source,
		})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// pendingHandler returns users with a conversation in flight
func (s *Server) pendingHandler(w http.ResponseWriter, r *http.Request) {
	users := s.scheduler.ActiveUsers()
	if users == nil {
		users = []string{}
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"pending": users})
}

// reloadHandler kicks off a scheduling pass
func (s *Server) reloadHandler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.Trigger()
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "reload scheduled"})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
