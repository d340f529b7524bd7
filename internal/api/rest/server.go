package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/delphi/internal/analysis"
)

// Server represents the REST API server
type Server struct {
	port    int
	server  *http.Server
	handler *Handler
	router  *mux.Router
}

// NewServer creates a new REST API server over an analyzer
func NewServer(port int, analyzer *analysis.Analyzer) *Server {
	handler := NewHandler(analyzer)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/markets", handler.GetMarkets).Methods("GET")
	api.HandleFunc("/props/{market}", handler.GetPropTable).Methods("GET")

	api.HandleFunc("/players/{playerID}/gamelog", handler.GetPlayerGameLog).Methods("GET")
	api.HandleFunc("/teams/{teamID}/roster", handler.GetTeamRoster).Methods("GET")

	api.HandleFunc("/defense/{stat}/ranks", handler.GetDefenseRanks).Methods("GET")
	api.HandleFunc("/diagnostics", handler.GetDiagnostics).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		router:  router,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Swap serves a freshly built analyzer from now on
func (s *Server) Swap(analyzer *analysis.Analyzer) {
	s.handler.SetAnalyzer(analyzer)
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
