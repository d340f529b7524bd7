package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/fortuna/delphi/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server pushes prop tables to websocket subscribers
type Server struct {
	server *http.Server
	mux    *http.ServeMux
	hub    *Hub
	logger zerolog.Logger

	mu     sync.RWMutex
	latest map[string][]byte
}

// NewServer creates a new WebSocket server and starts its hub
func NewServer(logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "websocket").Logger()
	s := &Server{
		hub:    NewHub(logger),
		logger: logger,
		latest: make(map[string][]byte),
	}
	go s.hub.Run()

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/ws/props", s.handleProps)
	s.mux.HandleFunc("/ws/health", s.handleHealth)

	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on port until Shutdown
func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.mux,
	}

	s.logger.Info().Int("port", port).Msg("websocket server listening")
	return s.server.ListenAndServe()
}

// handleProps subscribes a client to prop table updates. New clients first
// receive the latest table of every market.
func (s *Server) handleProps(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to upgrade connection")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	for _, message := range s.snapshot() {
		client.send <- message
	}

	select {
	case client.hub.register <- client:
	case <-client.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// BroadcastTable sends a published table to every client and keeps it for
// clients that connect later
func (s *Server) BroadcastTable(env publisher.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode prop table: %w", err)
	}

	s.mu.Lock()
	s.latest[env.Table.Market.Key] = data
	s.mu.Unlock()

	s.hub.Broadcast(data)
	return nil
}

// snapshot returns the latest tables ordered by market key
func (s *Server) snapshot() [][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.latest))
	for k := range s.latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.latest[k])
	}
	return out
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
