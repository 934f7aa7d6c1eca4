// Package network serves read-only spectator views of a running session over
// HTTP and WebSocket.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"snake/internal/domain"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBroadcastInterval = 100 * time.Millisecond

	writeWait    = 2 * time.Second
	pongWait     = 30 * time.Second
	pingInterval = pongWait * 9 / 10
	sendBuffer   = 8
)

// SnapshotSource yields the most recent rendered snapshot, nil before the
// first tick.
type SnapshotSource interface {
	Latest() *domain.Snapshot
}

type Server struct {
	addr     string
	source   SnapshotSource
	interval time.Duration

	clients  *ClientManager
	upgrader websocket.Upgrader
	router   chi.Router
}

func NewServer(addr string, source SnapshotSource) *Server {
	s := &Server{
		addr:     addr,
		source:   source,
		interval: DefaultBroadcastInterval,
		clients:  NewClientManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Default(), NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Get("/ws", s.handleWebSocket)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Clients() *ClientManager {
	return s.clients
}

// Run serves until ctx ends, then shuts the listener down and disconnects
// every spectator.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.router}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("SPECTATOR: listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.broadcastLoop(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.clients.CloseAll()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastTick uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap := s.source.Latest()
		if snap == nil || snap.Tick == lastTick || s.clients.Count() == 0 {
			continue
		}
		lastTick = snap.Tick

		if dropped := s.clients.Broadcast(EncodeSnapshot(*snap)); dropped > 0 {
			log.Printf("SPECTATOR: %d slow clients skipped a frame", dropped)
		}
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Clients int    `json:"clients"`
	Tick    uint64 `json:"tick"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Clients: s.clients.Count()}
	if snap := s.source.Latest(); snap != nil {
		resp.Tick = snap.Tick
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Latest()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, NewSnapshotView(*snap))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("SPECTATOR: upgrade:", err)
		return
	}

	client := NewClient(conn, sendBuffer)
	s.clients.Add(client)
	log.Printf("SPECTATOR: client %s connected from %s", client.ID, r.RemoteAddr)

	if snap := s.source.Latest(); snap != nil {
		client.Offer(EncodeSnapshot(*snap))
	}

	go s.writePump(client)
	s.readPump(client)
}

// readPump discards client messages and notices disconnects.
func (s *Server) readPump(c *Client) {
	defer func() {
		s.clients.Remove(c.ID)
		c.conn.Close()
		log.Printf("SPECTATOR: client %s disconnected", c.ID)
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(c *Client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				log.Printf("SPECTATOR: write to %s: %v", c.ID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("SPECTATOR: encode:", err)
	}
}
