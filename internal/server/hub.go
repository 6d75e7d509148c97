package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/dsa-sheet/internal/platform/metrics"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
)

const (
	clientBuffer = 16
	writeTimeout = 5 * time.Second
)

// Hub fans progress changes out to websocket clients. A client that falls
// behind by more than clientBuffer changes misses the overflow.
type Hub struct {
	metrics *metrics.Metrics

	mu      sync.Mutex
	clients map[chan progress.Change]struct{}
	done    chan struct{}
	closed  bool
}

// NewHub creates an empty hub. m may be nil.
func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		metrics: m,
		clients: make(map[chan progress.Change]struct{}),
		done:    make(chan struct{}),
	}
}

// Publish delivers c to every connected client without blocking.
func (h *Hub) Publish(c progress.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		select {
		case ch <- c:
		default:
			slog.Debug("change feed client lagging, dropping change", "question_id", c.QuestionID)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.closed = true
		close(h.done)
	}
}

func (h *Hub) subscribe() (chan progress.Change, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	ch := make(chan progress.Change, clientBuffer)
	h.clients[ch] = struct{}{}
	h.metrics.WSClients(1)
	return ch, true
}

func (h *Hub) unsubscribe(ch chan progress.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ch)
	h.metrics.WSClients(-1)
}

// ServeHTTP upgrades the request and streams changes as JSON messages.
// Messages sent by the client are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ch, ok := h.subscribe()
	if !ok {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.unsubscribe(ch)

	ctx := conn.CloseRead(r.Context())
	slog.Debug("change feed client connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case c := <-ch:
			if err := write(ctx, conn, c); err != nil {
				slog.Debug("change feed write failed", "error", err)
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, c progress.Change) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, c)
}
