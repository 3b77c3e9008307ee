// Package stream broadcasts lattice statistics to websocket subscribers.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mc-lattice/internal/logging"
	"mc-lattice/internal/sims/lattice"
)

// Frame is one statistics snapshot as sent to subscribers.
type Frame struct {
	Step         int             `json:"step"`
	Population   int             `json:"population"`
	Generations  []int           `json:"generations"`
	Spectrum     []int           `json:"spectrum"`
	MeanDistance float64         `json:"mean_distance"`
	Tallies      lattice.Tallies `json:"tallies"`
	Boundary     string          `json:"boundary"`
	Paused       bool            `json:"paused"`
}

// FrameOf captures the current statistics of st.
func FrameOf(st *lattice.State) Frame {
	return Frame{
		Step:         st.Steps(),
		Population:   st.Population(),
		Generations:  st.GenerationPopulation(),
		Spectrum:     st.Spectrum(),
		MeanDistance: st.MeanDistanceToCollision(),
		Tallies:      st.Tallies(),
		Boundary:     st.BoundaryCondition().String(),
		Paused:       st.Paused(),
	}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected subscriber. Slow subscribers miss
// frames rather than stall the simulation.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub. A nil logger disables logging.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:      logging.OrNop(log),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*client]struct{}),
	}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast encodes f once and queues it for every subscriber.
func (h *Hub) Broadcast(f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
		}
	}
	return nil
}

// ServeHTTP upgrades the request and streams frames until the peer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 64)}
	h.add(c)
	h.log.Debug("subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	// reader only notices the peer closing
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(c)
				return
			}
		}
	}()

	for b := range c.send {
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			h.remove(c)
			break
		}
	}
	conn.Close()
	h.log.Debug("subscriber disconnected", zap.String("remote", conn.RemoteAddr().String()))
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}
