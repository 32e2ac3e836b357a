package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/scythe504/imposter-backend/internal"
	"github.com/scythe504/imposter-backend/internal/game"
	"github.com/scythe504/imposter-backend/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Config tunes the transport. Zero values fall back to permissive defaults.
type Config struct {
	AllowedOrigin     string
	MessagesPerSecond float64
	Burst             int
}

// Hub owns every live connection and maps client requests onto the game
// registry. Room membership lives in the registry; the hub only knows which
// connection belongs to which player id.
type Hub struct {
	registry *game.Registry
	upgrader websocket.Upgrader
	limit    rate.Limit
	burst    int

	mu      sync.RWMutex
	clients map[string]*Client

	log *logrus.Entry
}

func NewHub(registry *game.Registry, cfg Config) *Hub {
	h := &Hub{
		registry: registry,
		limit:    rate.Limit(cfg.MessagesPerSecond),
		burst:    cfg.Burst,
		clients:  make(map[string]*Client),
		log:      logrus.WithField("component", "hub"),
	}
	if h.limit <= 0 {
		h.limit = rate.Inf
	}
	if h.burst <= 0 {
		h.burst = 1
	}

	origin := cfg.AllowedOrigin
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if origin == "" || origin == "*" {
				return true
			}
			return r.Header.Get("Origin") == origin
		},
	}
	return h
}

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

// ServeWS upgrades the request and starts the client's pumps. Each
// connection gets a fresh player id; reclaiming a seat goes through
// rejoin_room.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("[ServeWS] upgrade failed")
		return
	}

	c := newClient(h, conn, utils.GenerateID())
	h.register(c)
	c.log.Infof("[ServeWS] connected from %s", r.RemoteAddr)

	go c.WritePump()
	go c.ReadPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// unregister forgets c and closes its send channel so the write pump exits.
func (h *Hub) unregister(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[c.id]; !ok || current != c {
		return false
	}
	delete(h.clients, c.id)
	close(c.send)
	return true
}

// disconnect runs once per connection when its read pump ends.
func (h *Hub) disconnect(c *Client) {
	if !h.unregister(c) {
		return
	}

	room, player, ok := h.registry.RemovePlayerFromAll(c.id)
	if !ok {
		c.log.Info("[Disconnect] client left without joining a room")
		return
	}
	c.log.WithField("room", room.Code()).Infof("[Disconnect] %s left", player.Name)

	snap := room.Snapshot()
	if snap.ConnectedCount() == 0 {
		return
	}
	h.broadcast(room, internal.Message[any]{
		Type: internal.EventPlayerLeft,
		Data: internal.PlayerLeftData{
			PlayerID:         player.Id,
			Name:             player.Name,
			Players:          snap.Players,
			HostID:           snap.HostID,
			SubmissionStatus: snap.SubmissionStatus,
		},
	})
}

// ClientCount reports live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close drops every connection. Read pumps then run their normal disconnect
// path.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.conn.Close()
	}
	h.log.Infof("[Close] closed %d connections", len(h.clients))
}

// =============================================================================
// MESSAGE DELIVERY
// =============================================================================

// sendTo queues msg for one player. Unknown ids are ignored: the player
// may have dropped between the room update and delivery.
func (h *Hub) sendTo(playerID string, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.WithError(err).Error("[SendTo] marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[playerID]; ok {
		c.enqueue(data)
	}
}

// broadcast queues msg for every connected member of room.
func (h *Hub) broadcast(room *game.Room, msg internal.Message[any]) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.WithError(err).Error("[Broadcast] marshal failed")
		return
	}

	ids := room.ConnectedIDs()
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range ids {
		if c, ok := h.clients[id]; ok {
			c.enqueue(data)
		}
	}
	h.log.WithFields(logrus.Fields{"room": room.Code(), "type": msg.Type}).
		Debugf("[Broadcast] queued for %d players", len(ids))
}

// deliver fans a phase result out to the room. Round starts are sent one
// player at a time so the imposter's copy never carries the word.
func (h *Hub) deliver(room *game.Room, res game.PhaseResult) {
	switch res.Kind {
	case game.KindRoundStarted:
		for _, id := range res.Round.Recipients {
			h.sendTo(id, internal.Message[internal.RoundStartData]{
				Type: internal.EventRoundStarted,
				Data: res.Round.For(id),
			})
		}
	case game.KindResults:
		h.broadcast(room, internal.Message[any]{Type: internal.EventResults, Data: res.Results})
	case game.KindPhaseChanged:
		h.broadcast(room, internal.Message[any]{Type: internal.EventPhaseChanged, Data: res.PhaseChanged()})
		if res.Submission != nil {
			h.broadcast(room, internal.Message[any]{Type: internal.EventSubmissionStatus, Data: res.Submission})
		}
	}
}
