package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/scythe504/imposter-backend/internal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client is one websocket connection. Its id doubles as the player id.
type Client struct {
	hub     *Hub
	id      string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	log     *logrus.Entry
}

func newClient(h *Hub, conn *websocket.Conn, id string) *Client {
	return &Client{
		hub:     h,
		id:      id,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		limiter: rate.NewLimiter(h.limit, h.burst),
		log:     logrus.WithFields(logrus.Fields{"component": "client", "player_id": id}),
	}
}

// enqueue must be called with the hub's lock held so send cannot be closed
// underneath it. A client too slow to drain its buffer is dropped.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.log.Warn("[Enqueue] send buffer full, dropping connection")
		c.conn.Close()
	}
}

// ReadPump decodes requests until the connection fails, then runs the
// disconnect path.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("[ReadPump] unexpected close")
			} else {
				c.log.Debug("[ReadPump] connection closed")
			}
			return
		}
		if messageType != websocket.TextMessage {
			c.log.Debugf("[ReadPump] ignoring message type %d", messageType)
			continue
		}

		var req internal.RawRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.log.WithError(err).Debug("[ReadPump] malformed envelope")
			c.ackError("", errBadRequest)
			continue
		}
		if !c.limiter.Allow() {
			c.log.Debugf("[ReadPump] rate limited %s", req.Type)
			c.ackError(req.RequestID, errRateLimited)
			continue
		}

		c.log.Debugf("[ReadPump] received %s", req.Type)
		c.hub.dispatch(c, req)
	}
}

// WritePump drains send onto the socket and keeps the peer alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.WithError(err).Warn("[WritePump] write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("[WritePump] ping failed")
				return
			}
		}
	}
}

func (c *Client) ack(requestID string, data internal.AckData) {
	data.OK = true
	c.hub.sendTo(c.id, internal.Message[internal.AckData]{
		Type:      internal.EventAck,
		RequestID: requestID,
		Data:      data,
	})
}

func (c *Client) ackError(requestID string, err error) {
	c.hub.sendTo(c.id, internal.Message[internal.AckData]{
		Type:      internal.EventAck,
		RequestID: requestID,
		Data: internal.AckData{
			Error: &internal.ErrorInfo{Code: errorCode(err), Message: err.Error()},
		},
	})
}
