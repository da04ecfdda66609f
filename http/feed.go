package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"insurecost/insurance"
	"insurecost/logging"
)

const (
	MessagePredictionSaved = "prediction_saved"

	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	pongWait   = 60 * time.Second
)

// FeedMessage is one event pushed to dashboard clients.
type FeedMessage struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Feed fans saved predictions out to connected websocket clients. Slow
// clients are dropped rather than blocking the publisher.
type Feed struct {
	clients    map[*feedClient]bool
	broadcast  chan []byte
	register   chan *feedClient
	unregister chan *feedClient
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	ctx        context.Context
	cancel     context.CancelFunc
	log        *logging.Logger
}

// NewFeed builds an idle hub; Run must be started before clients connect.
func NewFeed(log *logging.Logger) *Feed {
	if log == nil {
		log = logging.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
		log:    log.With("component", "feed"),
	}
}

// Run serves register, unregister and broadcast until Stop.
func (f *Feed) Run() {
	for {
		select {
		case c := <-f.register:
			f.mu.Lock()
			f.clients[c] = true
			n := len(f.clients)
			f.mu.Unlock()
			f.log.Debug("feed client connected", "client", c.id, "clients", n)

		case c := <-f.unregister:
			f.mu.Lock()
			if _, ok := f.clients[c]; ok {
				delete(f.clients, c)
				close(c.send)
			}
			f.mu.Unlock()
			f.log.Debug("feed client disconnected", "client", c.id)

		case msg := <-f.broadcast:
			f.mu.Lock()
			for c := range f.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(f.clients, c)
				}
			}
			f.mu.Unlock()

		case <-f.ctx.Done():
			f.mu.Lock()
			for c := range f.clients {
				close(c.send)
				delete(f.clients, c)
			}
			f.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and disconnects every client.
func (f *Feed) Stop() {
	f.cancel()
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Publish queues rec for every client. It never blocks.
func (f *Feed) Publish(rec insurance.PredictionRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		f.log.Error("encoding feed record failed", "error", err)
		return
	}
	msg, err := json.Marshal(FeedMessage{
		Type:      MessagePredictionSaved,
		Timestamp: time.Now().UTC(),
		ID:        uuid.NewString(),
		Data:      data,
	})
	if err != nil {
		f.log.Error("encoding feed message failed", "error", err)
		return
	}
	select {
	case f.broadcast <- msg:
	default:
		f.log.Warn("feed queue full, dropping message", "id", rec.ID)
	}
}

func (f *Feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &feedClient{conn: conn, send: make(chan []byte, 16), id: uuid.NewString()}

	select {
	case f.register <- c:
	case <-f.ctx.Done():
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump(f)
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// readPump only drains control frames; the feed is server-to-client.
func (c *feedClient) readPump(f *Feed) {
	defer func() {
		select {
		case f.unregister <- c:
		case <-f.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				f.log.Debug("feed client read error", "client", c.id, "error", err)
			}
			return
		}
	}
}
