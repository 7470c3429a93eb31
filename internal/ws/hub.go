package ws

import (
	"context"
	"log"
	"sync"

	"techsync/internal/metrics"

	"github.com/google/uuid"
)

type outbound struct {
	userID uuid.UUID
	data   []byte
}

// Hub routes events to the connections of a single user. Clients subscribed
// without a user ID sit under uuid.Nil and only see broadcasts.
type Hub struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]map[*Client]struct{}
	total  int

	events     chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		byUser:     make(map[uuid.UUID]map[*Client]struct{}),
		events:     make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

// Run owns all membership changes until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			h.closeAll()
			h.drainPending()
			return

		case c := <-h.register:
			if c == nil {
				continue
			}
			total := h.add(c)
			h.logf("[WS] connected user_id=%s clients=%d", c.userID, total)

		case c := <-h.unregister:
			if c == nil {
				continue
			}
			if total, removed := h.remove(c); removed {
				h.logf("[WS] disconnected user_id=%s clients=%d", c.userID, total)
			}

		case msg := <-h.events:
			h.deliver(msg)
		}
	}
}

func (h *Hub) add(c *Client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.byUser[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.byUser[c.userID] = set
	}
	if _, dup := set[c]; !dup {
		set[c] = struct{}{}
		h.total++
	}
	metrics.WSClients.Set(float64(h.total))
	return h.total
}

func (h *Hub) remove(c *Client) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.byUser[c.userID]
	if !ok {
		return h.total, false
	}
	if _, ok := set[c]; !ok {
		return h.total, false
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.byUser, c.userID)
	}
	close(c.send)
	h.total--
	metrics.WSClients.Set(float64(h.total))
	return h.total, true
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for uid, set := range h.byUser {
		for c := range set {
			close(c.send)
		}
		delete(h.byUser, uid)
	}
	h.total = 0
	metrics.WSClients.Set(0)
}

// drainPending closes clients that were queued for registration when Run stopped.
func (h *Hub) drainPending() {
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

func (h *Hub) targets(userID uuid.UUID) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if userID != uuid.Nil {
		out := make([]*Client, 0, len(h.byUser[userID]))
		for c := range h.byUser[userID] {
			out = append(out, c)
		}
		return out
	}
	out := make([]*Client, 0, h.total)
	for _, set := range h.byUser {
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}

// deliver never blocks on a slow client; a full send buffer drops the connection.
func (h *Hub) deliver(msg outbound) {
	targets := h.targets(msg.userID)
	for _, c := range targets {
		select {
		case c.send <- msg.data:
		default:
			h.logf("[WS] slow client dropped user_id=%s", c.userID)
			h.remove(c)
		}
	}
	if len(targets) > 0 {
		h.logf("[WS] delivered user_id=%s clients=%d", msg.userID, len(targets))
	}
}

// Register hands the client to Run. After shutdown the client's send channel
// is closed right away so its pumps exit.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	default:
		go func() {
			select {
			case h.unregister <- client:
			case <-h.done:
			}
		}()
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Send(userID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.events <- outbound{userID: userID, data: message}:
	default:
		h.logf("[WS] event dropped user_id=%s reason=buffer_full", userID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// UserClientCount reports open connections for one user.
func (h *Hub) UserClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}
