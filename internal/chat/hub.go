package chat

import (
	"sync"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
)

// Event is a frame pushed to realtime subscribers.
type Event struct {
	Type     string              `json:"type"`
	ThreadID string              `json:"thread_id,omitempty"`
	Message  *models.ChatMessage `json:"message,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Client represents one realtime connection. A client may be subscribed to
// several threads at once; all of its events flow through a single buffered
// channel drained by the connection's write loop.
type Client struct {
	send chan Event
}

// NewClient creates a client with the given outbound buffer size.
func NewClient(buffer int) *Client {
	return &Client{send: make(chan Event, buffer)}
}

// Events returns the outbound event stream for this client.
func (c *Client) Events() <-chan Event {
	return c.send
}

// Hub maintains one broadcast group per thread id. Subscriber sets are
// guarded by a single mutex; delivery is at-least-once and best-effort per
// subscriber (a subscriber with a full buffer misses the event and is
// expected to reconcile via a history reload).
type Hub struct {
	mu      sync.Mutex
	threads map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{threads: make(map[string]map[*Client]struct{})}
}

// Join subscribes the client to a thread's broadcast group.
func (h *Hub) Join(threadID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subscribers, ok := h.threads[threadID]
	if !ok {
		subscribers = make(map[*Client]struct{})
		h.threads[threadID] = subscribers
	}
	subscribers[c] = struct{}{}
}

// Leave unsubscribes the client from a thread's broadcast group.
func (h *Hub) Leave(threadID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subscribers, ok := h.threads[threadID]; ok {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(h.threads, threadID)
		}
	}
}

// LeaveAll releases every subscription held by the client. Called when its
// connection drops.
func (h *Hub) LeaveAll(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for threadID, subscribers := range h.threads {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(h.threads, threadID)
		}
	}
}

// Broadcast delivers the event to every current subscriber of the thread,
// the sender's own connections included. Subscribers whose buffer is full
// are skipped so one slow connection cannot stall the rest.
func (h *Hub) Broadcast(threadID string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for subscriber := range h.threads[threadID] {
		select {
		case subscriber.send <- event:
		default:
		}
	}
}

// SubscriberCount reports the current size of a thread's broadcast group.
func (h *Hub) SubscriberCount(threadID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.threads[threadID])
}
