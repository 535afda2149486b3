package live

import "sync"

// Subscriber abstracts a streaming client.
type Subscriber interface {
	Send([]byte) error
	Close()
}

// Hub fans state snapshots out to the open pages of each session.
type Hub struct {
	clients   map[string]map[Subscriber]struct{}
	register  chan subscription
	unreg     chan subscription
	broadcast chan message
	stopCh    chan struct{}
	done      chan struct{}
	once      sync.Once
}

type message struct {
	sessionID string
	payload   []byte
}

type subscription struct {
	sessionID string
	client    Subscriber
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[string]map[Subscriber]struct{}),
		register:  make(chan subscription),
		unreg:     make(chan subscription),
		broadcast: make(chan message),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)
	for {
		select {
		case sub := <-h.register:
			if _, ok := h.clients[sub.sessionID]; !ok {
				h.clients[sub.sessionID] = make(map[Subscriber]struct{})
			}
			h.clients[sub.sessionID][sub.client] = struct{}{}
		case sub := <-h.unreg:
			if clients, ok := h.clients[sub.sessionID]; ok {
				delete(clients, sub.client)
				if len(clients) == 0 {
					delete(h.clients, sub.sessionID)
				}
			}
		case msg := <-h.broadcast:
			if clients, ok := h.clients[msg.sessionID]; ok {
				for c := range clients {
					if err := c.Send(msg.payload); err != nil {
						c.Close()
						delete(clients, c)
					}
				}
				if len(clients) == 0 {
					delete(h.clients, msg.sessionID)
				}
			}
		case <-h.stopCh:
			for _, clients := range h.clients {
				for c := range clients {
					c.Close()
				}
			}
			h.clients = nil
			return
		}
	}
}

// Register adds a client to a session stream.
func (h *Hub) Register(sessionID string, client Subscriber) {
	select {
	case h.register <- subscription{sessionID: sessionID, client: client}:
	case <-h.stopCh:
		client.Close()
	}
}

// Unregister removes a client.
func (h *Hub) Unregister(sessionID string, client Subscriber) {
	select {
	case h.unreg <- subscription{sessionID: sessionID, client: client}:
	case <-h.stopCh:
	}
}

// Broadcast sends payload to all clients of a session. It is a no-op after Close.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	select {
	case h.broadcast <- message{sessionID: sessionID, payload: payload}:
	case <-h.stopCh:
	}
}

// Close disconnects every client and stops the hub.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.stopCh) })
	<-h.done
}
