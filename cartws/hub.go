package cartws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"neonpet/cart"
	"neonpet/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one open browser tab listening for cart changes.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

type broadcastMsg struct {
	UserID string
	Data   []byte
}

// Hub fans cart-change notifications out to every open tab of a user. One
// room per user id, same channel discipline as a chat hub: slow clients are
// dropped rather than blocking the broadcast.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
	subscribed map[*cart.Store]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
		subscribed: make(map[*cart.Store]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.UserID] == nil {
				h.rooms[c.UserID] = make(map[*Client]bool)
			}
			h.rooms[c.UserID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.UserID]; conns != nil {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.UserID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.UserID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// drop unregisters a client, giving up if the hub has already stopped so
// connection readers never block on a dead run loop.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// cartPayload is what listening tabs receive after every mutation. Consumers
// pull the full cart over HTTP; this is just a poke with headline numbers.
type cartPayload struct {
	Action     string  `json:"action"`
	TotalItems int     `json:"totalItems"`
	Total      float64 `json:"total"`
}

// NotifyOnChange subscribes the hub to a user's cart store so every mutation
// is pushed to that user's open tabs. Subscribing the same store twice is a
// no-op; the guard is per store, so the fresh store a user gets after
// logout/login is subscribed again on its first websocket connect.
func (h *Hub) NotifyOnChange(userID string, store *cart.Store) {
	h.mu.Lock()
	if h.subscribed[store] {
		h.mu.Unlock()
		return
	}
	h.subscribed[store] = true
	h.mu.Unlock()

	store.Subscribe(func() {
		data, err := json.Marshal(cartPayload{
			Action:     "cart",
			TotalItems: store.TotalItems(),
			Total:      store.Total(),
		})
		if err != nil {
			return
		}
		select {
		case h.broadcast <- broadcastMsg{UserID: userID, Data: data}:
		case <-h.done:
		}
	})
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades the connection and registers the tab for cart
// notifications. The token is validated here since websocket upgrades bypass
// the normal auth middleware.
func WebSocketHandler(hub *Hub, reg *cart.Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.Header.Get("Authorization")
		if token == "" {
			token = "Bearer " + r.URL.Query().Get("token")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			UserID: claims.UserID,
		}
		hub.register <- client
		hub.NotifyOnChange(claims.UserID, reg.Get(claims.UserID))

		go func() {
			defer conn.Close()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
		}()

		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.drop(client)
					return
				}
			}
		}()
	}
}
