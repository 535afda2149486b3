package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"userdesk/internal/logging"
)

const writeWait = 10 * time.Second

// Upgrader accepts same-origin websocket connections only.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client represents a websocket client connection.
type Client struct {
	conn *websocket.Conn
	log  logging.Logger
	mu   sync.Mutex
}

func NewClient(conn *websocket.Conn, logger logging.Logger) *Client {
	return &Client{conn: conn, log: logger}
}

// Upgrade switches the request to a websocket and wraps the connection.
func Upgrade(w http.ResponseWriter, r *http.Request, logger logging.Logger) (*Client, error) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return NewClient(conn, logger), nil
}

// Send writes a message to the websocket connection.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.log.Warn("websocket send failed", "error", err)
		_ = c.conn.Close()
		return err
	}
	return nil
}

// Close terminates the connection.
func (c *Client) Close() {
	_ = c.conn.Close()
}

// Drain reads until the peer goes away; control frames are handled by the
// library while reading.
func (c *Client) Drain() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
