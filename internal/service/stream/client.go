package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"DemandCast/internal/domain/models"
	drepo "DemandCast/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a MovementStream backed by the POS WebSocket feed.
type Client struct {
	apiKey         string
	websocketURL   string
	locations      []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new movement stream client.
func New(apiKey, websocketURL string, locations []string, reconnectDelay, pingInterval time.Duration) drepo.MovementStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		locations:      locations,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("stream connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("stream: connected")
	return nil
}

// Subscribe subscribes to the configured store locations.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("stream not connected")
	}
	for _, loc := range c.locations {
		msg := map[string]string{"type": "subscribe", "location": loc}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", loc, err)
		}
		log.Printf("stream: subscribed %s", loc)
	}
	return nil
}

type wsMovement struct {
	ProductID  string  `json:"product_id"`
	LocationID string  `json:"location_id"`
	Quantity   float64 `json:"quantity"`
	OrgID      string  `json:"org_id"`
	T          int64   `json:"t"` // ms
}

type wsMessage struct {
	Type string       `json:"type"`
	Data []wsMovement `json:"data"`
}

// Read streams Movement events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Movement, <-chan error) {
	movements := make(chan *models.Movement, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(movements)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("stream conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("stream read: %w", err)
					return
				}
				var m wsMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-movement frames
					continue
				}
				if m.Type != "movement" {
					continue
				}
				for _, d := range m.Data {
					mv := &models.Movement{
						ProductID:  d.ProductID,
						LocationID: d.LocationID,
						Quantity:   d.Quantity,
						OrgID:      d.OrgID,
						Date:       time.UnixMilli(d.T).UTC(),
					}
					select {
					case movements <- mv:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return movements, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
