package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// StreamConfig configures the datastream client behavior.
type StreamConfig struct {
	// ReconnectDelay is initial delay before reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing messages.
	WriteTimeout time.Duration
}

// DefaultStreamConfig returns default datastream configuration.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// streamMessage is the wire frame for the provider datastream.
type streamMessage struct {
	Type string          `json:"type"` // subscribe | unsubscribe | tokenStatistics | error
	Mint string          `json:"mint,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
	Err  string          `json:"error,omitempty"`
}

// StreamClient subscribes to real-time token statistics over WebSocket.
// It reconnects with exponential backoff and resubscribes active mints.
type StreamClient struct {
	endpoint string
	config   StreamConfig

	conn   *websocket.Conn
	connMu sync.Mutex
	closed atomic.Bool

	// subs maps mint to delivery channel
	subs   map[string]chan TokenStatsUpdate
	subsMu sync.RWMutex

	done chan struct{}
	wg   sync.WaitGroup

	reconnecting atomic.Bool
}

// NewStreamClient creates a new datastream client and connects to the endpoint.
func NewStreamClient(ctx context.Context, endpoint string, config *StreamConfig) (*StreamClient, error) {
	cfg := DefaultStreamConfig()
	if config != nil {
		cfg = *config
	}

	c := &StreamClient{
		endpoint: endpoint,
		config:   cfg,
		subs:     make(map[string]chan TokenStatsUpdate),
		done:     make(chan struct{}),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.wg.Add(1)
	go c.readLoop()

	c.wg.Add(1)
	go c.pingLoop()

	return c, nil
}

// connect establishes the WebSocket connection.
func (c *StreamClient) connect(ctx context.Context) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	c.conn = conn
	return nil
}

// Subscribe starts receiving statistics updates for a mint.
func (c *StreamClient) Subscribe(mint string) (<-chan TokenStatsUpdate, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("client closed")
	}

	if err := c.writeMessage(streamMessage{Type: "subscribe", Mint: mint}); err != nil {
		return nil, fmt.Errorf("write subscribe: %w", err)
	}

	// Buffered to absorb bursts without dropping frames
	ch := make(chan TokenStatsUpdate, 1000)
	c.subsMu.Lock()
	c.subs[mint] = ch
	c.subsMu.Unlock()

	return ch, nil
}

// Unsubscribe stops receiving updates for a mint and closes its channel.
func (c *StreamClient) Unsubscribe(mint string) error {
	c.subsMu.Lock()
	ch, ok := c.subs[mint]
	if ok {
		close(ch)
		delete(c.subs, mint)
	}
	c.subsMu.Unlock()

	if !ok || c.closed.Load() {
		return nil
	}
	return c.writeMessage(streamMessage{Type: "unsubscribe", Mint: mint})
}

// Close closes the WebSocket connection and all subscription channels.
func (c *StreamClient) Close() error {
	if c.closed.Swap(true) {
		return nil // already closed
	}

	close(c.done)

	c.connMu.Lock()
	if c.conn != nil {
		c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.conn.Close()
	}
	c.connMu.Unlock()

	c.subsMu.Lock()
	for mint, ch := range c.subs {
		close(ch)
		delete(c.subs, mint)
	}
	c.subsMu.Unlock()

	c.wg.Wait()
	return nil
}

// writeMessage sends a frame with the configured write deadline.
func (c *StreamClient) writeMessage(msg streamMessage) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected")
	}

	c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	return c.conn.WriteJSON(msg)
}

// readLoop reads frames and dispatches statistics updates to subscribers.
func (c *StreamClient) readLoop() {
	defer c.wg.Done()

	reconnectDelay := c.config.ReconnectDelay

	for !c.closed.Load() {
		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()

		if conn == nil {
			select {
			case <-c.done:
				return
			case <-time.After(100 * time.Millisecond):
				continue
			}
		}

		conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))

		_, message, err := conn.ReadMessage()
		if err != nil {
			if c.closed.Load() {
				return
			}

			if !c.reconnecting.Swap(true) {
				go c.reconnect(reconnectDelay)
			}

			reconnectDelay = reconnectDelay * 2
			if reconnectDelay > c.config.MaxReconnectDelay {
				reconnectDelay = c.config.MaxReconnectDelay
			}

			select {
			case <-c.done:
				return
			case <-time.After(100 * time.Millisecond):
				continue
			}
		}

		// Reset delay on successful read
		reconnectDelay = c.config.ReconnectDelay

		c.handleMessage(message)
	}
}

// handleMessage decodes a frame and delivers it to the mint's subscriber.
func (c *StreamClient) handleMessage(message []byte) {
	var msg streamMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return // malformed frame, skip
	}

	if msg.Type != "tokenStatistics" || msg.Data == nil {
		return
	}

	var update TokenStatsUpdate
	if err := json.Unmarshal(msg.Data, &update); err != nil {
		return
	}

	// The lock is held across the send so Unsubscribe/Close cannot close the
	// channel mid-delivery. Channels are buffered, so the send rarely blocks.
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	ch, ok := c.subs[update.Mint]
	if !ok {
		return
	}

	select {
	case ch <- update:
	case <-c.done:
	default:
		// Subscriber fell 1000 frames behind; drop rather than stall reads.
	}
}

// reconnect attempts to reconnect and resubscribe active mints.
func (c *StreamClient) reconnect(delay time.Duration) {
	defer c.reconnecting.Store(false)

	if c.closed.Load() {
		return
	}

	select {
	case <-c.done:
		return
	case <-time.After(delay):
	}

	c.connMu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.connect(ctx); err != nil {
		return // next read failure triggers another attempt
	}

	// Resubscribe all active mints
	c.subsMu.RLock()
	mints := make([]string, 0, len(c.subs))
	for mint := range c.subs {
		mints = append(mints, mint)
	}
	c.subsMu.RUnlock()

	for _, mint := range mints {
		if err := c.writeMessage(streamMessage{Type: "subscribe", Mint: mint}); err != nil {
			return
		}
	}
}

// pingLoop sends periodic ping frames to keep the connection alive.
func (c *StreamClient) pingLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.connMu.Lock()
			if c.conn != nil {
				c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
				c.conn.WriteMessage(websocket.PingMessage, nil)
			}
			c.connMu.Unlock()
		}
	}
}
