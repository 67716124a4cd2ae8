// Package debugobserver adapts the teacher's WebSocket progress-broadcast
// hub into an ofdmsync.Observer: every notification from the synchronizer
// core is JSON-encoded and fanned out to connected browser clients for live
// constellation/correlation plots, with the same bounded, never-block
// delivery the teacher's hub used for upload progress.
package debugobserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/jeongseonghan/ofdm64sync/internal/ofdmsync"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local development tool, not exposed publicly
	},
}

// Message is one broadcast envelope.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// SamplePayload carries a single post-AGC, post-NCO baseband sample.
type SamplePayload struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// CorrPayload carries one correlator evaluation.
type CorrPayload struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// FrameSymbolPayload carries one demodulated payload symbol's 48 data
// subcarriers, as parallel real/imaginary arrays for compact JSON.
type FrameSymbolPayload struct {
	Re [ofdmsync.NumDataSubcarriers]float64 `json:"re"`
	Im [ofdmsync.NumDataSubcarriers]float64 `json:"im"`
}

// client is a single connected WebSocket, with a bounded outbound queue so a
// slow browser tab can never stall the synchronizer's hot path.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Broadcaster implements ofdmsync.Observer, fanning out every notification
// to all connected clients. The zero value is not usable; construct with
// NewBroadcaster.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*client]bool
	logger  *log.Logger
}

// NewBroadcaster creates an empty hub.
func NewBroadcaster(logger *log.Logger) *Broadcaster {
	if logger == nil {
		logger = log.Default()
	}
	return &Broadcaster{
		clients: make(map[*client]bool),
		logger:  logger,
	}
}

// ServeHTTP upgrades an HTTP request to a WebSocket and registers the
// resulting connection as a broadcast target until it disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 64)}
	b.addClient(c)
	defer b.removeClient(c)

	go c.writePump(b.logger)

	// Drain and discard inbound frames; this hub is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump(logger *log.Logger) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debug("websocket write failed, dropping client", "err", err)
			return
		}
	}
}

func (b *Broadcaster) addClient(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = true
	b.logger.Info("debug client connected", "total", len(b.clients))
}

func (b *Broadcaster) removeClient(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; !ok {
		return
	}
	delete(b.clients, c)
	close(c.send)
	c.conn.Close()
	b.logger.Info("debug client disconnected", "remaining", len(b.clients))
}

func (b *Broadcaster) broadcast(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("marshal debug message", "err", err)
		return
	}

	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			// Client's queue is full; drop this sample rather than block
			// the synchronizer's hot path.
		}
	}
}

// OnSample implements ofdmsync.Observer.
func (b *Broadcaster) OnSample(x complex64) {
	b.broadcast(Message{Type: "sample", Payload: SamplePayload{Re: float64(real(x)), Im: float64(imag(x))}})
}

// OnAutocorr implements ofdmsync.Observer.
func (b *Broadcaster) OnAutocorr(rxx complex64) {
	b.broadcast(Message{Type: "autocorr", Payload: CorrPayload{Re: float64(real(rxx)), Im: float64(imag(rxx))}})
}

// OnCrosscorr implements ofdmsync.Observer.
func (b *Broadcaster) OnCrosscorr(rxy complex64) {
	b.broadcast(Message{Type: "crosscorr", Payload: CorrPayload{Re: float64(real(rxy)), Im: float64(imag(rxy))}})
}

// OnFrameSymbol implements ofdmsync.Observer.
func (b *Broadcaster) OnFrameSymbol(data [ofdmsync.NumDataSubcarriers]complex64) {
	var p FrameSymbolPayload
	for i, x := range data {
		p.Re[i] = float64(real(x))
		p.Im[i] = float64(imag(x))
	}
	b.broadcast(Message{Type: "frame_symbol", Payload: p})
}

// OnFinalize implements ofdmsync.Observer, closing every connected client.
func (b *Broadcaster) OnFinalize() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		close(c.send)
		c.conn.Close()
		delete(b.clients, c)
	}
}
