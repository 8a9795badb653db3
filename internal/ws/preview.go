// Package ws mirrors transmitted frames to websocket clients so a browser can
// watch the matrix without hardware attached.
package ws

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledmatrix/layout"
)

// Preview is a led.Driver that broadcasts every frame instead of (or alongside)
// sending it to hardware.
type Preview struct {
	mu      sync.Mutex
	cfg     layout.Config
	clients map[*websocket.Conn]bool

	frameID   uint64
	startTime time.Time
}

func NewPreview(cfg layout.Config) *Preview {
	return &Preview{
		cfg:       cfg,
		clients:   map[*websocket.Conn]bool{},
		startTime: time.Now(),
	}
}

// Write implements led.Driver. The frame is in wiring order, 3 bytes per LED.
func (p *Preview) Write(rgb []byte) error {
	payload, _ := json.Marshal(map[string]any{
		"type": "frame",
		"rgb":  base64.StdEncoding.EncodeToString(rgb),
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameID++
	for conn := range p.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(p.clients, conn)
			conn.Close()
		}
	}
	return nil
}

func (p *Preview) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for conn := range p.clients {
		conn.Close()
		delete(p.clients, conn)
	}
	return nil
}

// HandleFrames upgrades the request and subscribes the client to frames.
func (p *Preview) HandleFrames(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	p.mu.Lock()
	p.clients[conn] = true
	p.mu.Unlock()
	p.sendTopology(conn)

	go func() {
		defer func() {
			p.mu.Lock()
			delete(p.clients, conn)
			p.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleHealth reports liveness counters as JSON.
func (p *Preview) HandleHealth(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	resp := map[string]any{
		"frame_id": p.frameID,
		"uptime_s": time.Since(p.startTime).Seconds(),
		"count":    p.cfg.Count(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (p *Preview) sendTopology(conn *websocket.Conn) {
	msg := map[string]any{
		"type":        "topology",
		"width":       p.cfg.Width,
		"height":      p.cfg.Height,
		"wiring":      p.cfg.Wiring,
		"color_order": p.cfg.Order,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Warn().Err(err).Msg("ws topology send failed")
	}
}
