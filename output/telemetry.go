// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/cpmech/gosl/io"
	"github.com/gorilla/websocket"
)

// telemetryFrame is the JSON payload pushed to every connected subscriber
// at each print step.
type telemetryFrame struct {
	Step  int     `json:"step"`
	T     float64 `json:"t"`
	Dt    float64 `json:"dt"`
	Iter  int     `json:"iter"`
	Resid float64 `json:"resid"`
	UMax  float64 `json:"u_max"`
	VMax  float64 `json:"v_max"`
	PMax  float64 `json:"p_max"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Telemetry is an optional live broadcaster: it serves a websocket
// endpoint and pushes one JSON frame per print step to every connected
// client. The solver never blocks on a missing subscriber -- a full send
// buffer just drops the client.
type Telemetry struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan telemetryFrame
}

// NewTelemetry returns an empty broadcaster; mount its Handler method as an
// http.HandlerFunc on an external mux, or call ListenAndServe to serve it.
func NewTelemetry() *Telemetry {
	return &Telemetry{clients: make(map[*websocket.Conn]chan telemetryFrame)}
}

// Handler upgrades incoming requests to websocket connections and streams
// frames to each one from its own goroutine until the connection drops.
func (t *Telemetry) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		io.Pfyel("telemetry: upgrade failed: %v\n", err)
		return
	}
	ch := make(chan telemetryFrame, 8)
	t.mu.Lock()
	t.clients[conn] = ch
	t.mu.Unlock()
	go func() {
		defer func() {
			t.mu.Lock()
			delete(t.clients, conn)
			t.mu.Unlock()
			conn.Close()
		}()
		for frame := range ch {
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}()
}

// ListenAndServe starts an HTTP server on addr with Handler mounted at
// "/telemetry". Intended to be run in its own goroutine by the caller.
func (t *Telemetry) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/telemetry", t.Handler)
	return http.ListenAndServe(addr, mux)
}

// Broadcast pushes one frame to every connected client, dropping clients
// whose send buffer is full instead of blocking.
func (t *Telemetry) Broadcast(step int, sim, dt, resid float64, iter int, uMax, vMax, pMax float64) {
	frame := telemetryFrame{Step: step, T: sim, Dt: dt, Iter: iter, Resid: resid, UMax: uMax, VMax: vMax, PMax: pMax}
	t.mu.Lock()
	defer t.mu.Unlock()
	for conn, ch := range t.clients {
		select {
		case ch <- frame:
		default:
			delete(t.clients, conn)
			conn.Close()
		}
	}
}

// marshalFrame returns the JSON encoding of one frame, the same wire format
// Handler's connections send; no caller in this package uses it.
func marshalFrame(f telemetryFrame) ([]byte, error) { return json.Marshal(f) }
