package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/invopop/jsonschema"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/parameter"
)

var (
	schemaOnce sync.Once
	schemaJSON []byte
	schemaErr  error
)

// SnapshotSchema returns the JSON schema of the spectator message
func SnapshotSchema() ([]byte, error) {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{}
		schemaJSON, schemaErr = json.MarshalIndent(r.Reflect(&Message{}), "", "  ")
	})
	return schemaJSON, schemaErr
}

// Handler serves /ws, /schema and /health for the hub
func (h *Hub) Handler() http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		data, err := SnapshotSchema()
		if err != nil {
			http.Error(w, "failed to build schema", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/schema+json")
		w.Write(data)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Printf("spectate: upgrade failed: %v", err)
			return
		}
		c, ok := h.register()
		if !ok {
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "game over")
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(parameter.SpectatorWriteTimeout))
			conn.Close()
			return
		}
		core.Go(func() { h.writePump(c, conn) })
		h.readPump(c, conn)
	})

	return mux
}

// writePump owns all writes to conn and closes it when the queue closes
func (h *Hub) writePump(c *client, conn *websocket.Conn) {
	defer conn.Close()
	for data := range c.send {
		conn.SetWriteDeadline(time.Now().Add(parameter.SpectatorWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.unregister(c.id)
			for range c.send {
			}
			return
		}
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(parameter.SpectatorWriteTimeout))
}

// readPump discards client input and notices disconnects
func (h *Hub) readPump(c *client, conn *websocket.Conn) {
	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(c.id)
			return
		}
	}
}

// compile-time check
var _ engine.SnapshotSink = (*Hub)(nil)
