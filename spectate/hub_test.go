package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/grid"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSpectatorReceivesSnapshots(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	hello := readMessage(t, conn)
	if hello.Type != MessageHello || hello.Client == "" {
		t.Fatalf("Expected hello with client id, got %+v", hello)
	}
	if hub.Clients() != 1 {
		t.Errorf("Expected 1 client, got %d", hub.Clients())
	}

	snap := engine.Snapshot{
		Tick:  7,
		Rows:  20,
		Cols:  80,
		Snake: []grid.Position{{Row: 10, Col: 40}, {Row: 10, Col: 39}},
		Deposits: []engine.DepositView{
			{Pos: grid.Position{Row: 1, Col: 2}, State: engine.DepositArmed, Group: 3},
		},
		Score: 20,
	}
	hub.Publish(snap)

	msg := readMessage(t, conn)
	if msg.Type != MessageSnapshot || msg.Snapshot == nil {
		t.Fatalf("Expected snapshot message, got %+v", msg)
	}
	got := msg.Snapshot
	if got.Tick != 7 || got.Score != 20 || len(got.Snake) != 2 {
		t.Errorf("Snapshot mismatch: %+v", got)
	}
	if len(got.Deposits) != 1 || got.Deposits[0].State != engine.DepositArmed {
		t.Errorf("Expected armed deposit, got %+v", got.Deposits)
	}
}

func TestLateJoinerGetsLatestFrame(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	hub.Publish(engine.Snapshot{Tick: 41})
	hub.Publish(engine.Snapshot{Tick: 42})

	conn := dial(t, srv)
	readMessage(t, conn)
	msg := readMessage(t, conn)
	if msg.Snapshot == nil || msg.Snapshot.Tick != 42 {
		t.Errorf("Expected latest tick 42, got %+v", msg.Snapshot)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)
	conn.Close()

	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestSlowClientDropped(t *testing.T) {
	hub := newHub(nil, 1)
	c, ok := hub.register()
	if !ok {
		t.Fatal("register failed")
	}
	// Queue holds hello plus buffer+1 more
	for tick := uint64(1); tick <= 3; tick++ {
		hub.Publish(engine.Snapshot{Tick: tick})
	}
	if hub.Clients() != 0 {
		t.Errorf("Expected slow client dropped, got %d clients", hub.Clients())
	}
	if _, dropped := hub.Stats(); dropped != 1 {
		t.Errorf("Expected 1 drop, got %d", dropped)
	}

	var n int
	for range c.send {
		n++
	}
	if n != 3 {
		t.Errorf("Expected 3 queued messages before drop, got %d", n)
	}
}

func TestCloseRefusesClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)
	hub.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected normal close, got %v", err)
	}

	late := dial(t, srv)
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("Expected going-away close, got %v", err)
	}

	// Publishing after close is a no-op
	hub.Publish(engine.Snapshot{Tick: 1})
}

func TestSchemaEndpoint(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/schema")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("Schema is not JSON: %v", err)
	}
	for _, want := range []string{"chompPhase", "deposits", "snake"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected %q in schema", want)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewHub(nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("Expected ok, got %q", body)
	}
}
