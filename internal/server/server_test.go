package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glucolink/facectl/internal/display"
	"github.com/glucolink/facectl/internal/link"
	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/testutil/testlog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	state := display.NewState(protocol.RevisionCompact)
	sess, err := link.NewSession(link.SessionConfig{
		Node:     "face-test",
		PhoneURL: "ws://phone.invalid/link",
	}, state)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	srv := New("face-test", ":0", nil, sess)
	srv.RegisterRoutes()
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status: %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("health body: %v", err)
	}
	if body["status"] != "ok" || body["node"] != "face-test" {
		t.Fatalf("health payload: %v", body)
	}
}

func TestReadyReportsLinkState(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ready status: %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("ready body: %v", err)
	}
	if body["connected"] != false {
		t.Fatalf("expected disconnected link: %v", body)
	}
}

func TestStatusReturnsDisplaySnapshot(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status code: %d", w.Code)
	}
	var body struct {
		Node    string           `json:"node"`
		Display display.Snapshot `json:"display"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("status body: %v", err)
	}
	if body.Node != "face-test" {
		t.Fatalf("node: %q", body.Node)
	}
	if body.Display.BG != "---" {
		t.Fatalf("startup bg: %q", body.Display.BG)
	}
	if body.Display.HighLine != 180 || body.Display.LowLine != 72 {
		t.Fatalf("default thresholds: %+v", body.Display)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("empty metrics body")
	}
}
