package link

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glucolink/facectl/internal/display"
	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/simulator"
	"github.com/glucolink/facectl/internal/testutil/testlog"
)

func TestNewSessionRequiresPhoneURL(t *testing.T) {
	_, err := NewSession(SessionConfig{Node: "face-01"}, display.NewState(protocol.RevisionCompact))
	if !errors.Is(err, ErrPhoneURLRequired) {
		t.Fatalf("expected ErrPhoneURLRequired, got %v", err)
	}
}

func TestSessionReceivesSimulatedTelemetry(t *testing.T) {
	testlog.Start(t)

	sim := &simulator.Server{
		Generator: simulator.NewGenerator(protocol.RevisionCompact),
		Interval:  50 * time.Millisecond,
	}
	ts := httptest.NewServer(http.HandlerFunc(sim.HandleLink))
	defer ts.Close()

	state := display.NewState(protocol.RevisionCompact)
	sess, err := NewSession(SessionConfig{
		Node:         "face-test",
		PhoneURL:     "ws" + strings.TrimPrefix(ts.URL, "http"),
		Announcement: protocol.DefaultAnnouncement(),
	}, state)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	deadline := time.Now().Add(4 * time.Second)
	for {
		snap := sess.Snapshot(time.Now())
		if snap.Timestamp != 0 && snap.Graph.Count > 0 {
			if snap.BG == "" || snap.BG == "---" {
				t.Fatalf("bg not updated: %+v", snap)
			}
			if snap.PhoneBattery != 87 {
				t.Fatalf("battery: got %d want 87", snap.PhoneBattery)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("no telemetry applied before deadline: %+v", snap)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !sess.Connected() {
		t.Fatalf("session should report connected")
	}
	if sess.LastMessageAt().IsZero() {
		t.Fatalf("last message time not recorded")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop on cancel")
	}
}

func TestSessionReconnectsAfterServerRestart(t *testing.T) {
	testlog.Start(t)

	sim := &simulator.Server{
		Generator: simulator.NewGenerator(protocol.RevisionCompact),
		Interval:  50 * time.Millisecond,
	}
	ts := httptest.NewServer(http.HandlerFunc(sim.HandleLink))
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	state := display.NewState(protocol.RevisionCompact)
	sess, err := NewSession(SessionConfig{
		Node:         "face-test",
		PhoneURL:     url,
		Announcement: protocol.DefaultAnnouncement(),
		Link: Config{
			Backoff: BackoffConfig{InitialDelay: 200 * time.Millisecond, Multiplier: 1.0},
		},
	}, state)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go func() { _ = sess.Run(ctx) }()

	waitConnected := func(want bool) {
		deadline := time.Now().Add(4 * time.Second)
		for sess.Connected() != want {
			if time.Now().After(deadline) {
				t.Fatalf("connected never became %v", want)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	waitConnected(true)
	ts.CloseClientConnections()
	waitConnected(false)
	waitConnected(true)
	ts.Close()
}
