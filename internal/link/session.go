package link

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/glucolink/facectl/internal/display"
	"github.com/glucolink/facectl/internal/observability"
	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/protocol/dict"
	"github.com/glucolink/facectl/internal/protocol/graph"
)

var ErrPhoneURLRequired = errors.New("link: phone url required")

// SessionConfig wires one Session to its peer and its owned state.
type SessionConfig struct {
	Node         string
	PhoneURL     string
	Announcement protocol.Announcement
	Link         Config
}

// Session supervises the phone link. All decoding runs synchronously in
// the read loop, so the display state sees a single writer; the mutex
// exists only for the snapshot boundary used by the status surface.
type Session struct {
	cfg   SessionConfig
	state *display.State

	mu            sync.RWMutex
	connected     bool
	lastMessageAt time.Time
}

func NewSession(cfg SessionConfig, state *display.State) (*Session, error) {
	if cfg.PhoneURL == "" {
		return nil, ErrPhoneURLRequired
	}
	cfg.Link = cfg.Link.WithDefaults()
	return &Session{cfg: cfg, state: state}, nil
}

// Connected reports whether the link currently has a live connection.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// LastMessageAt returns when the last inbound message arrived.
func (s *Session) LastMessageAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageAt
}

// Snapshot copies the display model for the status surface.
func (s *Session) Snapshot(now time.Time) display.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Snapshot(now)
}

// Run drives the connect/read/reconnect loop until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		attempt++
		observability.RecordLinkReconnect(s.cfg.Node)
		log.Warn().
			Str("node", s.cfg.Node).
			Str("phone_url", s.cfg.PhoneURL).
			Int("attempt", attempt).
			Err(err).
			Msg("link lost, reconnecting")
		if err := s.waitBackoff(ctx, attempt); err != nil {
			return nil
		}
	}
}

// runOnce dials, announces capabilities, and reads until the connection
// drops. Returns the terminal read/dial error.
func (s *Session) runOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: s.cfg.Link.HandshakeTimeout}
	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.Link.ConnectTimeout)
	conn, _, err := dialer.DialContext(dialCtx, s.cfg.PhoneURL, nil)
	cancel()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := s.announce(conn); err != nil {
		return err
	}
	s.setConnected(true)
	defer s.setConnected(false)
	log.Info().
		Str("node", s.cfg.Node).
		Str("phone_url", s.cfg.PhoneURL).
		Uint8("graph_hours", s.cfg.Announcement.GraphHours).
		Msg("link connected, capabilities announced")

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.Link.ReadIdleTimeout))
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		s.handlePayload(payload)
	}
}

// announce sends the capability message. Re-sent on every reconnect,
// which also prompts the phone to push fresh data.
func (s *Session) announce(conn *websocket.Conn) error {
	payload, err := protocol.EncodeAnnouncement(s.cfg.Announcement)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.Link.WriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, payload)
}

// handlePayload decodes one inbound message and applies it to the
// display state. Malformed input is logged and dropped; the session and
// the last-known-good state always survive.
func (s *Session) handlePayload(payload []byte) {
	tuples, err := dict.Decode(payload)
	if err != nil {
		observability.RecordLinkMessage(s.cfg.Node, observability.OutcomeInvalid)
		log.Warn().Str("node", s.cfg.Node).Int("bytes", len(payload)).Err(err).
			Msg("undecodable link message dropped")
		return
	}

	s.mu.Lock()
	res := s.state.ApplyMessage(tuples)
	readingDirty := s.state.ConsumeReadingDirty()
	graphDirty := s.state.ConsumeGraphDirty()
	s.lastMessageAt = time.Now()
	s.mu.Unlock()

	if res.Ignored {
		observability.RecordLinkMessage(s.cfg.Node, observability.OutcomeIgnored)
		log.Debug().Str("node", s.cfg.Node).Msg("message without timestamp ignored")
		return
	}
	observability.RecordLinkMessage(s.cfg.Node, observability.OutcomeApplied)

	switch {
	case res.GraphApplied:
		observability.RecordGraphDecode(s.cfg.Node, observability.GraphAccepted)
	case errors.Is(res.GraphErr, graph.ErrShortHeader):
		observability.RecordGraphDecode(s.cfg.Node, observability.GraphShortHeader)
	case errors.Is(res.GraphErr, graph.ErrTruncated):
		observability.RecordGraphDecode(s.cfg.Node, observability.GraphTruncated)
	}
	if res.GraphErr != nil {
		log.Warn().Str("node", s.cfg.Node).Err(res.GraphErr).
			Msg("graph payload rejected, previous series retained")
	}

	if readingDirty || graphDirty {
		log.Debug().
			Str("node", s.cfg.Node).
			Bool("reading_dirty", readingDirty).
			Bool("graph_dirty", graphDirty).
			Msg("redraw requested")
	}
}

func (s *Session) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}

func (s *Session) waitBackoff(ctx context.Context, attempt int) error {
	delay := s.cfg.Link.Backoff.Delay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
