package simulator

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/glucolink/facectl/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server pushes synthetic telemetry to every connected display.
type Server struct {
	Generator *Generator
	Interval  time.Duration
}

// HandleLink upgrades one display connection, waits for its capability
// announcement, and pushes data messages honoring the requested window.
func (s *Server) HandleLink(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("link upgrade failed")
		return
	}
	defer conn.Close()

	graphHours := int(protocol.DefaultGraphHours)
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	if _, payload, err := conn.ReadMessage(); err == nil {
		if a, err := protocol.DecodeAnnouncement(payload); err == nil && a.GraphHours > 0 {
			graphHours = int(a.GraphHours)
			log.Info().
				Uint8("version", a.Version).
				Uint32("capabilities", a.Capabilities).
				Int("graph_hours", graphHours).
				Msg("display announced capabilities")
		}
	}

	// First push immediately, then on the interval.
	for {
		msg, err := s.Generator.BuildDataMessage(time.Now(), graphHours)
		if err != nil {
			log.Error().Err(err).Msg("build data message failed")
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			log.Info().Err(err).Msg("display disconnected")
			return
		}
		time.Sleep(s.Interval)
	}
}
