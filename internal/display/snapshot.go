package display

import (
	"time"

	"github.com/glucolink/facectl/internal/protocol/graph"
)

// Snapshot is a read-only copy of the display model for the status
// surface. Building it allocates; it is not part of the decode path.
type Snapshot struct {
	Timestamp    uint32        `json:"timestamp"`
	BG           string        `json:"bg"`
	Delta        string        `json:"delta"`
	Arrow        string        `json:"arrow"`
	ArrowIndex   uint8         `json:"arrow_index"`
	TimeAgo      string        `json:"time_ago,omitempty"`
	HighLine     uint16        `json:"high_line"`
	LowLine      uint16        `json:"low_line"`
	PhoneBattery int           `json:"phone_battery"`
	Graph        GraphSnapshot `json:"graph"`
}

type GraphSnapshot struct {
	RefTimestamp uint32        `json:"ref_timestamp"`
	Count        int           `json:"count"`
	Points       []graph.Point `json:"points,omitempty"`
}

// Snapshot copies the current model state.
func (s *State) Snapshot(now time.Time) Snapshot {
	r := s.reading
	return Snapshot{
		Timestamp:    r.Timestamp,
		BG:           r.BG(),
		Delta:        r.Delta(),
		Arrow:        r.ArrowName(),
		ArrowIndex:   r.ArrowIndex,
		TimeAgo:      r.TimeAgo(now),
		HighLine:     s.highLine,
		LowLine:      s.lowLine,
		PhoneBattery: s.phoneBattery,
		Graph: GraphSnapshot{
			RefTimestamp: s.series.RefTimestamp,
			Count:        s.series.Count,
			Points:       s.series.Points(),
		},
	}
}
