// Package graph owns the packed time-series payload carried in the
// graph_data tuple: a reference timestamp plus parallel offset/value
// arrays, with field widths selected by the protocol revision.
package graph

import (
	"errors"

	"github.com/glucolink/facectl/internal/protocol"
)

var (
	ErrShortHeader = errors.New("graph: payload shorter than header")
	ErrTruncated   = errors.New("graph: payload shorter than declared count")
)

// Point is one decoded history sample. MGDL is in whole mg/dL after any
// half-resolution scaling.
type Point struct {
	OffsetMinutes uint16
	MGDL          uint16
}

// Series is the decoded history buffer. The arrays are sized once for the
// largest revision capacity so decode never allocates; Count bounds the
// valid prefix. Absolute time of point i = RefTimestamp + Offsets[i]*60.
type Series struct {
	RefTimestamp uint32
	Count        int
	Offsets      [protocol.MaxCapacity]uint16
	Values       [protocol.MaxCapacity]uint16
}

// Points returns the valid samples as a freshly allocated slice. Intended
// for status/render snapshots, not for the decode path.
func (s *Series) Points() []Point {
	out := make([]Point, s.Count)
	for i := 0; i < s.Count; i++ {
		out[i] = Point{OffsetMinutes: s.Offsets[i], MGDL: s.Values[i]}
	}
	return out
}
