package graph

import (
	"encoding/binary"
	"errors"

	"github.com/glucolink/facectl/internal/protocol"
)

var (
	ErrTooManyPoints  = errors.New("graph: point count exceeds revision capacity")
	ErrOffsetOverflow = errors.New("graph: offset exceeds field width")
)

// Encode packs points into one graph_data payload for the given revision.
// The phone side and the simulator share this; decode tolerance for
// malformed input is exercised separately with hand-built payloads.
func Encode(rev protocol.Revision, refTimestamp uint32, points []Point) ([]byte, error) {
	if len(points) > rev.Capacity() {
		return nil, ErrTooManyPoints
	}
	offsetWidth := rev.OffsetWidth()
	valueWidth := rev.ValueWidth()

	out := make([]byte, rev.HeaderSize()+len(points)*(offsetWidth+valueWidth))
	binary.LittleEndian.PutUint32(out[0:4], refTimestamp)
	if rev.CountWidth() == 2 {
		binary.LittleEndian.PutUint16(out[4:6], uint16(len(points)))
	} else {
		out[4] = uint8(len(points))
	}

	headerSize := rev.HeaderSize()
	for i, p := range points {
		at := headerSize + i*offsetWidth
		if offsetWidth == 2 {
			binary.LittleEndian.PutUint16(out[at:at+2], p.OffsetMinutes)
		} else {
			if p.OffsetMinutes > 0xFF {
				return nil, ErrOffsetOverflow
			}
			out[at] = uint8(p.OffsetMinutes)
		}
	}

	valuesAt := headerSize + len(points)*offsetWidth
	for i, p := range points {
		at := valuesAt + i*valueWidth
		raw := rev.UnscaleValue(p.MGDL)
		if valueWidth == 2 {
			binary.LittleEndian.PutUint16(out[at:at+2], raw)
		} else {
			out[at] = uint8(raw)
		}
	}
	return out, nil
}
