package graph

import (
	"encoding/binary"

	"github.com/glucolink/facectl/internal/protocol"
)

// DecodeInto parses one graph_data payload and replaces dst wholesale.
// The payload comes from a live peer and its length fields are untrusted:
// the declared count is clamped to the revision capacity before any length
// arithmetic, and every read is validated up front so a rejection leaves
// dst completely untouched.
//
// Clamp policy: the expected-length check is sized off the clamped count,
// not the declared one, so a sender that over-declares gets its excess
// points silently dropped rather than the whole message rejected.
func DecodeInto(dst *Series, payload []byte, rev protocol.Revision) error {
	headerSize := rev.HeaderSize()
	if len(payload) < headerSize {
		return ErrShortHeader
	}

	refTimestamp := binary.LittleEndian.Uint32(payload[0:4])

	var count int
	if rev.CountWidth() == 2 {
		count = int(binary.LittleEndian.Uint16(payload[4:6]))
	} else {
		count = int(payload[4])
	}
	if max := rev.Capacity(); count > max {
		count = max
	}

	offsetWidth := rev.OffsetWidth()
	valueWidth := rev.ValueWidth()
	expected := headerSize + count*(offsetWidth+valueWidth)
	if len(payload) < expected {
		return ErrTruncated
	}

	for i := 0; i < count; i++ {
		at := headerSize + i*offsetWidth
		if offsetWidth == 2 {
			dst.Offsets[i] = binary.LittleEndian.Uint16(payload[at : at+2])
		} else {
			dst.Offsets[i] = uint16(payload[at])
		}
	}

	valuesAt := headerSize + count*offsetWidth
	for i := 0; i < count; i++ {
		at := valuesAt + i*valueWidth
		var raw uint16
		if valueWidth == 2 {
			raw = binary.LittleEndian.Uint16(payload[at : at+2])
		} else {
			raw = uint16(payload[at])
		}
		dst.Values[i] = rev.ScaleValue(raw)
	}

	dst.RefTimestamp = refTimestamp
	dst.Count = count
	return nil
}
