package protocol

import "fmt"

// Revision selects one wire-format variant of the graph payload and the
// threshold fields. The active revision is negotiated at session start via
// the capability announcement; every revision implements the same decode
// contract with its own field widths.
type Revision uint8

const (
	// RevisionLegacy is the original full-resolution format: uint8 count,
	// uint8 offsets, uint16 little-endian values in whole mg/dL.
	RevisionLegacy Revision = iota

	// RevisionCompact halves value resolution to one byte (mg/dL / 2)
	// and keeps uint8 count/offsets. Capacity stays at 60 points.
	RevisionCompact

	// RevisionExtended widens count and offsets to uint16 little-endian
	// for long history windows (24h @ 5 min = 288 points).
	RevisionExtended
)

const (
	capacityShort = 60
	capacityLong  = 300

	// MaxCapacity is the largest point capacity across all revisions.
	// Decode buffers are sized to this once, at startup.
	MaxCapacity = capacityLong
)

var ErrUnknownRevision = fmt.Errorf("protocol: unknown revision")

func ParseRevision(raw string) (Revision, error) {
	switch raw {
	case "legacy":
		return RevisionLegacy, nil
	case "compact":
		return RevisionCompact, nil
	case "extended", "":
		return RevisionExtended, nil
	default:
		return RevisionExtended, fmt.Errorf("%w: %q", ErrUnknownRevision, raw)
	}
}

func (r Revision) String() string {
	switch r {
	case RevisionLegacy:
		return "legacy"
	case RevisionCompact:
		return "compact"
	case RevisionExtended:
		return "extended"
	default:
		return fmt.Sprintf("revision(%d)", uint8(r))
	}
}

// CountWidth is the byte width of the declared point count field.
func (r Revision) CountWidth() int {
	if r == RevisionExtended {
		return 2
	}
	return 1
}

// OffsetWidth is the byte width of one offset-minutes entry.
func (r Revision) OffsetWidth() int {
	if r == RevisionExtended {
		return 2
	}
	return 1
}

// ValueWidth is the byte width of one BG value entry.
func (r Revision) ValueWidth() int {
	if r == RevisionLegacy {
		return 2
	}
	return 1
}

// HalfResolution reports whether values and thresholds are wire-encoded
// in mg/dL / 2 units, requiring a x2 scale on decode.
func (r Revision) HalfResolution() bool {
	return r != RevisionLegacy
}

// Capacity is the maximum number of graph points this revision accepts.
// Declared counts above it are clamped, never rejected.
func (r Revision) Capacity() int {
	if r == RevisionExtended {
		return capacityLong
	}
	return capacityShort
}

// HeaderSize is the fixed prefix before the offset array: a uint32
// little-endian reference timestamp plus the count field.
func (r Revision) HeaderSize() int {
	return 4 + r.CountWidth()
}

// ScaleValue converts one wire value entry to whole mg/dL.
func (r Revision) ScaleValue(raw uint16) uint16 {
	if r.HalfResolution() {
		return raw * 2
	}
	return raw
}

// UnscaleValue converts whole mg/dL to the wire encoding, saturating at
// the width of the value field.
func (r Revision) UnscaleValue(mgdl uint16) uint16 {
	if !r.HalfResolution() {
		return mgdl
	}
	half := mgdl / 2
	if half > 0xFF {
		half = 0xFF
	}
	return half
}
