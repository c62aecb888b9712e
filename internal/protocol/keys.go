package protocol

// Bump for breaking protocol changes.
const Version uint8 = 1

// Message keys: display -> phone capability announcement.
const (
	KeyProtocolVersion uint32 = 0
	KeyCapabilities    uint32 = 1
	KeyGraphHours      uint32 = 2
)

// Message keys: phone -> display telemetry.
const (
	KeyBGTimestamp   uint32 = 10 // uint32: UNIX epoch time [seconds]
	KeyBGString      uint32 = 11 // cstring: formatted BG value, e.g. "7.5" or "135"
	KeyDeltaString   uint32 = 12 // cstring: formatted delta, e.g. "+0.3" or "-5"
	KeyArrowIndex    uint32 = 13 // uint8: trend arrow index, 0 = unknown
	KeyGraphData     uint32 = 14 // bytes: packed graph series
	KeyGraphHighLine uint32 = 15 // high BG threshold, width per revision
	KeyGraphLowLine  uint32 = 16 // low BG threshold, width per revision
	KeyPhoneBattery  uint32 = 17 // uint8: phone battery level (0-100)
)

// Capability bits: data categories the display wants to receive.
const (
	CapBG uint32 = 1 << iota
	CapTrendArrow
	CapDelta
	CapPhoneBattery
)

// DefaultCapabilities is what this display asks for on session start.
const DefaultCapabilities = CapBG | CapTrendArrow | CapDelta | CapPhoneBattery

// DefaultGraphHours is the history window advertised to the phone.
// The renderer decides which points are on-screen from the same value.
const DefaultGraphHours uint8 = 2
