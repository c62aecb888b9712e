package display

import (
	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/protocol/graph"
)

// String capacities match the wire contract: BG fits "10.0", delta fits
// "+0.06". Both buffers are fixed and always NUL-terminated; longer input
// is truncated silently.
const (
	bgCapacity    = 5
	deltaCapacity = 6
)

// Reading is the current scalar glucose state. Timestamp 0 is the
// "never received" sentinel and suppresses time-ago rendering.
type Reading struct {
	Timestamp  uint32
	ArrowIndex uint8

	bg    [bgCapacity]byte
	delta [deltaCapacity]byte
}

// BG returns the formatted glucose string.
func (r *Reading) BG() string {
	return cstring(r.bg[:])
}

// Delta returns the formatted delta string.
func (r *Reading) Delta() string {
	return cstring(r.delta[:])
}

// State is the owned display model. No locking: decode and render run on
// the same logical thread, coordinated only by the dirty flags.
type State struct {
	rev protocol.Revision

	reading Reading
	series  graph.Series

	// Alert thresholds in whole mg/dL, decoded independently of the
	// graph payload's success or failure.
	highLine uint16
	lowLine  uint16

	// Phone battery percent; -1 until first reported.
	phoneBattery int

	readingDirty bool
	graphDirty   bool
}

// NewState builds the startup state: sentinel reading ("---", no data)
// and an empty series, with the default 180/72 mg/dL threshold lines.
func NewState(rev protocol.Revision) *State {
	s := &State{
		rev:          rev,
		highLine:     180,
		lowLine:      72,
		phoneBattery: -1,
	}
	copyCString(s.reading.bg[:], []byte("---"))
	copyCString(s.reading.delta[:], nil)
	return s
}

func (s *State) Revision() protocol.Revision { return s.rev }

// Reading returns a copy of the current reading.
func (s *State) Reading() Reading { return s.reading }

// Series exposes the decoded history buffer to the renderer. The
// renderer must not mutate it.
func (s *State) Series() *graph.Series { return &s.series }

func (s *State) HighLine() uint16 { return s.highLine }
func (s *State) LowLine() uint16  { return s.lowLine }

// PhoneBattery returns the last reported phone battery percent, or -1.
func (s *State) PhoneBattery() int { return s.phoneBattery }

// ConsumeReadingDirty reports and clears the reading redraw flag.
func (s *State) ConsumeReadingDirty() bool {
	d := s.readingDirty
	s.readingDirty = false
	return d
}

// ConsumeGraphDirty reports and clears the graph redraw flag.
func (s *State) ConsumeGraphDirty() bool {
	d := s.graphDirty
	s.graphDirty = false
	return d
}

// copyCString copies src into the fixed buffer dst, truncating to
// len(dst)-1 bytes and guaranteeing NUL termination. A NUL inside src
// ends the copy early.
func copyCString(dst []byte, src []byte) {
	n := 0
	for n < len(dst)-1 && n < len(src) && src[n] != 0 {
		dst[n] = src[n]
		n++
	}
	for ; n < len(dst); n++ {
		dst[n] = 0
	}
}

func cstring(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
