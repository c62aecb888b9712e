package display

import (
	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/protocol/dict"
	"github.com/glucolink/facectl/internal/protocol/graph"
)

// Result reports what one inbound message changed, for logging and
// metrics. None of it is an error surface: every malformed condition
// degrades to keeping the last-known-good state.
type Result struct {
	// Ignored is set when the message carried no timestamp key. Such
	// messages are heartbeat/control traffic, not data updates.
	Ignored bool

	ReadingUpdated bool
	GraphApplied   bool

	// GraphErr records why a present graph_data payload was rejected.
	// The previous series is retained untouched.
	GraphErr error
}

// ApplyMessage merges one inbound dictionary into the display state.
// The timestamp key gates the whole update; for every optional field,
// absence leaves the previous value unchanged. The graph payload is the
// one exception to incremental merge: it is replaced wholesale.
func (s *State) ApplyMessage(tuples []dict.Tuple) Result {
	tsTuple, ok := dict.Get(tuples, protocol.KeyBGTimestamp)
	if !ok {
		return Result{Ignored: true}
	}
	ts, err := tsTuple.Uint32()
	if err != nil {
		return Result{Ignored: true}
	}

	s.reading.Timestamp = ts
	s.readingDirty = true

	if t, ok := dict.Get(tuples, protocol.KeyBGString); ok {
		copyCString(s.reading.bg[:], t.Value)
	}
	if t, ok := dict.Get(tuples, protocol.KeyDeltaString); ok {
		copyCString(s.reading.delta[:], t.Value)
	}

	// Stored raw; range validation is deferred to ArrowName at render
	// time so a newer phone app can send indexes this build predates.
	if t, ok := dict.Get(tuples, protocol.KeyArrowIndex); ok {
		if v, err := t.Uint8(); err == nil {
			s.reading.ArrowIndex = v
		}
	}

	res := Result{ReadingUpdated: true}

	if t, ok := dict.Get(tuples, protocol.KeyGraphData); ok {
		if err := graph.DecodeInto(&s.series, t.Value, s.rev); err != nil {
			res.GraphErr = err
		} else {
			res.GraphApplied = true
			s.graphDirty = true
		}
	}

	if v, ok := s.thresholdValue(tuples, protocol.KeyGraphHighLine); ok {
		s.highLine = v
		s.graphDirty = true
	}
	if v, ok := s.thresholdValue(tuples, protocol.KeyGraphLowLine); ok {
		s.lowLine = v
		s.graphDirty = true
	}

	if t, ok := dict.Get(tuples, protocol.KeyPhoneBattery); ok {
		if v, err := t.Uint8(); err == nil {
			s.phoneBattery = int(v)
		}
	}

	return res
}

// thresholdValue decodes a high/low line tuple in the active revision's
// width and resolution. A width mismatch keeps the previous value.
func (s *State) thresholdValue(tuples []dict.Tuple, key uint32) (uint16, bool) {
	t, ok := dict.Get(tuples, key)
	if !ok {
		return 0, false
	}
	if s.rev.HalfResolution() {
		v, err := t.Uint8()
		if err != nil {
			return 0, false
		}
		return s.rev.ScaleValue(uint16(v)), true
	}
	v, err := t.Uint16()
	if err != nil {
		return 0, false
	}
	return v, true
}
