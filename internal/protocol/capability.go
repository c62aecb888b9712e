package protocol

import "github.com/glucolink/facectl/internal/protocol/dict"

// Announcement is the display -> phone capability message: protocol
// version, desired data categories, and the requested history window.
// Sending it also prompts the phone to push fresh data.
type Announcement struct {
	Version      uint8
	Capabilities uint32
	GraphHours   uint8
}

func DefaultAnnouncement() Announcement {
	return Announcement{
		Version:      Version,
		Capabilities: DefaultCapabilities,
		GraphHours:   DefaultGraphHours,
	}
}

// EncodeAnnouncement serializes the capability announcement as one
// dictionary message.
func EncodeAnnouncement(a Announcement) ([]byte, error) {
	return dict.Encode([]dict.Tuple{
		dict.Uint8Tuple(KeyProtocolVersion, a.Version),
		dict.Uint32Tuple(KeyCapabilities, a.Capabilities),
		dict.Uint8Tuple(KeyGraphHours, a.GraphHours),
	})
}

// DecodeAnnouncement parses a capability announcement; the simulator uses
// it to honor the display's requested graph window.
func DecodeAnnouncement(payload []byte) (Announcement, error) {
	tuples, err := dict.Decode(payload)
	if err != nil {
		return Announcement{}, err
	}
	var a Announcement
	if t, ok := dict.Get(tuples, KeyProtocolVersion); ok {
		if v, err := t.Uint8(); err == nil {
			a.Version = v
		}
	}
	if t, ok := dict.Get(tuples, KeyCapabilities); ok {
		if v, err := t.Uint32(); err == nil {
			a.Capabilities = v
		}
	}
	if t, ok := dict.Get(tuples, KeyGraphHours); ok {
		if v, err := t.Uint8(); err == nil {
			a.GraphHours = v
		}
	}
	return a, nil
}
