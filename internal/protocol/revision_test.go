package protocol

import (
	"errors"
	"testing"
)

func TestRevisionWidthsAndCapacities(t *testing.T) {
	cases := []struct {
		rev         Revision
		countWidth  int
		offsetWidth int
		valueWidth  int
		capacity    int
		headerSize  int
		halfRes     bool
	}{
		{RevisionLegacy, 1, 1, 2, 60, 5, false},
		{RevisionCompact, 1, 1, 1, 60, 5, true},
		{RevisionExtended, 2, 2, 1, 300, 6, true},
	}
	for _, c := range cases {
		if got := c.rev.CountWidth(); got != c.countWidth {
			t.Fatalf("%s count width: got %d want %d", c.rev, got, c.countWidth)
		}
		if got := c.rev.OffsetWidth(); got != c.offsetWidth {
			t.Fatalf("%s offset width: got %d want %d", c.rev, got, c.offsetWidth)
		}
		if got := c.rev.ValueWidth(); got != c.valueWidth {
			t.Fatalf("%s value width: got %d want %d", c.rev, got, c.valueWidth)
		}
		if got := c.rev.Capacity(); got != c.capacity {
			t.Fatalf("%s capacity: got %d want %d", c.rev, got, c.capacity)
		}
		if got := c.rev.HeaderSize(); got != c.headerSize {
			t.Fatalf("%s header size: got %d want %d", c.rev, got, c.headerSize)
		}
		if got := c.rev.HalfResolution(); got != c.halfRes {
			t.Fatalf("%s half resolution: got %v want %v", c.rev, got, c.halfRes)
		}
	}
}

func TestRevisionValueScaling(t *testing.T) {
	if got := RevisionCompact.ScaleValue(50); got != 100 {
		t.Fatalf("compact scale: got %d want 100", got)
	}
	if got := RevisionLegacy.ScaleValue(142); got != 142 {
		t.Fatalf("legacy scale: got %d want 142", got)
	}
	if got := RevisionCompact.UnscaleValue(180); got != 90 {
		t.Fatalf("compact unscale: got %d want 90", got)
	}
	// Half-resolution wire bytes saturate rather than wrap.
	if got := RevisionCompact.UnscaleValue(600); got != 0xFF {
		t.Fatalf("compact unscale saturation: got %d want 255", got)
	}
}

func TestParseRevision(t *testing.T) {
	for raw, want := range map[string]Revision{
		"legacy":   RevisionLegacy,
		"compact":  RevisionCompact,
		"extended": RevisionExtended,
		"":         RevisionExtended,
	} {
		got, err := ParseRevision(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %s want %s", raw, got, want)
		}
	}
	if _, err := ParseRevision("v9"); !errors.Is(err, ErrUnknownRevision) {
		t.Fatalf("expected ErrUnknownRevision, got %v", err)
	}
}
