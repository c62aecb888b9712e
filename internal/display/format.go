package display

import (
	"fmt"
	"time"
)

// Trend arrow vocabulary, indexed by the wire arrow_index. Index 0 is
// "unknown" on the wire and renders as no arrow.
var arrowNames = [...]string{
	"",
	"⇈", // double up
	"↑", // up
	"↗", // forty-five up
	"→", // flat
	"↘", // forty-five down
	"↓", // down
	"⇊", // double down
}

// ArrowName maps the stored raw index to a renderable glyph. Any index
// outside the known vocabulary renders as no arrow.
func (r *Reading) ArrowName() string {
	if int(r.ArrowIndex) >= len(arrowNames) {
		return ""
	}
	return arrowNames[r.ArrowIndex]
}

// TimeAgo formats the reading age against the caller-supplied clock,
// "7m" under an hour and "3h" beyond. Empty until the first reading
// arrives; the decoder itself never reads wall-clock time.
func (r *Reading) TimeAgo(now time.Time) string {
	if r.Timestamp == 0 {
		return ""
	}
	minutes := int(now.Unix()-int64(r.Timestamp)) / 60
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh", minutes/60)
}
