// Package simulator generates synthetic phone-side telemetry so the
// display client can be exercised without a live CGM source.
package simulator

import (
	"fmt"
	"time"

	"github.com/glucolink/facectl/internal/protocol"
	"github.com/glucolink/facectl/internal/protocol/dict"
	"github.com/glucolink/facectl/internal/protocol/graph"
)

const sampleIntervalMinutes = 5

// Generator produces a deterministic wave pattern around a base BG so
// graphs are visually plausible and tests are repeatable.
type Generator struct {
	Revision protocol.Revision
	BaseMGDL uint16
}

func NewGenerator(rev protocol.Revision) *Generator {
	return &Generator{Revision: rev, BaseMGDL: 150}
}

// waveValue is the BG at sample index i: a triangle wave of ±24 mg/dL
// around the base, period 12 samples.
func (g *Generator) waveValue(i int) uint16 {
	phase := i % 12
	variation := phase * 8
	if phase >= 6 {
		variation = (12 - phase) * 8
	}
	return g.BaseMGDL + uint16(variation) - 24
}

// GraphPoints builds a history window ending at now, one sample every
// five minutes, oldest first.
func (g *Generator) GraphPoints(hours int) []graph.Point {
	count := hours * 60 / sampleIntervalMinutes
	if max := g.Revision.Capacity(); count > max {
		count = max
	}
	// Single-byte offsets cap the representable window regardless of the
	// revision's point capacity.
	if g.Revision.OffsetWidth() == 1 {
		if limit := 0xFF/sampleIntervalMinutes + 1; count > limit {
			count = limit
		}
	}
	points := make([]graph.Point, count)
	for i := 0; i < count; i++ {
		points[i] = graph.Point{
			OffsetMinutes: uint16(i * sampleIntervalMinutes),
			MGDL:          g.waveValue(i),
		}
	}
	return points
}

// BuildDataMessage assembles one full telemetry message: reading fields,
// packed graph, threshold lines, and battery.
func (g *Generator) BuildDataMessage(now time.Time, graphHours int) ([]byte, error) {
	points := g.GraphPoints(graphHours)
	refTimestamp := uint32(now.Unix()) - uint32(graphHours)*3600

	payload, err := graph.Encode(g.Revision, refTimestamp, points)
	if err != nil {
		return nil, err
	}

	current := g.waveValue(len(points) - 1)
	prev := current
	if len(points) >= 2 {
		prev = g.waveValue(len(points) - 2)
	}
	delta := int(current) - int(prev)

	arrow := uint8(4) // flat
	if delta > 4 {
		arrow = 3 // forty-five up
	} else if delta < -4 {
		arrow = 5 // forty-five down
	}

	high := g.Revision.UnscaleValue(180)
	low := g.Revision.UnscaleValue(72)

	tuples := []dict.Tuple{
		dict.Uint32Tuple(protocol.KeyBGTimestamp, uint32(now.Unix())),
		dict.CStringTuple(protocol.KeyBGString, fmt.Sprintf("%d", current)),
		dict.CStringTuple(protocol.KeyDeltaString, fmt.Sprintf("%+d", delta)),
		dict.Uint8Tuple(protocol.KeyArrowIndex, arrow),
		dict.BytesTuple(protocol.KeyGraphData, payload),
	}
	if g.Revision.HalfResolution() {
		tuples = append(tuples,
			dict.Uint8Tuple(protocol.KeyGraphHighLine, uint8(high)),
			dict.Uint8Tuple(protocol.KeyGraphLowLine, uint8(low)),
		)
	} else {
		tuples = append(tuples,
			dict.Uint16Tuple(protocol.KeyGraphHighLine, high),
			dict.Uint16Tuple(protocol.KeyGraphLowLine, low),
		)
	}
	tuples = append(tuples, dict.Uint8Tuple(protocol.KeyPhoneBattery, 87))

	return dict.Encode(tuples)
}
