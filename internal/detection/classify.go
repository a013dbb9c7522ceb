package detection

import "math"

// Angle bands for classification, in degrees of absolute orientation.
// Lines outside both bands are diagonals and carry no architectural signal.
const (
	verticalLow    = 80.0
	verticalHigh   = 100.0
	horizontalLow  = 10.0
	horizontalHigh = 170.0
)

// LineSummary aggregates the detected segments of one image.
//
// Count covers every detected segment; VerticalCount and HorizontalCount
// cover only the segments that fell into an angle band, so Count can exceed
// their sum when diagonals were discarded. The angle lists hold signed
// angles in degrees. An empty bucket averages to exactly 0.0 - callers must
// treat a zero count as "no signal" rather than reading 0.0 as a real
// estimate.
type LineSummary struct {
	Count              int       `json:"count"`
	VerticalCount      int       `json:"verticalCount"`
	HorizontalCount    int       `json:"horizontalCount"`
	VerticalAngles     []float64 `json:"verticalAngles"`
	HorizontalAngles   []float64 `json:"horizontalAngles"`
	AvgVerticalAngle   float64   `json:"avgVerticalAngle"`
	AvgHorizontalAngle float64   `json:"avgHorizontalAngle"`
}

// Classify buckets segments into vertical and horizontal lines by angle.
//
// A segment with absolute angle a (degrees) is vertical when 80 <= a <= 100
// and horizontal when a <= 10 or a >= 170, both boundaries inclusive.
// Anything else is discarded. The stored angles keep their sign so that
// orientation survives averaging.
//
// An empty input is not an error: it yields a summary with zero counts and
// 0.0 averages.
func Classify(segments []Segment) LineSummary {
	verticalAngles := make([]float64, 0)
	horizontalAngles := make([]float64, 0)

	for _, seg := range segments {
		angle := seg.AngleDegrees()
		switch classifyAngle(angle) {
		case orientationVertical:
			verticalAngles = append(verticalAngles, angle)
		case orientationHorizontal:
			horizontalAngles = append(horizontalAngles, angle)
		}
	}

	return LineSummary{
		Count:              len(segments),
		VerticalCount:      len(verticalAngles),
		HorizontalCount:    len(horizontalAngles),
		VerticalAngles:     verticalAngles,
		HorizontalAngles:   horizontalAngles,
		AvgVerticalAngle:   mean(verticalAngles),
		AvgHorizontalAngle: mean(horizontalAngles),
	}
}

type orientation int

const (
	orientationNone orientation = iota
	orientationVertical
	orientationHorizontal
)

// classifyAngle buckets a signed angle in degrees by its absolute value.
// Both band boundaries are inclusive.
func classifyAngle(angle float64) orientation {
	absAngle := math.Abs(angle)
	switch {
	case absAngle >= verticalLow && absAngle <= verticalHigh:
		return orientationVertical
	case absAngle <= horizontalLow || absAngle >= horizontalHigh:
		return orientationHorizontal
	default:
		return orientationNone
	}
}

// mean returns the arithmetic mean, or 0.0 for an empty list.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
