package validate

import (
	"math"

	"github.com/realenhance/structural-validator/internal/detection"
)

// DefaultSensitivity is the deviation threshold in degrees applied when a
// request does not supply one.
const DefaultSensitivity = 5.0

// Deviation compares the line statistics of two images.
//
// A shift on an axis is only measured when both images detected lines on
// that axis; absence of signal in either image is treated as "no detectable
// shift", not as maximal divergence. Score is the plain sum of the two
// shifts, and Suspicious is true when Score strictly exceeds the
// sensitivity threshold.
type Deviation struct {
	VerticalShift   float64
	HorizontalShift float64
	Score           float64
	Suspicious      bool
}

// Score compares two line summaries against a sensitivity threshold in
// degrees. Computation keeps full precision; rounding for presentation is
// the caller's concern.
func Score(original, enhanced detection.LineSummary, sensitivity float64) Deviation {
	var verticalShift float64
	if original.VerticalCount > 0 && enhanced.VerticalCount > 0 {
		verticalShift = math.Abs(enhanced.AvgVerticalAngle - original.AvgVerticalAngle)
	}

	var horizontalShift float64
	if original.HorizontalCount > 0 && enhanced.HorizontalCount > 0 {
		horizontalShift = math.Abs(enhanced.AvgHorizontalAngle - original.AvgHorizontalAngle)
	}

	score := verticalShift + horizontalShift

	return Deviation{
		VerticalShift:   verticalShift,
		HorizontalShift: horizontalShift,
		Score:           score,
		Suspicious:      score > sensitivity,
	}
}

// round3 rounds to 3 decimal digits for the externally visible fields.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
