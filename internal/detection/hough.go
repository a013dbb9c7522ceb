package detection

import (
	"math"
	"sort"
)

// Segment is a detected straight line segment in pixel coordinates of the
// image it was found on. (X1,Y1) and (X2,Y2) are the segment endpoints.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Length returns the Euclidean length of the segment in pixels.
func (s Segment) Length() float64 {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleDegrees returns the segment orientation as atan2(dy, dx) in degrees,
// in the range (-180, 180].
func (s Segment) AngleDegrees() float64 {
	return math.Atan2(float64(s.Y2-s.Y1), float64(s.X2-s.X1)) * 180 / math.Pi
}

// HoughParams controls the probabilistic Hough segment extraction.
//
// Angular resolution is fixed at 1 degree and distance resolution at 1
// pixel, matching the accumulator layout.
type HoughParams struct {
	// VoteThreshold is the minimum accumulator vote count for a line
	// candidate to be considered.
	VoteThreshold int

	// MinLineLength is the minimum segment length in pixels.
	MinLineLength int

	// MaxLineGap is the largest gap in pixels bridged within one segment.
	MaxLineGap int
}

// DefaultHoughParams are tuned for architectural features: window frames
// and door frames clear the 80px length floor, small breaks in an edge are
// bridged up to 10px.
var DefaultHoughParams = HoughParams{
	VoteThreshold: 60,
	MinLineLength: 80,
	MaxLineGap:    10,
}

type houghPoint struct {
	x, y int
	t    float64 // projection along the line direction
}

// DetectSegments finds straight line segments in a binary edge map using a
// Hough transform with 1° angular and 1px distance resolution.
//
// Peaks in the accumulator that clear VoteThreshold are examined strongest
// first. For each peak the edge pixels within 2px of the candidate line are
// ordered by their projection along the line and split into runs wherever
// consecutive pixels are more than MaxLineGap apart; each run at least
// MinLineLength long becomes a segment. Pixels consumed by a segment are
// removed from the edge map so overlapping peaks do not re-emit the same
// stroke.
//
// An empty result is a valid outcome, not an error.
func DetectSegments(edges [][]bool, params HoughParams) []Segment {
	height := len(edges)
	if height == 0 {
		return []Segment{}
	}
	width := len(edges[0])
	if width == 0 {
		return []Segment{}
	}

	// Work on a copy so consumed pixels can be cleared.
	remaining := make([][]bool, height)
	for y := range edges {
		remaining[y] = make([]bool, width)
		copy(remaining[y], edges[y])
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Find local maxima above the vote threshold
	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < params.VoteThreshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 {
						if accumulator[nr][nt] > accumulator[rhoIdx][theta] {
							isMax = false
						}
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{
					rho:   rhoIdx - maxDist,
					theta: theta,
					votes: accumulator[rhoIdx][theta],
				})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	segments := make([]Segment, 0)

	for _, pk := range peaks {
		angle := float64(pk.theta) * math.Pi / 180.0
		rho := float64(pk.rho)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Collect the not-yet-consumed edge pixels near this line,
		// projected onto the line direction (-sin, cos).
		points := make([]houghPoint, 0)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !remaining[y][x] {
					continue
				}
				dist := math.Abs(float64(x)*cosA + float64(y)*sinA - rho)
				if dist < 2.0 {
					t := -float64(x)*sinA + float64(y)*cosA
					points = append(points, houghPoint{x: x, y: y, t: t})
				}
			}
		}
		if len(points) < params.MinLineLength {
			continue
		}

		sort.Slice(points, func(i, j int) bool {
			return points[i].t < points[j].t
		})

		// Split the ordered points into runs wherever the gap exceeds
		// MaxLineGap, then keep runs long enough to be segments.
		runStart := 0
		for i := 1; i <= len(points); i++ {
			if i < len(points) && points[i].t-points[i-1].t <= float64(params.MaxLineGap) {
				continue
			}
			run := points[runStart:i]
			runStart = i

			if len(run) < 2 {
				continue
			}
			first, last := run[0], run[len(run)-1]
			seg := Segment{X1: first.x, Y1: first.y, X2: last.x, Y2: last.y}
			if seg.Length() < float64(params.MinLineLength) {
				continue
			}

			segments = append(segments, seg)
			for _, p := range run {
				remaining[p.y][p.x] = false
			}
		}
	}

	return segments
}
