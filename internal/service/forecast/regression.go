package forecast

import "math"

// Point is one observation of the daily produced series. X is the rank of the
// calendar date among all observed dates, starting at 0.
type Point struct {
	X float64
	Y float64
}

// Points indexes daily totals by their position.
func Points(totals []float64) []Point {
	points := make([]Point, len(totals))
	for i, total := range totals {
		points[i] = Point{X: float64(i), Y: total}
	}
	return points
}

// Fit computes the ordinary least-squares line through points.
//
// When the x values have no spread (fewer than two points) the slope is 0 and
// the intercept is the mean of y, so a single observation predicts itself.
// No points yields a zero line.
func Fit(points []Point) (slope, intercept float64) {
	n := float64(len(points))
	if n == 0 {
		return 0, 0
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	meanX, meanY := sumX/n, sumY/n

	var num, den float64
	for _, p := range points {
		dx := p.X - meanX
		num += dx * (p.Y - meanY)
		den += dx * dx
	}

	if den == 0 {
		return 0, finite(meanY)
	}

	slope = finite(num / den)
	return slope, finite(meanY - slope*meanX)
}

// PredictNext extrapolates the daily series one index past its last value and
// rounds half away from zero.
func PredictNext(totals []float64) int64 {
	slope, intercept := Fit(Points(totals))
	predicted := math.Round(slope*float64(len(totals)) + intercept)
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		return 0
	}
	return int64(predicted)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
