package service

import "math"

// projectNext fits an ordinary-least-squares line over (index, value) pairs
// and evaluates it one step past the end of the series, rounded to the
// nearest integer. Short series degrade instead of failing: an empty series
// projects 0 and a single point projects flat.
func projectNext(series []float64) float64 {
	n := len(series)
	switch n {
	case 0:
		return 0
	case 1:
		return math.Round(series[0])
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	return math.Round(intercept + slope*fn)
}

// round2 rounds to two decimal places, the precision used by all rate fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
