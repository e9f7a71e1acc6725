// Package stats provides the small set of descriptive statistics the
// cleaning pipeline needs: quantiles, Tukey fences, standardization and
// the Box-Cox power transform. All functions are pure and operate on
// plain []float64 slices without mutating their input.
package stats

import (
	"math"
	"sort"
)

// FenceMultiplier is the standard Tukey fence constant.
const FenceMultiplier = 1.5

// Quantile returns the value at quantile p (0..1) using linear
// interpolation between order statistics. Returns NaN for empty input.
func Quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Median returns the middle value of the distribution.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Fences holds a Tukey fence interval together with the quartiles that
// produced it.
type Fences struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// TukeyFences computes [Q1 - k*IQR, Q3 + k*IQR] with k = FenceMultiplier.
func TukeyFences(values []float64) Fences {
	q1 := Quantile(values, 0.25)
	q3 := Quantile(values, 0.75)
	iqr := q3 - q1
	return Fences{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - FenceMultiplier*iqr,
		Upper: q3 + FenceMultiplier*iqr,
	}
}

// Outside reports whether v lies strictly outside the fence interval.
func (f Fences) Outside(v float64) bool {
	return v < f.Lower || v > f.Upper
}

// Mean returns the arithmetic mean, NaN for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// ZScores standardizes values to (x - mean) / stddev. A zero standard
// deviation yields all-zero scores.
func ZScores(values []float64) []float64 {
	mean := Mean(values)
	sd := StdDev(values)

	scores := make([]float64, len(values))
	if sd == 0 {
		return scores
	}
	for i, v := range values {
		scores[i] = (v - mean) / sd
	}
	return scores
}
