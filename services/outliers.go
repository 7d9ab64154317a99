package services

import (
	"math"
	"slices"

	"airbnb-cleaner/models"
)

// tukeyK is the IQR multiplier of the outlier fence.
const tukeyK = 1.5

// TukeyFence returns [Q1 − 1.5·IQR, Q3 + 1.5·IQR] for xs. An empty sample
// yields a zero fence.
func TukeyFence(xs []float64) models.Fence {
	if len(xs) == 0 {
		return models.Fence{}
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return models.Fence{
		Q1:    q1,
		Q3:    q3,
		Lower: q1 - tukeyK*iqr,
		Upper: q3 + tukeyK*iqr,
	}
}

// quantile interpolates linearly between the order statistics of a sorted,
// non-empty sample at position (n−1)·p.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
