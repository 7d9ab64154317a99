package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"airbnb-cleaner/models"
)

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.75, 4},
		{1, 5},
		{0.1, 1.4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, quantile(sorted, tt.p), 1e-9, "p=%v", tt.p)
	}
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.75))
}

func TestTukeyFence(t *testing.T) {
	fence := TukeyFence([]float64{8, 2, 6, 4, 10})
	assert.Equal(t, models.Fence{Q1: 4, Q3: 8, Lower: -2, Upper: 14}, fence)
}

func TestTukeyFenceDoesNotSortInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	TukeyFence(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestTukeyFenceEmpty(t *testing.T) {
	assert.Equal(t, models.Fence{}, TukeyFence(nil))
}

func TestTukeyFenceConstantSample(t *testing.T) {
	fence := TukeyFence([]float64{120, 120, 120})
	assert.True(t, fence.Contains(120))
	assert.False(t, fence.Contains(120.01))
}
