package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"SamePoint", Point{-23.5, -46.6}, Point{-23.5, -46.6}, 0},
		{"OneDegreeOnEquator", Point{0, 0}, Point{0, 1}, 111.19492664455873},
		{"OneDegreeOnMeridian", Point{0, 0}, Point{1, 0}, 111.19492664455873},
		{"Antipodes", Point{0, 0}, Point{0, 180}, 20015.086796020572},
		{"SaoPauloToRio", Point{-23.5505, -46.6333}, Point{-22.9068, -43.1729}, 360.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Haversine(tt.a, tt.b), 0.5)
			assert.InDelta(t, Haversine(tt.a, tt.b), Haversine(tt.b, tt.a), 1e-9)
		})
	}
}

func TestHaversine_Exact(t *testing.T) {
	// Along the equator the formula reduces to R * delta-longitude in radians
	assert.InDelta(t, 111.19492664455873, Haversine(Point{0, 0}, Point{0, 1}), 1e-9)
}
