package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 20.0, Lng: 78.0},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{Lat: 20.0, Lng: 78.0}, {Lat: 20.05, Lng: 78.05}},
		{{Lat: 12.9716, Lng: 77.5946}, {Lat: 13.0827, Lng: 80.2707}},
		{{Lat: -10, Lng: 170}, {Lat: 10, Lng: -170}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p[0], p[1]), Distance(p[1], p[0]), 1e-9)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// one degree of latitude along a meridian
	d := Distance(Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0})
	assert.InDelta(t, 111.19, d, 0.01)
}

func TestCheckEligibility_MissingLocation(t *testing.T) {
	p := &Point{Lat: 20, Lng: 78}

	for _, tc := range []struct {
		name       string
		user, rest *Point
	}{
		{"no user", nil, p},
		{"no restaurant", p, nil},
		{"neither", nil, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := CheckEligibility(tc.user, tc.rest, 5)
			assert.False(t, e.Eligible)
			assert.Nil(t, e.DistanceKm)
		})
	}
}

func TestCheckEligibility_OutOfRange(t *testing.T) {
	user := &Point{Lat: 20.0, Lng: 78.0}
	rest := &Point{Lat: 20.05, Lng: 78.05}

	e := CheckEligibility(user, rest, 5)
	require.NotNil(t, e.DistanceKm)
	assert.False(t, e.Eligible)
	assert.Greater(t, *e.DistanceKm, 6.0)
	assert.Less(t, *e.DistanceKm, 8.0)
}

func TestCheckEligibility_InRange(t *testing.T) {
	user := &Point{Lat: 20.0, Lng: 78.0}
	rest := &Point{Lat: 20.01, Lng: 78.01}

	e := CheckEligibility(user, rest, 5)
	require.NotNil(t, e.DistanceKm)
	assert.True(t, e.Eligible)
	assert.LessOrEqual(t, *e.DistanceKm, 5.0)
}

func TestCheckEligibility_BoundaryAndDefaultRadius(t *testing.T) {
	user := &Point{Lat: 0, Lng: 0}
	rest := &Point{Lat: 0.04, Lng: 0}
	d := Distance(*user, *rest)

	assert.True(t, CheckEligibility(user, rest, d).Eligible)
	assert.False(t, CheckEligibility(user, rest, d-0.001).Eligible)

	// non-positive radius falls back to 5 km
	assert.True(t, CheckEligibility(user, rest, 0).Eligible)
	far := &Point{Lat: 0.1, Lng: 0}
	assert.False(t, CheckEligibility(user, far, -1).Eligible)
}
