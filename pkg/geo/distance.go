package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// DefaultDeliveryRadiusKm is the radius used when a caller passes a non-positive one.
const DefaultDeliveryRadiusKm = 5.0

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Eligibility is the outcome of a delivery range check. DistanceKm is nil
// when either location is unknown.
type Eligibility struct {
	Eligible   bool     `json:"eligible"`
	DistanceKm *float64 `json:"distance_km"`
}

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// CheckEligibility reports whether a restaurant is within maxRadiusKm of a user.
// A missing location on either side is never eligible.
func CheckEligibility(user, restaurant *Point, maxRadiusKm float64) Eligibility {
	if user == nil || restaurant == nil {
		return Eligibility{Eligible: false}
	}
	if maxRadiusKm <= 0 {
		maxRadiusKm = DefaultDeliveryRadiusKm
	}

	d := Distance(*user, *restaurant)
	return Eligibility{
		Eligible:   d <= maxRadiusKm,
		DistanceKm: &d,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
