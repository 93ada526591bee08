package domain

import "math"

const earthRadiusKm = 6371.0

// DistanceKm computes the haversine great-circle distance in kilometers
// between two points given in degrees. The function is symmetric and
// returns 0 for identical points. Out-of-range inputs are the caller's
// responsibility.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RoundKm rounds a distance to the nearest whole kilometer, half up.
// Sorting always uses the unrounded value; this is for display only.
func RoundKm(km float64) int {
	return int(math.Floor(km + 0.5))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
