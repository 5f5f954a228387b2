package utils

import "math"

const earthRadiusMeters = 6371e3

// Distance returns the great-circle distance in meters between two
// coordinates, using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	clat := lat1 * math.Pi / 180
	clng := lng1 * math.Pi / 180

	elat := lat2 * math.Pi / 180
	elng := lng2 * math.Pi / 180

	dlat := elat - clat
	dlng := elng - clng

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(clat)*math.Cos(elat)*
			math.Sin(dlng/2)*math.Sin(dlng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
