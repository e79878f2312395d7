package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// SquaredDegrees returns the squared distance between two points in raw
// lat/lng degree space. Not a geodesic distance: it is only good for
// comparing candidates within a few kilometers of each other, which is
// how the nearest-station pick uses it.
func SquaredDegrees(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat1 - lat2
	dLng := lng1 - lng2
	return dLat*dLat + dLng*dLng
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
