package search

import "math"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

const earthRadiusKm = 6371

// Distance returns the great-circle distance between two points in kilometers,
// rounded to one decimal place. The rounded value is what gets displayed and
// what the ranking normalizes, so both sides stay consistent.
func Distance(from, to Coordinates) float64 {
	dLat := toRad(to.Lat - from.Lat)
	dLon := toRad(to.Lng - from.Lng)
	lat1 := toRad(from.Lat)
	lat2 := toRad(to.Lat)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
