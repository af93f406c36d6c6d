package utils

import (
	"math"
	"sort"

	"abeg-fix/models"
)

// EarthRadiusKm is the IUGG mean earth radius.
const EarthRadiusKm = 6371.0088

// HaversineKm is the great-circle distance between two points.
func HaversineKm(a, b models.GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// RankByDistance annotates each listing with its distance from origin and
// returns them nearest first. Listings without a valid location are dropped.
// Ties keep their input order.
func RankByDistance(listings []models.ArtisanListing, origin models.GeoPoint) []models.ArtisanListing {
	ranked := make([]models.ArtisanListing, 0, len(listings))
	for _, l := range listings {
		loc := l.ArtisanProfile.Location
		if loc == nil || !loc.Valid() {
			continue
		}
		d := HaversineKm(origin, *loc)
		l.Distance = &d
		ranked = append(ranked, l)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Distance < *ranked[j].Distance
	})
	return ranked
}
