package geo

import (
	"github.com/golang/geo/s2"
	geojson "github.com/paulmach/go.geojson"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0088

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b model.GeoPoint) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lng)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return la.Distance(lb).Radians() * EarthRadiusKm
}

// SourceFeatures renders water sources as a GeoJSON FeatureCollection for the
// map view. Coordinates are [lng, lat] as GeoJSON requires.
func SourceFeatures(sources []model.WaterSource) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, src := range sources {
		f := geojson.NewPointFeature([]float64{src.Location.Lng, src.Location.Lat})
		f.ID = src.ID
		f.SetProperty("name", src.Name)
		f.SetProperty("status", string(src.Status))
		f.SetProperty("openReportCount", src.OpenReportCount)
		f.SetProperty("lastCheckedAt", src.LastCheckedAt)
		if src.Area != "" {
			f.SetProperty("area", src.Area)
		}
		if src.Description != "" {
			f.SetProperty("description", src.Description)
		}
		fc.AddFeature(f)
	}
	return fc
}
