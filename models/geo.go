package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// GeoPoint is a WGS84 position. It is exchanged with clients as a GeoJSON
// point, coordinates in [longitude, latitude] order.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Longitude) || math.IsNaN(p.Latitude) ||
		math.IsInf(p.Longitude, 0) || math.IsInf(p.Latitude, 0) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

type geoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{
		Type:        "Point",
		Coordinates: []float64{p.Longitude, p.Latitude},
	})
}

func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var raw geoJSONPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != "" && raw.Type != "Point" {
		return fmt.Errorf("unsupported geometry type %q", raw.Type)
	}
	return p.setCoordinates(raw.Coordinates)
}

func (p *GeoPoint) setCoordinates(coords []float64) error {
	if len(coords) != 2 {
		return fmt.Errorf("coordinates must be [longitude, latitude]")
	}
	p.Longitude, p.Latitude = coords[0], coords[1]
	return nil
}

// PointFromCoordinates builds a point from a bare [lng, lat] pair as sent by
// the signup forms.
func PointFromCoordinates(coords []float64) (*GeoPoint, error) {
	if coords == nil {
		return nil, nil
	}
	var p GeoPoint
	if err := p.setCoordinates(coords); err != nil {
		return nil, err
	}
	if !p.Valid() {
		return nil, fmt.Errorf("coordinates out of range")
	}
	return &p, nil
}
