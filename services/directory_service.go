package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"abeg-fix/models"

	"github.com/google/uuid"
)

type DirectoryService struct {
	directory ArtisanDirectory
}

func NewDirectoryService(directory ArtisanDirectory) *DirectoryService {
	return &DirectoryService{directory: directory}
}

// ParseDirectoryQuery builds a query from raw lat/lng/category parameters.
// lat and lng must be supplied together.
func ParseDirectoryQuery(lat, lng, category string) (models.DirectoryQuery, error) {
	q := models.DirectoryQuery{Category: strings.TrimSpace(category)}
	if q.Category == models.CategoryAll {
		q.Category = ""
	}

	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" && lng == "" {
		return q, nil
	}
	if lat == "" || lng == "" {
		return q, fmt.Errorf("%w: lat and lng must be supplied together", models.ErrValidation)
	}

	latV, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return q, fmt.Errorf("%w: invalid lat %q", models.ErrValidation, lat)
	}
	lngV, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return q, fmt.Errorf("%w: invalid lng %q", models.ErrValidation, lng)
	}

	origin := models.GeoPoint{Longitude: lngV, Latitude: latV}
	if !origin.Valid() {
		return q, fmt.Errorf("%w: coordinates out of range", models.ErrValidation)
	}
	q.Origin = &origin
	return q, nil
}

func (s *DirectoryService) Search(ctx context.Context, q models.DirectoryQuery) ([]models.ArtisanListing, error) {
	if q.Category == models.CategoryAll {
		q.Category = ""
	}
	if q.Origin != nil && !q.Origin.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range", models.ErrValidation)
	}

	listings, err := s.directory.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []models.ArtisanListing{}
	}
	return listings, nil
}

func (s *DirectoryService) GetArtisan(ctx context.Context, id string) (*models.ArtisanListing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: artisan", models.ErrNotFound)
	}
	return s.directory.FindArtisan(ctx, id)
}
