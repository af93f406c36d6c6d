package services

import (
	"context"
	"fmt"

	"abeg-fix/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FavoriteService struct {
	favorites FavoriteStore
	directory ArtisanDirectory
	logger    *zap.Logger
}

func NewFavoriteService(favorites FavoriteStore, directory ArtisanDirectory, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, directory: directory, logger: logger}
}

// Toggle flips artisanID's membership in the customer's favorites. Concurrent
// toggles for the same pair are last-write-wins.
func (s *FavoriteService) Toggle(ctx context.Context, customerID, artisanID string) (*models.FavoritesResponse, error) {
	if _, err := uuid.Parse(artisanID); err != nil {
		return nil, fmt.Errorf("%w: artisan", models.ErrNotFound)
	}

	present, err := s.favorites.Contains(ctx, customerID, artisanID)
	if err != nil {
		return nil, err
	}

	msg := "Added to favorites"
	if present {
		msg = "Removed from favorites"
		err = s.favorites.Remove(ctx, customerID, artisanID)
	} else {
		if _, err := s.directory.FindArtisan(ctx, artisanID); err != nil {
			return nil, err
		}
		err = s.favorites.Add(ctx, customerID, artisanID)
	}
	if err != nil {
		return nil, err
	}

	ids, err := s.favorites.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}

	s.logger.Debug("Favorite toggled",
		zap.String("customer_id", customerID),
		zap.String("artisan_id", artisanID),
		zap.Bool("added", !present))

	return &models.FavoritesResponse{Msg: msg, Favorites: ids}, nil
}

func (s *FavoriteService) IDs(ctx context.Context, customerID string) ([]string, error) {
	ids, err := s.favorites.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *FavoriteService) List(ctx context.Context, customerID string) ([]models.ArtisanListing, error) {
	listings, err := s.favorites.ListArtisans(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []models.ArtisanListing{}
	}
	return listings, nil
}
