package services

import (
	"context"
	"fmt"

	"abeg-fix/models"

	"go.uber.org/zap"
)

// MeanRating is the arithmetic mean of ratings, or the default artisan rating
// when there are none.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return models.DefaultArtisanRating
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// RatingAggregator rewrites an artisan's stored rating from its full review
// set. Each call reads every review of the artisan; concurrent recomputations
// are not isolated and the last write wins.
type RatingAggregator struct {
	reviews  ReviewStore
	accounts AccountStore
	logger   *zap.Logger
}

func NewRatingAggregator(reviews ReviewStore, accounts AccountStore, logger *zap.Logger) *RatingAggregator {
	return &RatingAggregator{reviews: reviews, accounts: accounts, logger: logger}
}

func (a *RatingAggregator) Recompute(ctx context.Context, artisanID string) (float64, error) {
	ratings, err := a.reviews.RatingsByArtisan(ctx, artisanID)
	if err != nil {
		return 0, fmt.Errorf("load ratings: %w", err)
	}

	mean := MeanRating(ratings)
	if err := a.accounts.SetArtisanRating(ctx, artisanID, mean); err != nil {
		return 0, fmt.Errorf("store rating: %w", err)
	}

	a.logger.Debug("Artisan rating recomputed",
		zap.String("artisan_id", artisanID),
		zap.Int("reviews", len(ratings)),
		zap.Float64("rating", mean))
	return mean, nil
}
