package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"abeg-fix/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService owns the review lifecycle. A review is either absent or
// present; it moves between the two only through Create and Delete and is
// never edited in place. Both transitions end with a rating recomputation.
type ReviewService struct {
	reviews    ReviewStore
	directory  ArtisanDirectory
	aggregator *RatingAggregator
	logger     *zap.Logger
	now        func() time.Time
}

func NewReviewService(reviews ReviewStore, directory ArtisanDirectory, aggregator *RatingAggregator, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		directory:  directory,
		aggregator: aggregator,
		logger:     logger,
		now:        time.Now,
	}
}

func validateReview(req models.CreateReviewRequest) (string, error) {
	if req.Rating < models.MinReviewRating || req.Rating > models.MaxReviewRating {
		return "", fmt.Errorf("%w: rating must be between %d and %d",
			models.ErrValidation, models.MinReviewRating, models.MaxReviewRating)
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return "", fmt.Errorf("%w: comment is required", models.ErrValidation)
	}
	if utf8.RuneCountInString(comment) > models.MaxReviewCommentLen {
		return "", fmt.Errorf("%w: comment must be at most %d characters",
			models.ErrValidation, models.MaxReviewCommentLen)
	}
	return comment, nil
}

// Create stores a review from customer for req.ArtisanID. If the review is
// stored but the rating cannot be recomputed, the review is returned together
// with a *models.AggregateError.
func (s *ReviewService) Create(ctx context.Context, customer *models.Account, req models.CreateReviewRequest) (*models.Review, error) {
	if customer.Role() != models.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers can leave reviews", models.ErrForbidden)
	}

	comment, err := validateReview(req)
	if err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(req.ArtisanID); err != nil {
		return nil, fmt.Errorf("%w: artisan", models.ErrNotFound)
	}
	if _, err := s.directory.FindArtisan(ctx, req.ArtisanID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		ArtisanID:  req.ArtisanID,
		Rating:     req.Rating,
		Comment:    comment,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, fmt.Errorf("%w: you have already reviewed this artisan", models.ErrDuplicate)
		}
		return nil, err
	}

	s.logger.Info("Review created",
		zap.String("review_id", review.ID),
		zap.String("customer_id", customer.ID),
		zap.String("artisan_id", review.ArtisanID),
		zap.Int("rating", review.Rating))

	return review, s.recompute(ctx, review.ArtisanID)
}

// Delete removes reviewID on behalf of requesterID, who must be the customer
// that wrote it.
func (s *ReviewService) Delete(ctx context.Context, requesterID, reviewID string) error {
	if _, err := uuid.Parse(reviewID); err != nil {
		return fmt.Errorf("%w: review", models.ErrNotFound)
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.CustomerID != requesterID {
		return fmt.Errorf("%w: user not authorized", models.ErrUnauthorized)
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.logger.Info("Review removed",
		zap.String("review_id", reviewID),
		zap.String("artisan_id", review.ArtisanID))

	return s.recompute(ctx, review.ArtisanID)
}

func (s *ReviewService) ListForArtisan(ctx context.Context, artisanID string) ([]models.ReviewWithAuthor, error) {
	if _, err := uuid.Parse(artisanID); err != nil {
		return []models.ReviewWithAuthor{}, nil
	}
	return s.reviews.ListByArtisan(ctx, artisanID)
}

func (s *ReviewService) recompute(ctx context.Context, artisanID string) error {
	if _, err := s.aggregator.Recompute(ctx, artisanID); err != nil {
		s.logger.Error("Rating recomputation failed",
			zap.String("artisan_id", artisanID),
			zap.Error(err))
		return &models.AggregateError{ArtisanID: artisanID, Err: err}
	}
	return nil
}
