package services

import (
	"context"
	"testing"

	"abeg-fix/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanRating(t *testing.T) {
	assert.Equal(t, 5.0, MeanRating(nil))
	assert.Equal(t, 5.0, MeanRating([]int{}))
	assert.Equal(t, 4.5, MeanRating([]int{5, 4}))
	assert.Equal(t, 4.0, MeanRating([]int{5, 4, 3}))
	assert.Equal(t, 1.0, MeanRating([]int{1}))
	assert.InDelta(t, 3.6667, MeanRating([]int{5, 5, 1}), 1e-4)
}

func TestRatingFollowsReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.reviewService()

	artisan := f.artisan(t, "Tunde", "Plumber", nil)
	c1, c2, c3 := f.customer(t, "Ada"), f.customer(t, "Bola"), f.customer(t, "Chidi")
	assert.Equal(t, 5.0, f.rating(t, artisan.ID))

	first, err := svc.Create(ctx, c1, models.CreateReviewRequest{ArtisanID: artisan.ID, Rating: 5, Comment: "Fixed my sink fast"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, c2, models.CreateReviewRequest{ArtisanID: artisan.ID, Rating: 4, Comment: "Good work"})
	require.NoError(t, err)
	assert.Equal(t, 4.5, f.rating(t, artisan.ID))

	_, err = svc.Create(ctx, c3, models.CreateReviewRequest{ArtisanID: artisan.ID, Rating: 3, Comment: "Came late"})
	require.NoError(t, err)
	assert.Equal(t, 4.0, f.rating(t, artisan.ID))

	require.NoError(t, svc.Delete(ctx, c1.ID, first.ID))
	assert.Equal(t, 3.5, f.rating(t, artisan.ID))
}

func TestRatingResetsWhenLastReviewRemoved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.reviewService()

	artisan := f.artisan(t, "Tunde", "Plumber", nil)
	c := f.customer(t, "Ada")

	review, err := svc.Create(ctx, c, models.CreateReviewRequest{ArtisanID: artisan.ID, Rating: 2, Comment: "Meh"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.rating(t, artisan.ID))

	require.NoError(t, svc.Delete(ctx, c.ID, review.ID))
	assert.Equal(t, models.DefaultArtisanRating, f.rating(t, artisan.ID))
}

func TestRatingAggregator_StoreFailure(t *testing.T) {
	f := newFixture(t)
	artisan := f.artisan(t, "Tunde", "Plumber", nil)
	f.store.FailRatingWrites(errBoom)

	agg := NewRatingAggregator(f.store.Reviews(), f.store.Accounts(), f.logger)
	_, err := agg.Recompute(context.Background(), artisan.ID)
	assert.ErrorIs(t, err, errBoom)
}
