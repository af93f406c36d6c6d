package services

import (
	"context"
	"testing"

	"abeg-fix/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_ToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewFavoriteService(f.store.Favorites(), f.store.Directory(), f.logger)
	customer := f.customer(t, "Ada")
	tunde := f.artisan(t, "Tunde", "Plumber", nil)
	kemi := f.artisan(t, "Kemi", "Tailor", nil)

	resp, err := svc.Toggle(ctx, customer.ID, tunde.ID)
	require.NoError(t, err)
	assert.Equal(t, "Added to favorites", resp.Msg)
	assert.Equal(t, []string{tunde.ID}, resp.Favorites)

	resp, err = svc.Toggle(ctx, customer.ID, kemi.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{tunde.ID, kemi.ID}, resp.Favorites)

	resp, err = svc.Toggle(ctx, customer.ID, tunde.ID)
	require.NoError(t, err)
	assert.Equal(t, "Removed from favorites", resp.Msg)
	assert.Equal(t, []string{kemi.ID}, resp.Favorites)

	resp, err = svc.Toggle(ctx, customer.ID, kemi.ID)
	require.NoError(t, err)
	assert.NotNil(t, resp.Favorites)
	assert.Empty(t, resp.Favorites)
}

func TestFavoriteService_UnknownTarget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewFavoriteService(f.store.Favorites(), f.store.Directory(), f.logger)
	customer := f.customer(t, "Ada")
	other := f.customer(t, "Bola")

	for _, id := range []string{uuid.NewString(), other.ID, "not-an-id"} {
		_, err := svc.Toggle(ctx, customer.ID, id)
		assert.ErrorIs(t, err, models.ErrNotFound)
	}

	favs, err := svc.IDs(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavoriteService_StaleEntryCanBeRemoved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewFavoriteService(f.store.Favorites(), f.store.Directory(), f.logger)
	customer := f.customer(t, "Ada")
	tunde := f.artisan(t, "Tunde", "Plumber", nil)

	_, err := svc.Toggle(ctx, customer.ID, tunde.ID)
	require.NoError(t, err)

	// Tunde stops being listable, e.g. the directory no longer finds him.
	stale := NewFavoriteService(f.store.Favorites(), emptyDirectory{}, f.logger)
	resp, err := stale.Toggle(ctx, customer.ID, tunde.ID)
	require.NoError(t, err)
	assert.Equal(t, "Removed from favorites", resp.Msg)
	assert.Empty(t, resp.Favorites)
}

func TestFavoriteService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewFavoriteService(f.store.Favorites(), f.store.Directory(), f.logger)
	customer := f.customer(t, "Ada")
	tunde := f.artisan(t, "Tunde", "Plumber", nil)

	listings, err := svc.List(ctx, customer.ID)
	require.NoError(t, err)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)

	_, err = svc.Toggle(ctx, customer.ID, tunde.ID)
	require.NoError(t, err)

	listings, err = svc.List(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Plumber", listings[0].ArtisanProfile.Category)
}

type emptyDirectory struct{}

func (emptyDirectory) Search(context.Context, models.DirectoryQuery) ([]models.ArtisanListing, error) {
	return nil, nil
}

func (emptyDirectory) FindArtisan(context.Context, string) (*models.ArtisanListing, error) {
	return nil, models.ErrNotFound
}
