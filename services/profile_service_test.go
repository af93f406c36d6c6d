package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"abeg-fix/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(name string) Upload {
	return Upload{Filename: name, Body: strings.NewReader("image bytes")}
}

func TestProfileService_UpdateArtisanProfileKeepsServerFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewProfileService(f.store.Accounts(), f.media, f.logger)
	artisan := f.artisan(t, "Tunde", "Plumber", nil)
	require.NoError(t, f.store.Accounts().SetArtisanRating(ctx, artisan.ID, 3.5))
	artisan, err := f.store.Accounts().FindByID(ctx, artisan.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateArtisanProfile(ctx, artisan, models.ArtisanProfileInput{
		BusinessName: " Tunde Pipes ",
		Category:     "Plumber",
		Bio:          "20 years fixing leaks",
		Location:     &models.GeoPoint{Longitude: 3.35, Latitude: 6.6},
	})
	require.NoError(t, err)
	p, _ := updated.Artisan()
	assert.Equal(t, "Tunde Pipes", p.BusinessName)
	assert.Equal(t, 3.5, p.Rating)
	assert.NotNil(t, p.Portfolio)

	stored, err := f.store.Accounts().FindByID(ctx, artisan.ID)
	require.NoError(t, err)
	sp, _ := stored.Artisan()
	assert.Equal(t, "20 years fixing leaks", sp.Bio)
	assert.Equal(t, 3.5, sp.Rating)
	require.NotNil(t, sp.Location)
}

func TestProfileService_UpdateArtisanProfileRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewProfileService(f.store.Accounts(), f.media, f.logger)
	artisan := f.artisan(t, "Tunde", "Plumber", nil)
	customer := f.customer(t, "Ada")

	_, err := svc.UpdateArtisanProfile(ctx, customer, models.ArtisanProfileInput{})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.UpdateArtisanProfile(ctx, artisan, models.ArtisanProfileInput{
		Location: &models.GeoPoint{Longitude: 3, Latitude: 100},
	})
	assert.ErrorIs(t, err, models.ErrValidation)

	tooMany := make([]string, models.MaxPortfolioImages+1)
	_, err = svc.UpdateArtisanProfile(ctx, artisan, models.ArtisanProfileInput{Portfolio: tooMany})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestProfileService_UpdateCustomerProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewProfileService(f.store.Accounts(), f.media, f.logger)
	customer := f.customer(t, "Ada")
	artisan := f.artisan(t, "Tunde", "Plumber", nil)

	updated, err := svc.UpdateCustomerProfile(ctx, customer, models.UpdateCustomerProfileRequest{
		LGA: "Surulere", Coordinates: []float64{3.35, 6.5},
	})
	require.NoError(t, err)
	p, _ := updated.Customer()
	assert.Equal(t, "Surulere", p.LGA)
	assert.Equal(t, 6.5, p.Location.Latitude)

	_, err = svc.UpdateCustomerProfile(ctx, customer, models.UpdateCustomerProfileRequest{Coordinates: []float64{500, 6.5}})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.UpdateCustomerProfile(ctx, artisan, models.UpdateCustomerProfileRequest{LGA: "Yaba"})
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestProfileService_Uploads(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewProfileService(f.store.Accounts(), f.media, f.logger)
	artisan := f.artisan(t, "Tunde", "Plumber", nil)

	updated, err := svc.UploadProfilePhoto(ctx, artisan, upload("me.png"))
	require.NoError(t, err)
	p, _ := updated.Artisan()
	assert.Equal(t, "https://res.cloudinary.com/demo/profiles/me.png", p.ProfilePic)

	updated, err = svc.AddPortfolioImages(ctx, updated, []Upload{upload("a.jpg"), upload("b.jpg")})
	require.NoError(t, err)
	p, _ = updated.Artisan()
	assert.Len(t, p.Portfolio, 2)
	assert.Equal(t, "https://res.cloudinary.com/demo/profiles/me.png", p.ProfilePic)

	_, err = svc.AddPortfolioImages(ctx, updated, nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	var batch []Upload
	for i := 0; i < models.MaxPortfolioImages-1; i++ {
		batch = append(batch, upload(fmt.Sprintf("%d.jpg", i)))
	}
	uploadsBefore := len(f.media.uploads)
	_, err = svc.AddPortfolioImages(ctx, updated, batch)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Len(t, f.media.uploads, uploadsBefore, "nothing uploaded when the batch is rejected")

	f.media.err = errBoom
	_, err = svc.UploadProfilePhoto(ctx, updated, upload("again.png"))
	assert.ErrorIs(t, err, errBoom)

	customer := f.customer(t, "Ada")
	_, err = svc.UploadProfilePhoto(ctx, customer, upload("me.png"))
	assert.ErrorIs(t, err, models.ErrForbidden)
}
