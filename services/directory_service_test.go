package services

import (
	"context"
	"encoding/json"
	"testing"

	"abeg-fix/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectoryQuery(t *testing.T) {
	q, err := ParseDirectoryQuery("", "", "")
	require.NoError(t, err)
	assert.Nil(t, q.Origin)
	assert.Empty(t, q.Category)

	q, err = ParseDirectoryQuery("6.5244", "3.3792", "All")
	require.NoError(t, err)
	require.NotNil(t, q.Origin)
	assert.Equal(t, 6.5244, q.Origin.Latitude)
	assert.Equal(t, 3.3792, q.Origin.Longitude)
	assert.Empty(t, q.Category)

	q, err = ParseDirectoryQuery("", "", " Plumber ")
	require.NoError(t, err)
	assert.Equal(t, "Plumber", q.Category)

	for _, bad := range [][2]string{
		{"6.5244", ""},
		{"", "3.3792"},
		{"north", "3.3792"},
		{"6.5244", "east"},
		{"91", "3.3792"},
		{"6.5244", "-181"},
		{"NaN", "3"},
	} {
		_, err := ParseDirectoryQuery(bad[0], bad[1], "")
		assert.ErrorIs(t, err, models.ErrValidation, "lat=%q lng=%q", bad[0], bad[1])
	}
}

type directoryFixture struct {
	*fixture
	svc                             *DirectoryService
	plumber, electrician, unplotted *models.Account
	lowercase, farPlumber           *models.Account
}

func newDirectoryFixture(t *testing.T) *directoryFixture {
	f := newFixture(t)
	d := &directoryFixture{fixture: f, svc: NewDirectoryService(f.store.Directory())}
	d.farPlumber = f.artisan(t, "Ibadan", "Plumber", &models.GeoPoint{Longitude: 3.9470, Latitude: 7.3775})
	d.plumber = f.artisan(t, "Tunde", "Plumber", &models.GeoPoint{Longitude: 3.3515, Latitude: 6.6018})
	d.electrician = f.artisan(t, "Kemi", "Electrician", &models.GeoPoint{Longitude: 3.3800, Latitude: 6.5250})
	d.unplotted = f.artisan(t, "Femi", "Plumber", nil)
	d.lowercase = f.artisan(t, "Sade", "plumber", &models.GeoPoint{Longitude: 3.40, Latitude: 6.45})
	f.customer(t, "Ada")
	return d
}

func ids(listings []models.ArtisanListing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestDirectoryService_NoOriginKeepsStoreOrder(t *testing.T) {
	d := newDirectoryFixture(t)

	got, err := d.svc.Search(context.Background(), models.DirectoryQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{d.farPlumber.ID, d.plumber.ID, d.electrician.ID, d.unplotted.ID, d.lowercase.ID}, ids(got))
	for _, l := range got {
		assert.Nil(t, l.Distance)
		assert.Equal(t, models.RoleArtisan, l.Role)
	}
}

func TestDirectoryService_CategoryIsExact(t *testing.T) {
	d := newDirectoryFixture(t)

	got, err := d.svc.Search(context.Background(), models.DirectoryQuery{Category: "Plumber"})
	require.NoError(t, err)
	assert.Equal(t, []string{d.farPlumber.ID, d.plumber.ID, d.unplotted.ID}, ids(got))

	got, err = d.svc.Search(context.Background(), models.DirectoryQuery{Category: models.CategoryAll})
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = d.svc.Search(context.Background(), models.DirectoryQuery{Category: "Welder"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDirectoryService_OriginSortsByDistance(t *testing.T) {
	d := newDirectoryFixture(t)
	origin := &models.GeoPoint{Longitude: 3.3792, Latitude: 6.5244}

	got, err := d.svc.Search(context.Background(), models.DirectoryQuery{Origin: origin})
	require.NoError(t, err)

	assert.Equal(t, []string{d.electrician.ID, d.lowercase.ID, d.plumber.ID, d.farPlumber.ID}, ids(got))
	assert.NotContains(t, ids(got), d.unplotted.ID)
	for i := range got {
		require.NotNil(t, got[i].Distance)
		if i > 0 {
			assert.GreaterOrEqual(t, *got[i].Distance, *got[i-1].Distance)
		}
	}

	got, err = d.svc.Search(context.Background(), models.DirectoryQuery{Origin: origin, Category: "Plumber"})
	require.NoError(t, err)
	assert.Equal(t, []string{d.plumber.ID, d.farPlumber.ID}, ids(got))
}

func TestDirectoryService_NeverExposesNIN(t *testing.T) {
	d := newDirectoryFixture(t)

	got, err := d.svc.Search(context.Background(), models.DirectoryQuery{})
	require.NoError(t, err)
	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "12345678901")
	assert.NotContains(t, string(data), `"nin"`)
}

func TestDirectoryService_GetArtisan(t *testing.T) {
	d := newDirectoryFixture(t)
	ctx := context.Background()

	got, err := d.svc.GetArtisan(ctx, d.plumber.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tunde's Services", got.ArtisanProfile.BusinessName)

	_, err = d.svc.GetArtisan(ctx, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = d.svc.GetArtisan(ctx, "abc")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
