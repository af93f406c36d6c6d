package repositories

import (
	"context"
	"fmt"
	"strings"

	"abeg-fix/models"
	"abeg-fix/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectoryRepository serves the artisan directory from Postgres. Role,
// category and location presence are filtered in SQL; distance ranking is
// done in process by utils.RankByDistance.
type DirectoryRepository struct {
	db *pgxpool.Pool
}

func NewDirectoryRepository(db *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

const selectListing = `
	SELECT a.id::text, a.first_name, a.last_name, a.created_at,
		p.business_name, p.category, p.whatsapp, p.bio, p.profile_pic, p.address,
		p.longitude, p.latitude, p.portfolio, p.is_verified, p.rating
	FROM accounts a
	JOIN artisan_profiles p ON p.account_id = a.id
`

func scanListing(row pgx.Row) (models.ArtisanListing, error) {
	var (
		l        models.ArtisanListing
		lng, lat *float64
	)
	p := &l.ArtisanProfile
	err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.CreatedAt,
		&p.BusinessName, &p.Category, &p.WhatsApp, &p.Bio, &p.ProfilePic, &p.Address,
		&lng, &lat, &p.Portfolio, &p.IsVerified, &p.Rating,
	)
	if err != nil {
		return l, err
	}
	l.Role = models.RoleArtisan
	p.Location = pointFrom(lng, lat)
	if p.Portfolio == nil {
		p.Portfolio = []string{}
	}
	return l, nil
}

func collectListings(rows pgx.Rows) ([]models.ArtisanListing, error) {
	defer rows.Close()
	listings := []models.ArtisanListing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *DirectoryRepository) Search(ctx context.Context, q models.DirectoryQuery) ([]models.ArtisanListing, error) {
	where := []string{"a.role = 'artisan'"}
	args := []any{}

	if q.Category != "" && q.Category != models.CategoryAll {
		args = append(args, q.Category)
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if q.Origin != nil {
		where = append(where,
			"p.longitude IS NOT NULL", "p.latitude IS NOT NULL",
			"p.latitude BETWEEN -90 AND 90", "p.longitude BETWEEN -180 AND 180")
	}

	query := selectListing + " WHERE " + strings.Join(where, " AND ") + " ORDER BY a.created_at, a.id"
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "artisans")
	}
	listings, err := collectListings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan artisans: %w", err)
	}

	if q.Origin != nil {
		return utils.RankByDistance(listings, *q.Origin), nil
	}
	return listings, nil
}

func (r *DirectoryRepository) FindArtisan(ctx context.Context, id string) (*models.ArtisanListing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, selectListing+` WHERE a.id = $1::uuid AND a.role = 'artisan'`, id))
	if err != nil {
		return nil, translate(err, "artisan")
	}
	return &l, nil
}
