package repositories

import (
	"context"
	"fmt"

	"abeg-fix/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepository struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Contains(ctx context.Context, customerID, artisanID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE customer_id = $1::uuid AND artisan_id = $2::uuid
		)`, customerID, artisanID).Scan(&exists)
	if err != nil {
		return false, translate(err, "favorite")
	}
	return exists, nil
}

// Add is a no-op when the pair is already stored.
func (r *FavoriteRepository) Add(ctx context.Context, customerID, artisanID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO favorites (customer_id, artisan_id)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (customer_id, artisan_id) DO NOTHING`, customerID, artisanID)
	return translate(err, "favorite")
}

func (r *FavoriteRepository) Remove(ctx context.Context, customerID, artisanID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE customer_id = $1::uuid AND artisan_id = $2::uuid`,
		customerID, artisanID)
	return translate(err, "favorite")
}

func (r *FavoriteRepository) List(ctx context.Context, customerID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT artisan_id::text FROM favorites
		WHERE customer_id = $1::uuid
		ORDER BY created_at`, customerID)
	if err != nil {
		return nil, translate(err, "favorites")
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FavoriteRepository) ListArtisans(ctx context.Context, customerID string) ([]models.ArtisanListing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id::text, a.first_name, a.last_name, a.created_at,
			p.business_name, p.category, p.whatsapp, p.bio, p.profile_pic, p.address,
			p.longitude, p.latitude, p.portfolio, p.is_verified, p.rating
		FROM favorites f
		JOIN accounts a ON a.id = f.artisan_id
		JOIN artisan_profiles p ON p.account_id = a.id
		WHERE f.customer_id = $1::uuid
		ORDER BY f.created_at`, customerID)
	if err != nil {
		return nil, translate(err, "favorites")
	}
	listings, err := collectListings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan favorites: %w", err)
	}
	return listings, nil
}
