package repositories

import (
	"context"
	"fmt"

	"abeg-fix/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO reviews (id, customer_id, artisan_id, rating, comment, created_at)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6)
		RETURNING created_at`,
		review.ID, review.CustomerID, review.ArtisanID, review.Rating, review.Comment, review.CreatedAt,
	).Scan(&review.CreatedAt)
	return translate(err, "review")
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.db.QueryRow(ctx, `
		SELECT id::text, customer_id::text, artisan_id::text, rating, comment, created_at
		FROM reviews WHERE id = $1::uuid`, id,
	).Scan(&review.ID, &review.CustomerID, &review.ArtisanID, &review.Rating, &review.Comment, &review.CreatedAt)
	if err != nil {
		return nil, translate(err, "review")
	}
	return &review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1::uuid`, id)
	if err != nil {
		return translate(err, "review")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: review", models.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) ListByArtisan(ctx context.Context, artisanID string) ([]models.ReviewWithAuthor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id::text, a.id::text, a.first_name, a.last_name,
			r.artisan_id::text, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN accounts a ON a.id = r.customer_id
		WHERE r.artisan_id = $1::uuid
		ORDER BY r.created_at DESC`, artisanID)
	if err != nil {
		return nil, translate(err, "reviews")
	}
	defer rows.Close()

	reviews := []models.ReviewWithAuthor{}
	for rows.Next() {
		var rv models.ReviewWithAuthor
		if err := rows.Scan(
			&rv.ID, &rv.Customer.ID, &rv.Customer.FirstName, &rv.Customer.LastName,
			&rv.ArtisanID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) RatingsByArtisan(ctx context.Context, artisanID string) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT rating FROM reviews WHERE artisan_id = $1::uuid`, artisanID)
	if err != nil {
		return nil, translate(err, "ratings")
	}
	defer rows.Close()

	ratings := []int{}
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
