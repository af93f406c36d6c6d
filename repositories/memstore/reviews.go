package memstore

import (
	"context"
	"fmt"
	"sort"

	"abeg-fix/models"
)

type Reviews struct{ s *Store }

func (r *Reviews) Create(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[review.CustomerID]; !ok {
		return fmt.Errorf("%w: review references a missing account", models.ErrNotFound)
	}
	if _, ok := r.s.accounts[review.ArtisanID]; !ok {
		return fmt.Errorf("%w: review references a missing account", models.ErrNotFound)
	}
	for _, rv := range r.s.reviews {
		if rv.CustomerID == review.CustomerID && rv.ArtisanID == review.ArtisanID {
			return fmt.Errorf("%w: review", models.ErrDuplicate)
		}
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = r.s.now().UTC()
	}
	r.s.reviews[review.ID] = *review
	r.s.rorder = append(r.s.rorder, review.ID)
	return nil
}

func (r *Reviews) FindByID(_ context.Context, id string) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, fmt.Errorf("%w: review", models.ErrNotFound)
	}
	return &rv, nil
}

func (r *Reviews) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return fmt.Errorf("%w: review", models.ErrNotFound)
	}
	delete(r.s.reviews, id)
	r.s.rorder = without(r.s.rorder, id)
	return nil
}

// ListByArtisan returns the artisan's reviews newest first.
func (r *Reviews) ListByArtisan(_ context.Context, artisanID string) ([]models.ReviewWithAuthor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.ReviewWithAuthor{}
	for i := len(r.s.rorder) - 1; i >= 0; i-- {
		rv := r.s.reviews[r.s.rorder[i]]
		if rv.ArtisanID != artisanID {
			continue
		}
		author := models.ReviewAuthor{ID: rv.CustomerID}
		if a, ok := r.s.accounts[rv.CustomerID]; ok {
			author.FirstName, author.LastName = a.FirstName, a.LastName
		}
		out = append(out, models.ReviewWithAuthor{
			ID:        rv.ID,
			Customer:  author,
			ArtisanID: rv.ArtisanID,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: rv.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Reviews) RatingsByArtisan(_ context.Context, artisanID string) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ratings := []int{}
	for _, id := range r.s.rorder {
		if rv := r.s.reviews[id]; rv.ArtisanID == artisanID {
			ratings = append(ratings, rv.Rating)
		}
	}
	return ratings, nil
}

// Count is the number of stored reviews.
func (r *Reviews) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.reviews)
}
