package memstore

import (
	"context"
	"fmt"

	"abeg-fix/models"
	"abeg-fix/utils"
)

type Directory struct{ s *Store }

func (r *Directory) Search(_ context.Context, q models.DirectoryQuery) ([]models.ArtisanListing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.ArtisanListing{}
	for _, id := range r.s.order {
		l, ok := listingOf(r.s.accounts[id])
		if !ok {
			continue
		}
		if q.Category != "" && q.Category != models.CategoryAll && l.ArtisanProfile.Category != q.Category {
			continue
		}
		out = append(out, l)
	}
	if q.Origin != nil {
		return utils.RankByDistance(out, *q.Origin), nil
	}
	return out, nil
}

func (r *Directory) FindArtisan(_ context.Context, id string) (*models.ArtisanListing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: artisan", models.ErrNotFound)
	}
	l, ok := listingOf(a)
	if !ok {
		return nil, fmt.Errorf("%w: artisan", models.ErrNotFound)
	}
	return &l, nil
}
