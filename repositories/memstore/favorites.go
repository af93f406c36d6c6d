package memstore

import (
	"context"
	"fmt"
	"slices"

	"abeg-fix/models"
)

type Favorites struct{ s *Store }

func (r *Favorites) Contains(_ context.Context, customerID, artisanID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.Contains(r.s.favorites[customerID], artisanID), nil
}

func (r *Favorites) Add(_ context.Context, customerID, artisanID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[customerID]; !ok {
		return fmt.Errorf("%w: favorite references a missing account", models.ErrNotFound)
	}
	if _, ok := r.s.accounts[artisanID]; !ok {
		return fmt.Errorf("%w: favorite references a missing account", models.ErrNotFound)
	}
	if !slices.Contains(r.s.favorites[customerID], artisanID) {
		r.s.favorites[customerID] = append(r.s.favorites[customerID], artisanID)
	}
	return nil
}

func (r *Favorites) Remove(_ context.Context, customerID, artisanID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ids, ok := r.s.favorites[customerID]; ok {
		r.s.favorites[customerID] = without(ids, artisanID)
	}
	return nil
}

func (r *Favorites) List(_ context.Context, customerID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]string{}, r.s.favorites[customerID]...), nil
}

func (r *Favorites) ListArtisans(_ context.Context, customerID string) ([]models.ArtisanListing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.ArtisanListing{}
	for _, id := range r.s.favorites[customerID] {
		a, ok := r.s.accounts[id]
		if !ok {
			continue
		}
		if l, ok := listingOf(a); ok {
			out = append(out, l)
		}
	}
	return out, nil
}
