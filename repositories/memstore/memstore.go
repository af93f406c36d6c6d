// Package memstore keeps accounts, reviews and favorites in process memory.
// It backs the service and controller tests and local runs without Postgres.
package memstore

import (
	"errors"
	"sync"
	"time"

	"abeg-fix/models"
)

// Store is the shared backing state. Accounts, Reviews, Favorites and
// Directory return views over it that satisfy the services store interfaces.
type Store struct {
	mu sync.RWMutex

	accounts map[string]*models.Account
	order    []string
	reviews  map[string]models.Review
	rorder   []string
	// favorites maps customer id to artisan ids in insertion order.
	favorites map[string][]string

	ratingErr error
	now       func() time.Time
}

func New() *Store {
	return &Store{
		accounts:  make(map[string]*models.Account),
		reviews:   make(map[string]models.Review),
		favorites: make(map[string][]string),
		now:       time.Now,
	}
}

// FailRatingWrites makes every subsequent SetArtisanRating return err.
// Pass nil to restore normal behaviour.
func (s *Store) FailRatingWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratingErr = err
}

func (s *Store) Accounts() *Accounts   { return &Accounts{s} }
func (s *Store) Reviews() *Reviews     { return &Reviews{s} }
func (s *Store) Favorites() *Favorites { return &Favorites{s} }
func (s *Store) Directory() *Directory { return &Directory{s} }

var errNoProfile = errors.New("account has no profile")

func cloneAccount(a *models.Account) *models.Account {
	out := *a
	switch p := a.Profile.(type) {
	case *models.CustomerProfile:
		cp := *p
		cp.Location = clonePoint(p.Location)
		out.Profile = &cp
	case *models.ArtisanProfile:
		ap := *p
		ap.Location = clonePoint(p.Location)
		ap.Portfolio = append([]string{}, p.Portfolio...)
		out.Profile = &ap
	}
	return &out
}

func clonePoint(p *models.GeoPoint) *models.GeoPoint {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func listingOf(a *models.Account) (models.ArtisanListing, bool) {
	p, ok := a.Artisan()
	if !ok {
		return models.ArtisanListing{}, false
	}
	public := models.PublicProfile(p)
	public.Location = clonePoint(p.Location)
	public.Portfolio = append([]string{}, public.Portfolio...)
	return models.ArtisanListing{
		ID:             a.ID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Role:           models.RoleArtisan,
		ArtisanProfile: public,
		CreatedAt:      a.CreatedAt,
	}, true
}
