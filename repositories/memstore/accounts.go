package memstore

import (
	"context"
	"fmt"
	"time"

	"abeg-fix/models"
)

type Accounts struct{ s *Store }

func (r *Accounts) Create(_ context.Context, account *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if account.Profile == nil {
		return errNoProfile
	}
	for _, a := range r.s.accounts {
		if a.Email == account.Email {
			return fmt.Errorf("%w: account", models.ErrDuplicate)
		}
	}
	if _, ok := r.s.accounts[account.ID]; ok {
		return fmt.Errorf("%w: account", models.ErrDuplicate)
	}
	if p, ok := account.Artisan(); ok && len(p.Portfolio) > models.MaxPortfolioImages {
		return fmt.Errorf("%w: portfolio", models.ErrValidation)
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = r.s.now().UTC()
	}
	account.UpdatedAt = account.CreatedAt
	r.s.accounts[account.ID] = cloneAccount(account)
	r.s.order = append(r.s.order, account.ID)
	return nil
}

func (r *Accounts) find(match func(*models.Account) bool, what string) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range r.s.order {
		if a := r.s.accounts[id]; match(a) {
			return cloneAccount(a), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrNotFound, what)
}

func (r *Accounts) FindByID(_ context.Context, id string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.ID == id }, "account")
}

func (r *Accounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.Email == email }, "account")
}

func (r *Accounts) FindByResetToken(_ context.Context, hashedToken string, now time.Time) (*models.Account, error) {
	return r.find(func(a *models.Account) bool {
		return a.ResetPasswordToken != nil && *a.ResetPasswordToken == hashedToken &&
			a.ResetPasswordExpires != nil && a.ResetPasswordExpires.After(now)
	}, "reset token")
}

func (r *Accounts) update(id string, fn func(*models.Account) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: account", models.ErrNotFound)
	}
	if err := fn(a); err != nil {
		return err
	}
	a.UpdatedAt = r.s.now().UTC()
	return nil
}

func (r *Accounts) SaveVerification(_ context.Context, id string, verified bool, otp *string, expires *time.Time) error {
	return r.update(id, func(a *models.Account) error {
		a.IsEmailVerified = verified
		a.EmailVerificationOTP = otp
		a.OTPExpires = expires
		return nil
	})
}

func (r *Accounts) SaveResetToken(_ context.Context, id string, hashedToken *string, expires *time.Time) error {
	return r.update(id, func(a *models.Account) error {
		a.ResetPasswordToken = hashedToken
		a.ResetPasswordExpires = expires
		return nil
	})
}

func (r *Accounts) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.update(id, func(a *models.Account) error {
		a.PasswordHash = passwordHash
		a.ResetPasswordToken = nil
		a.ResetPasswordExpires = nil
		return nil
	})
}

func (r *Accounts) UpdateArtisanProfile(_ context.Context, id string, profile *models.ArtisanProfile) error {
	if len(profile.Portfolio) > models.MaxPortfolioImages {
		return fmt.Errorf("%w: portfolio", models.ErrValidation)
	}
	return r.update(id, func(a *models.Account) error {
		if _, ok := a.Artisan(); !ok {
			return fmt.Errorf("%w: artisan profile", models.ErrNotFound)
		}
		a.Profile = cloneAccount(&models.Account{Profile: profile}).Profile
		return nil
	})
}

func (r *Accounts) UpdateCustomerProfile(_ context.Context, id string, profile *models.CustomerProfile) error {
	return r.update(id, func(a *models.Account) error {
		if _, ok := a.Customer(); !ok {
			return fmt.Errorf("%w: customer profile", models.ErrNotFound)
		}
		a.Profile = cloneAccount(&models.Account{Profile: profile}).Profile
		return nil
	})
}

func (r *Accounts) SetArtisanRating(_ context.Context, artisanID string, rating float64) error {
	r.s.mu.RLock()
	failure := r.s.ratingErr
	r.s.mu.RUnlock()
	if failure != nil {
		return failure
	}
	return r.update(artisanID, func(a *models.Account) error {
		p, ok := a.Artisan()
		if !ok {
			return fmt.Errorf("%w: artisan profile", models.ErrNotFound)
		}
		p.Rating = rating
		return nil
	})
}

// DeleteUnverifiedBefore removes unverified accounts created before cutoff
// along with their reviews and favorites.
func (r *Accounts) DeleteUnverifiedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	kept := r.s.order[:0]
	for _, id := range r.s.order {
		a := r.s.accounts[id]
		if a.IsEmailVerified || !a.CreatedAt.Before(cutoff) {
			kept = append(kept, id)
			continue
		}
		r.s.dropAccountLocked(id)
		deleted++
	}
	r.s.order = kept
	return deleted, nil
}

func (s *Store) dropAccountLocked(id string) {
	delete(s.accounts, id)
	delete(s.favorites, id)
	for customer, ids := range s.favorites {
		s.favorites[customer] = without(ids, id)
	}
	kept := s.rorder[:0]
	for _, rid := range s.rorder {
		rv := s.reviews[rid]
		if rv.CustomerID == id || rv.ArtisanID == id {
			delete(s.reviews, rid)
			continue
		}
		kept = append(kept, rid)
	}
	s.rorder = kept
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
