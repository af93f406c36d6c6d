package services

import (
	"context"
	"io"
	"time"

	"abeg-fix/models"
)

// AccountStore persists accounts together with their role profile.
// Lookups return models.ErrNotFound when nothing matches.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.Account, error)
	SaveVerification(ctx context.Context, id string, verified bool, otp *string, expires *time.Time) error
	SaveResetToken(ctx context.Context, id string, hashedToken *string, expires *time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateArtisanProfile(ctx context.Context, id string, profile *models.ArtisanProfile) error
	UpdateCustomerProfile(ctx context.Context, id string, profile *models.CustomerProfile) error
	SetArtisanRating(ctx context.Context, artisanID string, rating float64) error
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReviewStore persists reviews. Create returns models.ErrDuplicate when the
// customer already reviewed the artisan.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id string) (*models.Review, error)
	Delete(ctx context.Context, id string) error
	ListByArtisan(ctx context.Context, artisanID string) ([]models.ReviewWithAuthor, error)
	RatingsByArtisan(ctx context.Context, artisanID string) ([]int, error)
}

type FavoriteStore interface {
	Contains(ctx context.Context, customerID, artisanID string) (bool, error)
	Add(ctx context.Context, customerID, artisanID string) error
	Remove(ctx context.Context, customerID, artisanID string) error
	List(ctx context.Context, customerID string) ([]string, error)
	ListArtisans(ctx context.Context, customerID string) ([]models.ArtisanListing, error)
}

// ArtisanDirectory answers directory queries. With an origin, results are
// nearest first with Distance set and artisans lacking a usable location are
// left out.
type ArtisanDirectory interface {
	Search(ctx context.Context, q models.DirectoryQuery) ([]models.ArtisanListing, error)
	FindArtisan(ctx context.Context, id string) (*models.ArtisanListing, error)
}

type Mailer interface {
	SendVerificationOTP(to, firstName, otp string, role models.Role) error
	SendPasswordReset(to, firstName, resetURL string) error
}

type MediaUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error)
}
