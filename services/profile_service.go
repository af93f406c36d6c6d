package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"abeg-fix/models"

	"go.uber.org/zap"
)

const (
	profilePhotoFolder = "profiles"
	portfolioFolder    = "portfolio"
)

type Upload struct {
	Filename string
	Body     io.Reader
}

type ProfileService struct {
	accounts AccountStore
	media    MediaUploader
	logger   *zap.Logger
}

func NewProfileService(accounts AccountStore, media MediaUploader, logger *zap.Logger) *ProfileService {
	return &ProfileService{accounts: accounts, media: media, logger: logger}
}

func artisanOf(account *models.Account) (*models.ArtisanProfile, error) {
	profile, ok := account.Artisan()
	if !ok {
		return nil, fmt.Errorf("%w: user role not authorized", models.ErrForbidden)
	}
	return profile, nil
}

// UpdateArtisanProfile replaces the client-writable artisan fields. Rating
// and verification are carried over from the stored profile.
func (s *ProfileService) UpdateArtisanProfile(ctx context.Context, account *models.Account, in models.ArtisanProfileInput) (*models.Account, error) {
	current, err := artisanOf(account)
	if err != nil {
		return nil, err
	}
	if in.Location != nil && !in.Location.Valid() {
		return nil, fmt.Errorf("%w: location out of range", models.ErrValidation)
	}
	if len(in.Portfolio) > models.MaxPortfolioImages {
		return nil, fmt.Errorf("%w: you can only upload a maximum of %d portfolio images",
			models.ErrValidation, models.MaxPortfolioImages)
	}

	portfolio := in.Portfolio
	if portfolio == nil {
		portfolio = []string{}
	}
	updated := &models.ArtisanProfile{
		BusinessName: strings.TrimSpace(in.BusinessName),
		Category:     strings.TrimSpace(in.Category),
		WhatsApp:     strings.TrimSpace(in.WhatsApp),
		NIN:          strings.TrimSpace(in.NIN),
		Bio:          strings.TrimSpace(in.Bio),
		ProfilePic:   in.ProfilePic,
		Address:      strings.TrimSpace(in.Address),
		Location:     in.Location,
		Portfolio:    portfolio,
		IsVerified:   current.IsVerified,
		Rating:       current.Rating,
	}
	return s.saveArtisan(ctx, account, updated)
}

func (s *ProfileService) UpdateCustomerProfile(ctx context.Context, account *models.Account, req models.UpdateCustomerProfileRequest) (*models.Account, error) {
	if _, ok := account.Customer(); !ok {
		return nil, fmt.Errorf("%w: user role not authorized", models.ErrForbidden)
	}
	location, err := models.PointFromCoordinates(req.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	profile := &models.CustomerProfile{LGA: strings.TrimSpace(req.LGA), Location: location}
	if err := s.accounts.UpdateCustomerProfile(ctx, account.ID, profile); err != nil {
		return nil, err
	}
	out := *account
	out.Profile = profile
	return &out, nil
}

func (s *ProfileService) UploadProfilePhoto(ctx context.Context, account *models.Account, upload Upload) (*models.Account, error) {
	current, err := artisanOf(account)
	if err != nil {
		return nil, err
	}

	url, err := s.media.UploadImage(ctx, upload.Body, upload.Filename, profilePhotoFolder)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.ProfilePic = url
	return s.saveArtisan(ctx, account, &updated)
}

// AddPortfolioImages appends uploaded images to the artisan's portfolio. The
// whole batch is rejected if it would exceed the portfolio limit.
func (s *ProfileService) AddPortfolioImages(ctx context.Context, account *models.Account, uploads []Upload) (*models.Account, error) {
	current, err := artisanOf(account)
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", models.ErrValidation)
	}
	if len(current.Portfolio)+len(uploads) > models.MaxPortfolioImages {
		return nil, fmt.Errorf("%w: you can only upload a maximum of %d portfolio images",
			models.ErrValidation, models.MaxPortfolioImages)
	}

	updated := *current
	updated.Portfolio = append([]string{}, current.Portfolio...)
	for _, u := range uploads {
		url, err := s.media.UploadImage(ctx, u.Body, u.Filename, portfolioFolder)
		if err != nil {
			return nil, err
		}
		updated.Portfolio = append(updated.Portfolio, url)
	}
	return s.saveArtisan(ctx, account, &updated)
}

func (s *ProfileService) saveArtisan(ctx context.Context, account *models.Account, profile *models.ArtisanProfile) (*models.Account, error) {
	if err := s.accounts.UpdateArtisanProfile(ctx, account.ID, profile); err != nil {
		return nil, err
	}
	s.logger.Info("Artisan profile updated", zap.String("account_id", account.ID))

	out := *account
	out.Profile = profile
	return &out, nil
}
