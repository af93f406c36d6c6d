package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"abeg-fix/models"
	"abeg-fix/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthConfig struct {
	OTPTTL        time.Duration
	ResetTokenTTL time.Duration
	FrontendURL   string
}

type AuthService struct {
	accounts  AccountStore
	favorites FavoriteStore
	mailer    Mailer
	tokens    *utils.TokenManager
	cfg       AuthConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(accounts AccountStore, favorites FavoriteStore, mailer Mailer, tokens *utils.TokenManager, cfg AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts:  accounts,
		favorites: favorites,
		mailer:    mailer,
		tokens:    tokens,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) SignupCustomer(ctx context.Context, req models.CustomerSignupRequest) (*models.AuthResponse, error) {
	location, err := models.PointFromCoordinates(req.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	profile := &models.CustomerProfile{
		LGA:      strings.TrimSpace(req.LGA),
		Location: location,
	}
	return s.signup(ctx, req.Email, req.Password, req.FirstName, req.LastName, profile)
}

func (s *AuthService) SignupArtisan(ctx context.Context, req models.ArtisanSignupRequest) (*models.AuthResponse, error) {
	firstName := strings.TrimSpace(req.FirstName)

	profile := models.NewArtisanProfile()
	profile.Category = strings.TrimSpace(req.Category)
	profile.WhatsApp = strings.TrimSpace(req.WhatsApp)
	profile.BusinessName = fmt.Sprintf("%s's Services", firstName)

	return s.signup(ctx, req.Email, req.Password, firstName, req.LastName, profile)
}

func (s *AuthService) signup(ctx context.Context, email, password, firstName, lastName string, profile models.Profile) (*models.AuthResponse, error) {
	email = normalizeEmail(email)

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", models.ErrDuplicate)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	otpExpires := s.now().Add(s.cfg.OTPTTL)

	account := &models.Account{
		ID:                   uuid.NewString(),
		FirstName:            strings.TrimSpace(firstName),
		LastName:             strings.TrimSpace(lastName),
		Email:                email,
		PasswordHash:         hash,
		EmailVerificationOTP: &otp,
		OTPExpires:           &otpExpires,
		Profile:              profile,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user already exists", models.ErrDuplicate)
		}
		return nil, err
	}

	if err := s.mailer.SendVerificationOTP(account.Email, account.FirstName, otp, account.Role()); err != nil {
		s.logger.Error("Verification email failed to send",
			zap.String("account_id", account.ID),
			zap.Error(err))
	}

	token, err := s.tokens.Generate(account.ID, string(account.Role()))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("Account created",
		zap.String("account_id", account.ID),
		zap.String("role", string(account.Role())))

	return &models.AuthResponse{Token: token, Role: account.Role(), Msg: "OTP sent to email"}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(account.PasswordHash, req.Password)
	if err != nil || !valid {
		return nil, models.ErrInvalidCredentials
	}

	if !account.IsEmailVerified {
		return nil, fmt.Errorf("%w: please verify your email to login", models.ErrEmailNotVerified)
	}

	token, err := s.tokens.Generate(account.ID, string(account.Role()))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, Role: account.Role()}, nil
}

// Authenticate resolves a bearer token to its current account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: token is not valid", models.ErrUnauthorized)
	}
	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: not authorized", models.ErrUnauthorized)
		}
		return nil, err
	}
	return account, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, account *models.Account, otp string) error {
	if account.IsEmailVerified {
		return fmt.Errorf("%w: email already verified", models.ErrValidation)
	}
	if account.EmailVerificationOTP == nil || account.OTPExpires == nil ||
		*account.EmailVerificationOTP != strings.TrimSpace(otp) ||
		account.OTPExpires.Before(s.now()) {
		return fmt.Errorf("%w: OTP", models.ErrExpired)
	}

	if err := s.accounts.SaveVerification(ctx, account.ID, true, nil, nil); err != nil {
		return err
	}
	s.logger.Info("Email verified", zap.String("account_id", account.ID))
	return nil
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if account.IsEmailVerified {
		return fmt.Errorf("%w: email already verified", models.ErrValidation)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expires := s.now().Add(s.cfg.OTPTTL)
	if err := s.accounts.SaveVerification(ctx, account.ID, false, &otp, &expires); err != nil {
		return err
	}
	return s.mailer.SendVerificationOTP(account.Email, account.FirstName, otp, account.Role())
}

// ForgotPassword mails a reset link when the account exists. Unknown emails
// succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, hashed, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expires := s.now().Add(s.cfg.ResetTokenTTL)
	if err := s.accounts.SaveResetToken(ctx, account.ID, &hashed, &expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/update-password/%s", strings.TrimRight(s.cfg.FrontendURL, "/"), raw)
	return s.mailer.SendPasswordReset(account.Email, account.FirstName, resetURL)
}

func (s *AuthService) ResetPassword(ctx context.Context, rawToken, password string) error {
	account, err := s.accounts.FindByResetToken(ctx, utils.HashResetToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: reset token", models.ErrExpired)
		}
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.UpdatePassword(ctx, account.ID, hash)
}

func (s *AuthService) UpdatePassword(ctx context.Context, account *models.Account, req models.UpdatePasswordRequest) error {
	valid, err := utils.VerifyPassword(account.PasswordHash, req.CurrentPassword)
	if err != nil || !valid {
		return fmt.Errorf("%w: incorrect current password", models.ErrInvalidCredentials)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.UpdatePassword(ctx, account.ID, hash)
}

func (s *AuthService) Me(ctx context.Context, account *models.Account) (*models.AccountWithFavorites, error) {
	favorites, err := s.favorites.List(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	return &models.AccountWithFavorites{Account: *account, Favorites: favorites}, nil
}
