package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"abeg-fix/models"
	"abeg-fix/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(f *fixture) (*AuthService, *clock) {
	c := &clock{t: time.Now()}
	svc := NewAuthService(
		f.store.Accounts(),
		f.store.Favorites(),
		f.mailer,
		utils.NewTokenManager("test-secret", time.Hour),
		AuthConfig{OTPTTL: 10 * time.Minute, ResetTokenTTL: time.Hour, FrontendURL: "https://abegfix.example/"},
		f.logger,
	)
	svc.now = c.now
	return svc, c
}

func customerSignup() models.CustomerSignupRequest {
	return models.CustomerSignupRequest{
		Email:       "  Ada@Example.com ",
		Password:    "secret1",
		FirstName:   "Ada",
		LastName:    "Obi",
		LGA:         "Ikeja",
		Coordinates: []float64{3.3515, 6.6018},
	}
}

func TestAuthService_SignupCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, _ := newAuthService(f)

	resp, err := svc.SignupCustomer(ctx, customerSignup())
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Role)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "OTP sent to email", resp.Msg)

	account, err := f.store.Accounts().FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, account.IsEmailVerified)
	assert.NotEqual(t, "secret1", account.PasswordHash)
	p, ok := account.Customer()
	require.True(t, ok)
	require.NotNil(t, p.Location)
	assert.Equal(t, 6.6018, p.Location.Latitude)

	mail := f.mailer.last()
	assert.Equal(t, "ada@example.com", mail.To)
	assert.Len(t, mail.OTP, 6)
	assert.Equal(t, *account.EmailVerificationOTP, mail.OTP)

	_, err = svc.SignupCustomer(ctx, customerSignup())
	assert.ErrorIs(t, err, models.ErrDuplicate)

	bad := customerSignup()
	bad.Email = "other@example.com"
	bad.Coordinates = []float64{3.3, 95}
	_, err = svc.SignupCustomer(ctx, bad)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAuthService_SignupArtisanDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, _ := newAuthService(f)

	resp, err := svc.SignupArtisan(ctx, models.ArtisanSignupRequest{
		Email: "tunde@example.com", Password: "secret1", FirstName: "Tunde", LastName: "Bello",
		Category: "Plumber", WhatsApp: "+2348012345678",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleArtisan, resp.Role)

	account, err := f.store.Accounts().FindByEmail(ctx, "tunde@example.com")
	require.NoError(t, err)
	p, ok := account.Artisan()
	require.True(t, ok)
	assert.Equal(t, "Tunde's Services", p.BusinessName)
	assert.Equal(t, models.DefaultArtisanRating, p.Rating)
	assert.Nil(t, p.Location)
}

func TestAuthService_SignupSurvivesMailFailure(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errBoom
	svc, _ := newAuthService(f)

	resp, err := svc.SignupCustomer(context.Background(), customerSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_VerifyThenLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, c := newAuthService(f)

	_, err := svc.SignupCustomer(ctx, customerSignup())
	require.NoError(t, err)
	otp := f.mailer.last().OTP

	login := models.LoginRequest{Email: "ada@example.com", Password: "secret1"}
	_, err = svc.Login(ctx, login)
	assert.ErrorIs(t, err, models.ErrEmailNotVerified)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "wrong-one"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	account, err := f.store.Accounts().FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if otp == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, svc.VerifyEmail(ctx, account, wrong), models.ErrExpired)

	c.advance(11 * time.Minute)
	assert.ErrorIs(t, svc.VerifyEmail(ctx, account, otp), models.ErrExpired)

	require.NoError(t, svc.ResendOTP(ctx, "ada@example.com"))
	fresh := f.mailer.last().OTP
	account, err = f.store.Accounts().FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, account, fresh))

	account, err = f.store.Accounts().FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, account.IsEmailVerified)
	assert.Nil(t, account.EmailVerificationOTP)
	assert.ErrorIs(t, svc.VerifyEmail(ctx, account, fresh), models.ErrValidation)
	assert.ErrorIs(t, svc.ResendOTP(ctx, "ada@example.com"), models.ErrValidation)

	resp, err := svc.Login(ctx, login)
	require.NoError(t, err)

	me, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, me.ID)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, _ := newAuthService(f)

	_, err := svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	ghost, err := svc.tokens.Generate("6f1c1f2e-0000-4000-8000-000000000000", "customer")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, c := newAuthService(f)
	customer := f.customer(t, "Ada")
	hash, err := utils.HashPassword("old-password")
	require.NoError(t, err)
	require.NoError(t, f.store.Accounts().UpdatePassword(ctx, customer.ID, hash))

	require.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
	assert.Zero(t, f.mailer.count())

	require.NoError(t, svc.ForgotPassword(ctx, "ADA@example.com"))
	url := f.mailer.last().ResetURL
	require.True(t, strings.HasPrefix(url, "https://abegfix.example/update-password/"), url)
	raw := strings.TrimPrefix(url, "https://abegfix.example/update-password/")

	stored, err := f.store.Accounts().FindByID(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetPasswordToken)
	assert.NotEqual(t, raw, *stored.ResetPasswordToken, "only the digest is stored")

	assert.ErrorIs(t, svc.ResetPassword(ctx, "wrong-token", "new-password"), models.ErrExpired)
	require.NoError(t, svc.ResetPassword(ctx, raw, "new-password"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, raw, "another-one"), models.ErrExpired, "tokens are single use")

	_, err = svc.Login(ctx, models.LoginRequest{Email: customer.Email, Password: "new-password"})
	assert.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, customer.Email))
	late := strings.TrimPrefix(f.mailer.last().ResetURL, "https://abegfix.example/update-password/")
	c.advance(2 * time.Hour)
	assert.ErrorIs(t, svc.ResetPassword(ctx, late, "too-late"), models.ErrExpired)
}

func TestAuthService_UpdatePasswordAndMe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, _ := newAuthService(f)
	customer := f.customer(t, "Ada")
	hash, err := utils.HashPassword("current1")
	require.NoError(t, err)
	require.NoError(t, f.store.Accounts().UpdatePassword(ctx, customer.ID, hash))
	customer.PasswordHash = hash

	err = svc.UpdatePassword(ctx, customer, models.UpdatePasswordRequest{CurrentPassword: "nope", NewPassword: "next12"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	require.NoError(t, svc.UpdatePassword(ctx, customer, models.UpdatePasswordRequest{CurrentPassword: "current1", NewPassword: "next12"}))

	me, err := svc.Me(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, me.ID)
	assert.NotNil(t, me.Favorites)
	assert.Empty(t, me.Favorites)
}
