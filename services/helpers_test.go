package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"abeg-fix/models"
	"abeg-fix/repositories/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store  *memstore.Store
	mailer *captureMailer
	media  *fakeUploader
	logger *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		store:  memstore.New(),
		mailer: &captureMailer{},
		media:  &fakeUploader{},
		logger: zap.NewNop(),
	}
}

func (f *fixture) reviewService() *ReviewService {
	agg := NewRatingAggregator(f.store.Reviews(), f.store.Accounts(), f.logger)
	return NewReviewService(f.store.Reviews(), f.store.Directory(), agg, f.logger)
}

func (f *fixture) customer(t *testing.T, name string) *models.Account {
	t.Helper()
	a := &models.Account{
		ID:              uuid.NewString(),
		FirstName:       name,
		LastName:        "Okafor",
		Email:           strings.ToLower(name) + "@example.com",
		IsEmailVerified: true,
		Profile:         &models.CustomerProfile{LGA: "Ikeja"},
	}
	require.NoError(t, f.store.Accounts().Create(context.Background(), a))
	return a
}

func (f *fixture) artisan(t *testing.T, name, category string, loc *models.GeoPoint) *models.Account {
	t.Helper()
	p := models.NewArtisanProfile()
	p.BusinessName = name + "'s Services"
	p.Category = category
	p.NIN = "12345678901"
	p.Location = loc
	a := &models.Account{
		ID:              uuid.NewString(),
		FirstName:       name,
		LastName:        "Adeyemi",
		Email:           strings.ToLower(name) + "@example.com",
		IsEmailVerified: true,
		Profile:         p,
	}
	require.NoError(t, f.store.Accounts().Create(context.Background(), a))
	return a
}

func (f *fixture) rating(t *testing.T, artisanID string) float64 {
	t.Helper()
	a, err := f.store.Accounts().FindByID(context.Background(), artisanID)
	require.NoError(t, err)
	p, ok := a.Artisan()
	require.True(t, ok)
	return p.Rating
}

type sentMail struct {
	To, FirstName, OTP, ResetURL string
	Role                         models.Role
}

type captureMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *captureMailer) SendVerificationOTP(to, firstName, otp string, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, FirstName: firstName, OTP: otp, Role: role})
	return m.err
}

func (m *captureMailer) SendPasswordReset(to, firstName, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, FirstName: firstName, ResetURL: resetURL})
	return m.err
}

func (m *captureMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeUploader struct {
	uploads []string
	err     error
}

func (u *fakeUploader) UploadImage(_ context.Context, file io.Reader, filename, folder string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	url := "https://res.cloudinary.com/demo/" + folder + "/" + filename
	u.uploads = append(u.uploads, url)
	return url, nil
}

// clock is a settable time source for services that take a now func.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

var errBoom = errors.New("boom")
