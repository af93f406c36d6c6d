package repositories

import (
	"context"
	"fmt"
	"time"

	"abeg-fix/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const selectAccount = `
	SELECT
		a.id::text, a.first_name, a.last_name, a.email, a.password_hash, a.role,
		a.is_email_verified, a.email_verification_otp, a.otp_expires,
		a.reset_password_token, a.reset_password_expires, a.created_at, a.updated_at,
		c.lga, c.longitude, c.latitude,
		p.business_name, p.category, p.whatsapp, p.nin, p.bio, p.profile_pic, p.address,
		p.longitude, p.latitude, p.portfolio, p.is_verified, p.rating
	FROM accounts a
	LEFT JOIN customer_profiles c ON c.account_id = a.id
	LEFT JOIN artisan_profiles p ON p.account_id = a.id
`

func pointFrom(lng, lat *float64) *models.GeoPoint {
	if lng == nil || lat == nil {
		return nil
	}
	return &models.GeoPoint{Longitude: *lng, Latitude: *lat}
}

func pointColumns(p *models.GeoPoint) (lng, lat *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Longitude, &p.Latitude
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var (
		a    models.Account
		role string

		lga             *string
		cLng, cLat      *float64
		business, categ *string
		whatsapp, nin   *string
		bio, pic, addr  *string
		pLng, pLat      *float64
		portfolio       []string
		isVerified      *bool
		rating          *float64
	)
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &role,
		&a.IsEmailVerified, &a.EmailVerificationOTP, &a.OTPExpires,
		&a.ResetPasswordToken, &a.ResetPasswordExpires, &a.CreatedAt, &a.UpdatedAt,
		&lga, &cLng, &cLat,
		&business, &categ, &whatsapp, &nin, &bio, &pic, &addr,
		&pLng, &pLat, &portfolio, &isVerified, &rating,
	)
	if err != nil {
		return nil, err
	}

	switch models.Role(role) {
	case models.RoleCustomer:
		a.Profile = &models.CustomerProfile{LGA: deref(lga), Location: pointFrom(cLng, cLat)}
	case models.RoleArtisan:
		p := models.NewArtisanProfile()
		p.BusinessName = deref(business)
		p.Category = deref(categ)
		p.WhatsApp = deref(whatsapp)
		p.NIN = deref(nin)
		p.Bio = deref(bio)
		p.ProfilePic = deref(pic)
		p.Address = deref(addr)
		p.Location = pointFrom(pLng, pLat)
		if portfolio != nil {
			p.Portfolio = portfolio
		}
		if isVerified != nil {
			p.IsVerified = *isVerified
		}
		if rating != nil {
			p.Rating = *rating
		}
		a.Profile = p
	default:
		return nil, fmt.Errorf("account %s has unknown role %q", a.ID, role)
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	err = tx.QueryRow(ctx, `
		INSERT INTO accounts (id, first_name, last_name, email, password_hash, role,
			is_email_verified, email_verification_otp, otp_expires, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING created_at, updated_at`,
		account.ID, account.FirstName, account.LastName, account.Email, account.PasswordHash,
		string(account.Role()), account.IsEmailVerified, account.EmailVerificationOTP,
		account.OTPExpires, now,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return translate(err, "account")
	}

	switch p := account.Profile.(type) {
	case *models.CustomerProfile:
		lng, lat := pointColumns(p.Location)
		_, err = tx.Exec(ctx, `
			INSERT INTO customer_profiles (account_id, lga, longitude, latitude)
			VALUES ($1::uuid, $2, $3, $4)`,
			account.ID, p.LGA, lng, lat)
	case *models.ArtisanProfile:
		_, err = tx.Exec(ctx, `
			INSERT INTO artisan_profiles (account_id, business_name, category, whatsapp, rating, portfolio)
			VALUES ($1::uuid, $2, $3, $4, $5, $6)`,
			account.ID, p.BusinessName, p.Category, p.WhatsApp, p.Rating, nonNil(p.Portfolio))
	default:
		return fmt.Errorf("account %s has no profile", account.ID)
	}
	if err != nil {
		return translate(err, "profile")
	}

	return tx.Commit(ctx)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, selectAccount+` WHERE a.id = $1::uuid`, id))
	return account, translate(err, "account")
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, selectAccount+` WHERE a.email = $1`, email))
	return account, translate(err, "account")
}

func (r *AccountRepository) FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx,
		selectAccount+` WHERE a.reset_password_token = $1 AND a.reset_password_expires > $2`,
		hashedToken, now))
	return account, translate(err, "reset token")
}

func (r *AccountRepository) exec(ctx context.Context, what, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translate(err, what)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, what)
	}
	return nil
}

func (r *AccountRepository) SaveVerification(ctx context.Context, id string, verified bool, otp *string, expires *time.Time) error {
	return r.exec(ctx, "account", `
		UPDATE accounts
		SET is_email_verified = $1, email_verification_otp = $2, otp_expires = $3, updated_at = NOW()
		WHERE id = $4::uuid`,
		verified, otp, expires, id)
}

func (r *AccountRepository) SaveResetToken(ctx context.Context, id string, hashedToken *string, expires *time.Time) error {
	return r.exec(ctx, "account", `
		UPDATE accounts
		SET reset_password_token = $1, reset_password_expires = $2, updated_at = NOW()
		WHERE id = $3::uuid`,
		hashedToken, expires, id)
}

// UpdatePassword also clears any outstanding reset token.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, "account", `
		UPDATE accounts
		SET password_hash = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		WHERE id = $2::uuid`,
		passwordHash, id)
}

func (r *AccountRepository) UpdateArtisanProfile(ctx context.Context, id string, p *models.ArtisanProfile) error {
	lng, lat := pointColumns(p.Location)
	return r.exec(ctx, "artisan profile", `
		UPDATE artisan_profiles
		SET business_name = $1, category = $2, whatsapp = $3, nin = $4, bio = $5,
			profile_pic = $6, address = $7, longitude = $8, latitude = $9, portfolio = $10
		WHERE account_id = $11::uuid`,
		p.BusinessName, p.Category, p.WhatsApp, p.NIN, p.Bio,
		p.ProfilePic, p.Address, lng, lat, nonNil(p.Portfolio), id)
}

func (r *AccountRepository) UpdateCustomerProfile(ctx context.Context, id string, p *models.CustomerProfile) error {
	lng, lat := pointColumns(p.Location)
	return r.exec(ctx, "customer profile", `
		UPDATE customer_profiles
		SET lga = $1, longitude = $2, latitude = $3
		WHERE account_id = $4::uuid`,
		p.LGA, lng, lat, id)
}

func (r *AccountRepository) SetArtisanRating(ctx context.Context, artisanID string, rating float64) error {
	return r.exec(ctx, "artisan profile",
		`UPDATE artisan_profiles SET rating = $1 WHERE account_id = $2::uuid`,
		rating, artisanID)
}

func (r *AccountRepository) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM accounts WHERE is_email_verified = FALSE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, translate(err, "unverified accounts")
	}
	return tag.RowsAffected(), nil
}
