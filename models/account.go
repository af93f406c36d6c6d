package models

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleArtisan  Role = "artisan"
)

const (
	DefaultArtisanRating = 5.0
	MaxPortfolioImages   = 30
)

// Profile is the role-specific half of an account. Exactly one of
// *CustomerProfile or *ArtisanProfile backs every account, and the account's
// role is read from it.
type Profile interface {
	Role() Role
	isProfile()
}

type CustomerProfile struct {
	LGA      string    `json:"lga"`
	Location *GeoPoint `json:"location,omitempty"`
}

func (*CustomerProfile) Role() Role { return RoleCustomer }
func (*CustomerProfile) isProfile() {}

type ArtisanProfile struct {
	BusinessName string    `json:"businessName"`
	Category     string    `json:"category"`
	WhatsApp     string    `json:"whatsapp"`
	NIN          string    `json:"nin"`
	Bio          string    `json:"bio"`
	ProfilePic   string    `json:"profilePic"`
	Address      string    `json:"address"`
	Location     *GeoPoint `json:"location,omitempty"`
	Portfolio    []string  `json:"portfolio"`
	IsVerified   bool      `json:"isVerified"`
	Rating       float64   `json:"rating"`
}

func (*ArtisanProfile) Role() Role { return RoleArtisan }
func (*ArtisanProfile) isProfile() {}

func NewArtisanProfile() *ArtisanProfile {
	return &ArtisanProfile{Portfolio: []string{}, Rating: DefaultArtisanRating}
}

type Account struct {
	ID                   string
	FirstName            string
	LastName             string
	Email                string
	PasswordHash         string
	IsEmailVerified      bool
	EmailVerificationOTP *string
	OTPExpires           *time.Time
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	Profile              Profile
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (a *Account) Role() Role {
	if a.Profile == nil {
		return ""
	}
	return a.Profile.Role()
}

func (a *Account) Customer() (*CustomerProfile, bool) {
	p, ok := a.Profile.(*CustomerProfile)
	return p, ok
}

func (a *Account) Artisan() (*ArtisanProfile, bool) {
	p, ok := a.Profile.(*ArtisanProfile)
	return p, ok
}

// accountJSON is the owner's view of an account. Secrets never leave the server.
type accountJSON struct {
	ID              string           `json:"_id"`
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Email           string           `json:"email"`
	Role            Role             `json:"role"`
	IsEmailVerified bool             `json:"isEmailVerified"`
	CustomerProfile *CustomerProfile `json:"customerProfile,omitempty"`
	ArtisanProfile  *ArtisanProfile  `json:"artisanProfile,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func (a Account) view() accountJSON {
	out := accountJSON{
		ID:              a.ID,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Email:           a.Email,
		Role:            a.Role(),
		IsEmailVerified: a.IsEmailVerified,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	switch p := a.Profile.(type) {
	case *CustomerProfile:
		out.CustomerProfile = p
	case *ArtisanProfile:
		out.ArtisanProfile = p
	}
	return out
}

func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.view())
}

// AccountWithFavorites is returned by /auth/me so the client can render
// favorite toggles without a second round trip.
type AccountWithFavorites struct {
	Account
	Favorites []string
}

func (a AccountWithFavorites) MarshalJSON() ([]byte, error) {
	favorites := a.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return json.Marshal(struct {
		accountJSON
		Favorites []string `json:"favorites"`
	}{a.Account.view(), favorites})
}
