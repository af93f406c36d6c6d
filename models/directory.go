package models

import "time"

// CategoryAll is the directory filter value that disables category matching.
const CategoryAll = "All"

type DirectoryQuery struct {
	Origin   *GeoPoint
	Category string
}

// PublicArtisanProfile is the artisan profile as shown to other users. It has
// no national ID field.
type PublicArtisanProfile struct {
	BusinessName string    `json:"businessName"`
	Category     string    `json:"category"`
	WhatsApp     string    `json:"whatsapp"`
	Bio          string    `json:"bio"`
	ProfilePic   string    `json:"profilePic"`
	Address      string    `json:"address"`
	Location     *GeoPoint `json:"location,omitempty"`
	Portfolio    []string  `json:"portfolio"`
	IsVerified   bool      `json:"isVerified"`
	Rating       float64   `json:"rating"`
}

func PublicProfile(p *ArtisanProfile) PublicArtisanProfile {
	portfolio := p.Portfolio
	if portfolio == nil {
		portfolio = []string{}
	}
	return PublicArtisanProfile{
		BusinessName: p.BusinessName,
		Category:     p.Category,
		WhatsApp:     p.WhatsApp,
		Bio:          p.Bio,
		ProfilePic:   p.ProfilePic,
		Address:      p.Address,
		Location:     p.Location,
		Portfolio:    portfolio,
		IsVerified:   p.IsVerified,
		Rating:       p.Rating,
	}
}

// ArtisanListing is one directory entry. Distance is in kilometres and is set
// only for queries that carry an origin.
type ArtisanListing struct {
	ID             string               `json:"_id"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Role           Role                 `json:"role"`
	ArtisanProfile PublicArtisanProfile `json:"artisanProfile"`
	CreatedAt      time.Time            `json:"createdAt"`
	Distance       *float64             `json:"distance,omitempty"`
}
