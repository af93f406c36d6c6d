package models

import "time"

const (
	MinReviewRating     = 1
	MaxReviewRating     = 5
	MaxReviewCommentLen = 500
)

type Review struct {
	ID         string    `json:"_id"`
	CustomerID string    `json:"customer"`
	ArtisanID  string    `json:"artisan"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReviewAuthor struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ReviewWithAuthor carries the reviewing customer's display name in place of
// the bare customer id.
type ReviewWithAuthor struct {
	ID        string       `json:"_id"`
	Customer  ReviewAuthor `json:"customer"`
	ArtisanID string       `json:"artisan"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
}
