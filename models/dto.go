package models

type CustomerSignupRequest struct {
	Email       string    `json:"email" binding:"required,email"`
	Password    string    `json:"password" binding:"required,min=6"`
	FirstName   string    `json:"firstName" binding:"required"`
	LastName    string    `json:"lastName" binding:"required"`
	LGA         string    `json:"lga"`
	Coordinates []float64 `json:"coordinates" binding:"omitempty,len=2"`
}

type ArtisanSignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Category  string `json:"category"`
	WhatsApp  string `json:"whatsapp"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	OTP string `json:"otp" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ArtisanProfileInput holds the client-writable artisan fields. Rating and
// the verification flag are server-owned.
type ArtisanProfileInput struct {
	BusinessName string    `json:"businessName"`
	Category     string    `json:"category"`
	WhatsApp     string    `json:"whatsapp"`
	NIN          string    `json:"nin"`
	Bio          string    `json:"bio"`
	ProfilePic   string    `json:"profilePic"`
	Address      string    `json:"address"`
	Location     *GeoPoint `json:"location"`
	Portfolio    []string  `json:"portfolio" binding:"max=30"`
}

type UpdateArtisanProfileRequest struct {
	ArtisanProfile ArtisanProfileInput `json:"artisanProfile"`
}

type UpdateCustomerProfileRequest struct {
	LGA         string    `json:"lga"`
	Coordinates []float64 `json:"coordinates" binding:"omitempty,len=2"`
}

type CreateReviewRequest struct {
	ArtisanID string `json:"artisanId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Msg   string `json:"msg,omitempty"`
}

type FavoritesResponse struct {
	Msg       string   `json:"msg"`
	Favorites []string `json:"favorites"`
}
