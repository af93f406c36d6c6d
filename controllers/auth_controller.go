package controllers

import (
	"net/http"

	"abeg-fix/middleware"
	"abeg-fix/models"
	"abeg-fix/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// SignupCustomer godoc
// @Summary Register a customer
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.CustomerSignupRequest true "Customer signup"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/signup-customer [post]
func (ctrl *AuthController) SignupCustomer(c *gin.Context) {
	var req models.CustomerSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.SignupCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignupArtisan godoc
// @Summary Register an artisan
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.ArtisanSignupRequest true "Artisan signup"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/signup-artisan [post]
func (ctrl *AuthController) SignupArtisan(c *gin.Context) {
	var req models.ArtisanSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.SignupArtisan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Description Unverified accounts are refused with 403 and unverified=true.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyEmail godoc
// @Summary Verify email with the OTP
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.VerifyEmailRequest true "OTP"
// @Success 200 {object} models.VerifyEmailResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/verify-email [post]
func (ctrl *AuthController) VerifyEmail(c *gin.Context) {
	var req models.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.auth.VerifyEmail(c.Request.Context(), middleware.CurrentAccount(c), req.OTP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.VerifyEmailResponse{
		Msg:             "Email verified successfully!",
		IsEmailVerified: true,
	})
}

// ResendOTP godoc
// @Summary Send a fresh verification code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.EmailRequest true "Email"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/auth/resend-otp [post]
func (ctrl *AuthController) ResendOTP(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.auth.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Msg: "A new verification code has been sent to your email."})
}

// ForgotPassword godoc
// @Summary Email a password reset link
// @Description Responds the same way whether or not the email is registered.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.EmailRequest true "Email"
// @Success 200 {object} models.MessageResponse
// @Router /api/auth/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Email sent successfully"})
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body models.ResetPasswordRequest true "New password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/reset-password/{token} [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Password reset successful"})
}

// UpdatePassword godoc
// @Summary Change password
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdatePasswordRequest true "Passwords"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/update-password [put]
func (ctrl *AuthController) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.auth.UpdatePassword(c.Request.Context(), middleware.CurrentAccount(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Password updated successfully"})
}

// Me godoc
// @Summary Current account
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AccountWithFavorites
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	me, err := ctrl.auth.Me(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, me)
}
