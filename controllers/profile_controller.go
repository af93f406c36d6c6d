package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"abeg-fix/libs"
	"abeg-fix/middleware"
	"abeg-fix/models"
	"abeg-fix/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profiles      *services.ProfileService
	maxUploadSize int64
}

func NewProfileController(profiles *services.ProfileService, maxUploadSize int64) *ProfileController {
	return &ProfileController{profiles: profiles, maxUploadSize: maxUploadSize}
}

// UpdateArtisanProfile godoc
// @Summary Update the artisan profile
// @Description Rating and verification status are ignored if sent.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateArtisanProfileRequest true "Artisan profile"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/auth/update-profile [put]
func (ctrl *ProfileController) UpdateArtisanProfile(c *gin.Context) {
	var req models.UpdateArtisanProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := ctrl.profiles.UpdateArtisanProfile(c.Request.Context(), middleware.CurrentAccount(c), req.ArtisanProfile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    account,
	})
}

// UpdateCustomerProfile godoc
// @Summary Update the customer profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateCustomerProfileRequest true "Customer profile"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/auth/customer-profile [put]
func (ctrl *ProfileController) UpdateCustomerProfile(c *gin.Context) {
	var req models.UpdateCustomerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := ctrl.profiles.UpdateCustomerProfile(c.Request.Context(), middleware.CurrentAccount(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    account,
	})
}

// UploadProfilePhoto godoc
// @Summary Upload the artisan profile picture
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Profile picture"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/profile-photo [post]
func (ctrl *ProfileController) UploadProfilePhoto(c *gin.Context) {
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Photo file is required",
		})
		return
	}

	upload, closeFn, err := ctrl.open(header)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeFn()

	account, err := ctrl.profiles.UploadProfilePhoto(c.Request.Context(), middleware.CurrentAccount(c), upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile photo updated",
		Data:    account,
	})
}

// UploadPortfolio godoc
// @Summary Add images to the artisan portfolio
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param images formData file true "Portfolio images"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/portfolio [post]
func (ctrl *ProfileController) UploadPortfolio(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "At least one image is required",
		})
		return
	}

	var uploads []services.Upload
	for _, header := range form.File["images"] {
		upload, closeFn, err := ctrl.open(header)
		if err != nil {
			respondError(c, err)
			return
		}
		defer closeFn()
		uploads = append(uploads, upload)
	}

	account, err := ctrl.profiles.AddPortfolioImages(c.Request.Context(), middleware.CurrentAccount(c), uploads)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: fmt.Sprintf("%d image(s) added to portfolio", len(uploads)),
		Data:    account,
	})
}

func (ctrl *ProfileController) open(header *multipart.FileHeader) (services.Upload, func(), error) {
	if err := libs.ValidateImageFile(header, ctrl.maxUploadSize); err != nil {
		return services.Upload{}, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return services.Upload{}, nil, fmt.Errorf("open upload: %w", err)
	}
	return services.Upload{Filename: header.Filename, Body: file}, func() { file.Close() }, nil
}
