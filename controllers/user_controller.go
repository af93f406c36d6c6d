package controllers

import (
	"net/http"

	"abeg-fix/middleware"
	"abeg-fix/services"

	"github.com/gin-gonic/gin"
)

// UserController serves the artisan directory and the caller's favorites.
type UserController struct {
	directory *services.DirectoryService
	favorites *services.FavoriteService
}

func NewUserController(directory *services.DirectoryService, favorites *services.FavoriteService) *UserController {
	return &UserController{directory: directory, favorites: favorites}
}

// GetArtisans godoc
// @Summary Artisan directory
// @Description With lat and lng, artisans are sorted nearest first and carry a distance in km; artisans without a location are left out.
// @Tags Users
// @Produce json
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Param category query string false "Category, or All"
// @Success 200 {array} models.ArtisanListing
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users/artisans [get]
func (ctrl *UserController) GetArtisans(c *gin.Context) {
	q, err := services.ParseDirectoryQuery(c.Query("lat"), c.Query("lng"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	artisans, err := ctrl.directory.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artisans)
}

// GetArtisan godoc
// @Summary Public artisan profile
// @Tags Users
// @Produce json
// @Param id path string true "Artisan ID"
// @Success 200 {object} models.ArtisanListing
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/artisan/{id} [get]
func (ctrl *UserController) GetArtisan(c *gin.Context) {
	artisan, err := ctrl.directory.GetArtisan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artisan)
}

// GetFavorites godoc
// @Summary Favorited artisans
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ArtisanListing
// @Router /api/users/favorites [get]
func (ctrl *UserController) GetFavorites(c *gin.Context) {
	artisans, err := ctrl.favorites.List(c.Request.Context(), middleware.CurrentAccount(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artisans)
}

// ToggleFavorite godoc
// @Summary Add or remove an artisan from favorites
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Artisan ID"
// @Success 200 {object} models.FavoritesResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/favorite/{id} [post]
func (ctrl *UserController) ToggleFavorite(c *gin.Context) {
	resp, err := ctrl.favorites.Toggle(c.Request.Context(), middleware.CurrentAccount(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
