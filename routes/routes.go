package routes

import (
	"net/http"

	"abeg-fix/controllers"
	"abeg-fix/middleware"
	"abeg-fix/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Profile *controllers.ProfileController
	User    *controllers.UserController
	Review  *controllers.ReviewController
	Health  *controllers.HealthController
}

// SetupRoutes mounts the API on router. limiter guards the unauthenticated
// auth endpoints.
func SetupRoutes(router *gin.Engine, ctrl Controllers, auth middleware.Authenticator, limiter gin.HandlerFunc) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", ctrl.Health.Health)

	protect := middleware.AuthMiddleware(auth, false)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup-customer", limiter, ctrl.Auth.SignupCustomer)
		authGroup.POST("/signup-artisan", limiter, ctrl.Auth.SignupArtisan)
		authGroup.POST("/login", limiter, ctrl.Auth.Login)
		authGroup.POST("/resend-otp", limiter, ctrl.Auth.ResendOTP)
		authGroup.POST("/forgot-password", limiter, ctrl.Auth.ForgotPassword)
		authGroup.POST("/reset-password/:token", limiter, ctrl.Auth.ResetPassword)

		authGroup.POST("/verify-email", middleware.AuthMiddleware(auth, true), ctrl.Auth.VerifyEmail)
		authGroup.PUT("/update-password", protect, ctrl.Auth.UpdatePassword)
		authGroup.GET("/me", protect, ctrl.Auth.Me)

		artisan := middleware.RequireRole(models.RoleArtisan)
		authGroup.PUT("/update-profile", protect, artisan, ctrl.Profile.UpdateArtisanProfile)
		authGroup.POST("/profile-photo", protect, artisan, ctrl.Profile.UploadProfilePhoto)
		authGroup.POST("/portfolio", protect, artisan, ctrl.Profile.UploadPortfolio)
		authGroup.PUT("/customer-profile", protect, middleware.RequireRole(models.RoleCustomer), ctrl.Profile.UpdateCustomerProfile)
	}

	users := api.Group("/users")
	{
		users.GET("/artisans", ctrl.User.GetArtisans)
		users.GET("/artisan/:id", ctrl.User.GetArtisan)
		users.GET("/favorites", protect, ctrl.User.GetFavorites)
		users.POST("/favorite/:id", protect, ctrl.User.ToggleFavorite)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", protect, ctrl.Review.CreateReview)
		reviews.DELETE("/:id", protect, ctrl.Review.DeleteReview)
		reviews.GET("/artisan/:artisanId", ctrl.Review.GetArtisanReviews)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Route not found"})
	})
}
