package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkeep_backend/internals/configs"
	"thinkeep_backend/internals/features/users/auth/controller"
	authRepo "thinkeep_backend/internals/features/users/auth/repository"
	"thinkeep_backend/internals/features/users/auth/service"
	userRepo "thinkeep_backend/internals/features/users/user/repository"
	"thinkeep_backend/internals/middlewares"
	authMiddleware "thinkeep_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	tokens := service.NewTokenService(configs.JWTSecret, configs.JWTRefreshSecret)
	svc := service.NewAuthService(
		userRepo.NewUserRepository(db),
		authRepo.NewAuthRepository(db),
		tokens,
		service.NewGoogleVerifier(configs.GoogleClientID),
	)
	ctl := controller.NewAuthController(svc)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ctl.GoogleLogin)
	auth.Post("/refresh-token", ctl.Refresh)
	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctl.Logout)
}
