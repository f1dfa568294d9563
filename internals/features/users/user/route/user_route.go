package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/user/controller"
	"thinkeep_backend/internals/features/users/user/repository"
	"thinkeep_backend/internals/features/users/user/service"
	"thinkeep_backend/internals/middlewares"
	authMiddleware "thinkeep_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	svc := service.NewUserService(repository.NewUserRepository(db))
	ctl := controller.NewUserController(svc)

	users := app.Group("/api/users")
	users.Post("/", middlewares.RegisterRateLimiter(), ctl.CreateUser)

	protected := users.Group("", authMiddleware.AuthMiddleware(db))
	protected.Get("/me", ctl.GetMe)
	protected.Put("/me", ctl.UpdateMe)
	protected.Delete("/me", ctl.DeleteMe)
	protected.Get("/me/streak", ctl.GetMyStreak)
	protected.Get("/", ctl.ListUsers)
	protected.Get("/nickname/:nickname", ctl.GetUserByNickname)
	protected.Get("/:id", ctl.GetUser)
}
