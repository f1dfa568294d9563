package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/badges/badge/controller"
	"thinkeep_backend/internals/features/badges/badge/repository"
	"thinkeep_backend/internals/features/badges/badge/service"
	authMiddleware "thinkeep_backend/internals/middlewares/auth"
)

func BadgeRoutes(app *fiber.App, db *gorm.DB) {
	svc := service.NewBadgeService(
		repository.NewBadgeRepository(db),
		repository.NewUserBadgeRepository(db),
	)
	ctl := controller.NewBadgeController(svc)

	badges := app.Group("/api/badges")
	badges.Get("/", ctl.ListBadges)

	protected := badges.Group("", authMiddleware.AuthMiddleware(db))
	protected.Get("/me", ctl.GetMyBadges)
	protected.Post("/", ctl.CreateBadge)
	protected.Post("/:id/assign", ctl.AssignBadge)
	protected.Put("/:id", ctl.UpdateBadge)
	protected.Delete("/:id", ctl.DeleteBadge)

	// catalog lookup stays public; registered after /me so the static
	// segment wins
	badges.Get("/:id", ctl.GetBadge)
}
