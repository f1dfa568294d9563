package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	badgeRepo "thinkeep_backend/internals/features/badges/badge/repository"
	"thinkeep_backend/internals/features/records/record/controller"
	"thinkeep_backend/internals/features/records/record/repository"
	"thinkeep_backend/internals/features/records/record/service"
	userRepo "thinkeep_backend/internals/features/users/user/repository"
	userService "thinkeep_backend/internals/features/users/user/service"
	authMiddleware "thinkeep_backend/internals/middlewares/auth"
)

func RecordRoutes(app *fiber.App, db *gorm.DB) {
	streaks := userService.NewStreakService(
		userRepo.NewUserRepository(db),
		badgeRepo.NewBadgeRepository(db),
		badgeRepo.NewUserBadgeRepository(db),
	)
	svc := service.NewRecordService(repository.NewRecordRepository(db), streaks)
	ctl := controller.NewRecordController(svc)

	records := app.Group("/api/records", authMiddleware.AuthMiddleware(db))
	records.Post("/", ctl.CreateTodayRecord)
	records.Get("/", ctl.GetRecords)
	records.Get("/today/status", ctl.GetTodayStatus)
	records.Get("/emotions", ctl.GetMonthlyEmotions)
	records.Put("/:id", ctl.UpdateRecord)
	records.Delete("/:id", ctl.DeleteRecord)
}
