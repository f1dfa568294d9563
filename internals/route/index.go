package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	badgeRoute "thinkeep_backend/internals/features/badges/badge/route"
	quizRoute "thinkeep_backend/internals/features/quizzes/quiz/route"
	recordRoute "thinkeep_backend/internals/features/records/record/route"
	authRoute "thinkeep_backend/internals/features/users/auth/route"
	userRoute "thinkeep_backend/internals/features/users/user/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(app, db)

	log.Println("[INFO] Setting up RecordRoutes...")
	recordRoute.RecordRoutes(app, db)

	log.Println("[INFO] Setting up QuizRoutes...")
	quizRoute.QuizRoutes(app, db)

	log.Println("[INFO] Setting up BadgeRoutes...")
	badgeRoute.BadgeRoutes(app, db)
}
