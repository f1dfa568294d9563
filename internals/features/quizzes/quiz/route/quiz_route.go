package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkeep_backend/internals/configs"
	"thinkeep_backend/internals/features/quizzes/quiz/controller"
	"thinkeep_backend/internals/features/quizzes/quiz/repository"
	"thinkeep_backend/internals/features/quizzes/quiz/service"
	recordRepo "thinkeep_backend/internals/features/records/record/repository"
	authMiddleware "thinkeep_backend/internals/middlewares/auth"
)

func QuizRoutes(app *fiber.App, db *gorm.DB) {
	generator := service.NewOpenAIQuizGenerator(configs.OpenAIAPIKey, configs.OpenAIModel)
	svc := service.NewQuizService(
		repository.NewQuizRepository(db),
		recordRepo.NewRecordRepository(db),
		generator,
	)
	ctl := controller.NewQuizController(svc)

	quizzes := app.Group("/api/quizzes", authMiddleware.AuthMiddleware(db))
	quizzes.Post("/generate", ctl.GenerateTodayQuizzes)
	quizzes.Get("/retry", ctl.GetTodayWrongQuizzes)
	quizzes.Get("/retry/next", ctl.GetNextRetryQuiz)
	quizzes.Get("/results/today", ctl.GetTodayResultSummary)
	quizzes.Get("/skips/today", ctl.GetTodaySkipStatus)
	quizzes.Delete("/today", ctl.DeleteTodayQuizzes)
	quizzes.Post("/:id/submit", ctl.SubmitQuizAnswer)
	quizzes.Delete("/:id", ctl.DeleteQuiz)
}
