package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"thinkeep_backend/internals/features/quizzes/quiz/dto"
	"thinkeep_backend/internals/features/quizzes/quiz/service"
	helper "thinkeep_backend/internals/helpers"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// POST /quizzes/generate
func (ctl *QuizController) GenerateTodayQuizzes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizzes, err := ctl.Service.GenerateTodayQuizzes(c.Context(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Quizzes generated", quizzes)
}

// POST /quizzes/:id/submit
func (ctl *QuizController) SubmitQuizAnswer(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	var req dto.QuizSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	res, err := ctl.Service.SubmitQuizAnswer(userID, uint(quizID), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Answer submitted", res)
}

// GET /quizzes/retry
func (ctl *QuizController) GetTodayWrongQuizzes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizzes, err := ctl.Service.GetTodayWrongQuizzes(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "OK", quizzes)
}

// GET /quizzes/retry/next
func (ctl *QuizController) GetNextRetryQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quiz, err := ctl.Service.GetNextRetryQuiz(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if quiz == nil {
		return helper.JsonOK(c, "No quizzes left to retry", nil)
	}
	return helper.JsonOK(c, "OK", quiz)
}

// GET /quizzes/results/today
func (ctl *QuizController) GetTodayResultSummary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	summary, err := ctl.Service.GetTodayResultSummary(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", summary)
}

// GET /quizzes/skips/today
func (ctl *QuizController) GetTodaySkipStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	status, err := ctl.Service.GetTodaySkipStatus(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", status)
}

// DELETE /quizzes/:id
func (ctl *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	if err := ctl.Service.DeleteQuiz(userID, uint(quizID)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Quiz deleted", nil)
}

// DELETE /quizzes/today
func (ctl *QuizController) DeleteTodayQuizzes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	count, err := ctl.Service.DeleteTodayQuizzes(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Today's quizzes deleted", fiber.Map{"deleted": count})
}
