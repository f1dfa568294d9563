package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"thinkeep_backend/internals/features/users/user/dto"
	"thinkeep_backend/internals/features/users/user/service"
	helper "thinkeep_backend/internals/helpers"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// POST /users
func (ctl *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	user, err := ctl.Service.CreateUser(&req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "User created", user)
}

// GET /users/me
func (ctl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := ctl.Service.GetUser(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", user)
}

// GET /users/:id
func (ctl *UserController) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	user, err := ctl.Service.GetUser(uint(id))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", user)
}

// GET /users/nickname/:nickname
func (ctl *UserController) GetUserByNickname(c *fiber.Ctx) error {
	nickname := c.Params("nickname")
	if nickname == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nickname is required")
	}
	user, err := ctl.Service.GetUserByNickname(nickname)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", user)
}

// GET /users
func (ctl *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := ctl.Service.ListUsers()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "OK", users)
}

// PUT /users/me
func (ctl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	user, err := ctl.Service.UpdateUser(userID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "User updated", user)
}

// DELETE /users/me
func (ctl *UserController) DeleteMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if err := ctl.Service.DeleteUser(userID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "User deleted", nil)
}

// GET /users/me/streak
func (ctl *UserController) GetMyStreak(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	streak, err := ctl.Service.GetStreak(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", streak)
}
