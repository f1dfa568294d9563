package controller

import (
	"github.com/gofiber/fiber/v2"

	"thinkeep_backend/internals/features/users/auth/dto"
	"thinkeep_backend/internals/features/users/auth/service"
	helper "thinkeep_backend/internals/helpers"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// POST /auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	res, err := ctl.Service.Login(&req, c.Get("User-Agent"), c.IP())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Login successful", res)
}

// POST /auth/login/google
func (ctl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	res, err := ctl.Service.GoogleLogin(&req, c.Get("User-Agent"), c.IP())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Login successful", res)
}

// POST /auth/refresh-token
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	res, err := ctl.Service.Refresh(&req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Token refreshed", res)
}

// POST /auth/logout
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	accessToken, _ := c.Locals("raw_token").(string)

	var req dto.RefreshRequest
	_ = c.BodyParser(&req) // refresh token in body is optional on logout

	if err := ctl.Service.Logout(userID, accessToken, req.RefreshToken); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Logout successful", nil)
}
