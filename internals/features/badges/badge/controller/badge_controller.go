package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"thinkeep_backend/internals/features/badges/badge/dto"
	"thinkeep_backend/internals/features/badges/badge/service"
	helper "thinkeep_backend/internals/helpers"
)

type BadgeController struct {
	Service *service.BadgeService
}

func NewBadgeController(svc *service.BadgeService) *BadgeController {
	return &BadgeController{Service: svc}
}

// GET /badges
func (ctl *BadgeController) ListBadges(c *fiber.Ctx) error {
	badges, err := ctl.Service.ListBadges()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "OK", badges)
}

// GET /badges/:id
func (ctl *BadgeController) GetBadge(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid badge id")
	}
	badge, err := ctl.Service.GetBadge(uint(id))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", badge)
}

// POST /badges
func (ctl *BadgeController) CreateBadge(c *fiber.Ctx) error {
	var req dto.BadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}
	badge, err := ctl.Service.CreateBadge(&req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Badge created", badge)
}

// PUT /badges/:id
func (ctl *BadgeController) UpdateBadge(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid badge id")
	}
	var req dto.BadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}
	badge, err := ctl.Service.UpdateBadge(uint(id), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Badge updated", badge)
}

// DELETE /badges/:id
func (ctl *BadgeController) DeleteBadge(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid badge id")
	}
	if err := ctl.Service.DeleteBadge(uint(id)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Badge deleted", nil)
}

// POST /badges/:id/assign
func (ctl *BadgeController) AssignBadge(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid badge id")
	}
	var req dto.AssignBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}
	award, err := ctl.Service.AssignBadge(req.UserID, uint(id))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Badge assigned", award)
}

// GET /badges/me
func (ctl *BadgeController) GetMyBadges(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	awards, err := ctl.Service.GetUserBadges(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "OK", awards)
}
