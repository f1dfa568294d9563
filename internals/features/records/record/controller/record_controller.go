package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"thinkeep_backend/internals/features/records/record/dto"
	"thinkeep_backend/internals/features/records/record/service"
	helper "thinkeep_backend/internals/helpers"
)

type RecordController struct {
	Service *service.RecordService
}

func NewRecordController(svc *service.RecordService) *RecordController {
	return &RecordController{Service: svc}
}

// POST /records
func (ctl *RecordController) CreateTodayRecord(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.RecordCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	res, err := ctl.Service.CreateTodayRecord(userID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Record created", res)
}

// GET /records/today/status
func (ctl *RecordController) GetTodayStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	status, err := ctl.Service.GetTodayStatus(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", status)
}

// GET /records?date=2026-08-30 or GET /records (full list)
func (ctl *RecordController) GetRecords(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date format, want YYYY-MM-DD")
		}
		rec, err := ctl.Service.GetRecordByDate(userID, date)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		return helper.JsonOK(c, "OK", rec)
	}

	records, err := ctl.Service.ListRecords(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "OK", records)
}

// PUT /records/:id
func (ctl *RecordController) UpdateRecord(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	recordID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid record id")
	}

	var req dto.RecordCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(c, &req); err != nil {
		return err
	}

	rec, err := ctl.Service.UpdateRecord(userID, uint(recordID), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Record updated", rec)
}

// DELETE /records/:id
func (ctl *RecordController) DeleteRecord(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	recordID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid record id")
	}
	if err := ctl.Service.DeleteRecord(userID, uint(recordID)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Record deleted", nil)
}

// GET /records/emotions?year=2026&month=8
func (ctl *RecordController) GetMonthlyEmotions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid month")
	}

	res, err := ctl.Service.GetMonthlyEmotions(userID, year, month)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", res)
}
