package handlers

import (
	"Produce-Scan-Backend/domain"
	"Produce-Scan-Backend/internal/api/presenters"
	"Produce-Scan-Backend/pkg/scan"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScanHandler interface {
		StartSession(c *fiber.Ctx) error
		ScanSingle(c *fiber.Ctx) error
		ScanBatch(c *fiber.Ctx) error
		GetSessionResults(c *fiber.Ctx) error
		GetRecent(c *fiber.Ctx) error
		StorageTips(c *fiber.Ctx) error
		Health(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

func (h *scanHandler) StartSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	result := h.scanService.StartSession(c.Context(), &userID)
	if !result.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *scanHandler) ScanSingle(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.SingleScanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "image_data and session_id are required", nil)
	}

	result := h.scanService.ScanSingle(c.Context(), req.ImageData, req.SessionID, &userID)

	statusCode := fiber.StatusOK
	if !result.Success {
		statusCode = fiber.StatusBadRequest
	}
	return c.Status(statusCode).JSON(result)
}

func (h *scanHandler) ScanBatch(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.BatchScanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if req.SessionID == "" || req.Images == nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "images (array) and session_id are required", nil)
	}

	if len(req.Images) == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "images cannot be empty", nil)
	}

	result := h.scanService.ScanBatch(c.Context(), req.Images, req.SessionID, &userID)

	statusCode := fiber.StatusOK
	if !result.Success {
		statusCode = fiber.StatusBadRequest
	}
	return c.Status(statusCode).JSON(result)
}

func (h *scanHandler) GetSessionResults(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	sessionID := c.Params("session_id")
	refresh := c.Query("refresh") == "1"

	result := h.scanService.GetSessionResults(c.Context(), sessionID, &userID, refresh)

	statusCode := fiber.StatusOK
	if !result.Success {
		statusCode = fiber.StatusNotFound
		if result.Error == domain.ErrUnauthorizedSession.Error() {
			statusCode = fiber.StatusForbidden
		}
	}
	return c.Status(statusCode).JSON(result)
}

func (h *scanHandler) GetRecent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	result := h.scanService.GetRecent(c.Context(), &userID, limit)
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *scanHandler) StorageTips(c *fiber.Ctx) error {
	req := new(domain.StorageTipsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "produce_name is required", nil)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "produce_name is required", nil)
	}

	result := h.scanService.GetStorageTips(c.Context(), req.ProduceName)

	statusCode := fiber.StatusOK
	if !result.Success {
		statusCode = fiber.StatusBadRequest
	}
	return c.Status(statusCode).JSON(result)
}

func (h *scanHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"service": "Produce Scan API",
	})
}
