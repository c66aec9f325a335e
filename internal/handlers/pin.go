package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/middleware"
	"cashpoint/internal/services/pin"
	"cashpoint/internal/utils/response"
	"cashpoint/internal/validation"
)

type PinHandler struct {
	pins pin.Service
}

func NewPinHandler(pins pin.Service) *PinHandler {
	return &PinHandler{pins: pins}
}

type setupPinRequest struct {
	NewPin string `json:"newPin" validate:"required,pin"`
}

type changePinRequest struct {
	OldPin string `json:"oldPin" validate:"required,pin"`
	NewPin string `json:"newPin" validate:"required,pin"`
}

type resetPinRequest struct {
	NewPin string `json:"newPin" validate:"required,pin"`
}

func (h *PinHandler) Setup(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req setupPinRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, "PIN must be exactly 4 digits")
	}
	if err := h.pins.Setup(c.Context(), claims.UserID, req.NewPin); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "PIN configured", nil)
}

func (h *PinHandler) Change(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req changePinRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, "PIN must be exactly 4 digits")
	}
	if err := h.pins.Change(c.Context(), claims.UserID, req.OldPin, req.NewPin); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "PIN changed", nil)
}

// Reset requires a recent interactive login; the service checks the
// token's auth time against its freshness window.
func (h *PinHandler) Reset(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req resetPinRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, "PIN must be exactly 4 digits")
	}
	authenticatedAt := time.Unix(claims.AuthTime, 0)
	if err := h.pins.Reset(c.Context(), claims.UserID, req.NewPin, authenticatedAt); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "PIN reset", nil)
}
