package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/services/fee"
	"cashpoint/internal/utils/response"
	"cashpoint/internal/validation"
)

// FeeConfigHandler exposes the operator endpoints for charge rules and
// reserve pools. Routes are mounted behind the admin gate.
type FeeConfigHandler struct {
	config fee.ConfigService
}

func NewFeeConfigHandler(config fee.ConfigService) *FeeConfigHandler {
	return &FeeConfigHandler{config: config}
}

type setChargeRuleRequest struct {
	Operation  string  `json:"operation" validate:"required,oneof=send transfer"`
	Percentage float64 `json:"percentage" validate:"gte=0"`
	Fixed      float64 `json:"fixed" validate:"gte=0"`
}

type replenishReserveRequest struct {
	Method string  `json:"method" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *FeeConfigHandler) SetChargeRule(c *fiber.Ctx) error {
	var req setChargeRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	rule, err := h.config.SetChargeRule(c.Context(), req.Operation, req.Percentage, req.Fixed)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "charge rule saved", rule)
}

func (h *FeeConfigHandler) ReplenishReserve(c *fiber.Ctx) error {
	var req replenishReserveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.config.ReplenishReserve(c.Context(), req.Method, req.Amount); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "reserve replenished", nil)
}
