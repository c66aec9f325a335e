package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/middleware"
	"cashpoint/internal/services/payment"
	"cashpoint/internal/utils/response"
	"cashpoint/internal/validation"
)

type PaymentHandler struct {
	payments payment.Service
}

func NewPaymentHandler(payments payment.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type depositRequest struct {
	Amount               float64 `json:"amount" validate:"required,gt=0"`
	ExternalReferenceID  string  `json:"externalReferenceId" validate:"required"`
	Method               string  `json:"method" validate:"required"`
	SenderNumber         string  `json:"senderNumber" validate:"required"`
	RecipientAdminNumber string  `json:"recipientAdminNumber"`
}

type transferRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	RecipientNumber string  `json:"recipientNumber" validate:"required"`
	Method          string  `json:"method" validate:"required"`
	Pin             string  `json:"pin" validate:"required,pin"`
}

func (h *PaymentHandler) CreateDeposit(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	created, err := h.payments.CreateDepositRequest(c.Context(), claims.UserID, payment.DepositInput{
		Amount:               req.Amount,
		TxID:                 req.ExternalReferenceID,
		Method:               req.Method,
		SenderNumber:         req.SenderNumber,
		RecipientAdminNumber: req.RecipientAdminNumber,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "deposit request submitted", created)
}

func (h *PaymentHandler) CreateTransfer(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	created, err := h.payments.CreateTransferRequest(c.Context(), claims.UserID, payment.TransferInput{
		Amount:          req.Amount,
		RecipientNumber: req.RecipientNumber,
		Method:          req.Method,
		Pin:             req.Pin,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "transfer request submitted", created)
}

func (h *PaymentHandler) ListDeposits(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	deposits, err := h.payments.ListDeposits(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "deposit requests retrieved", deposits)
}

func (h *PaymentHandler) ListTransfers(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	transfers, err := h.payments.ListTransfers(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "transfer requests retrieved", transfers)
}
