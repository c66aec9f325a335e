package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/middleware"
	"cashpoint/internal/services/wallet"
	"cashpoint/internal/utils/response"
	"cashpoint/internal/validation"
)

type WalletHandler struct {
	wallet wallet.Service
}

func NewWalletHandler(walletSvc wallet.Service) *WalletHandler {
	return &WalletHandler{wallet: walletSvc}
}

type sendMoneyRequest struct {
	RecipientID uint    `json:"recipientId" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Pin         string  `json:"pin" validate:"required,pin"`
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	snapshot, err := h.wallet.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "wallet retrieved", snapshot)
}

func (h *WalletHandler) SendMoney(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req sendMoneyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	receipt, err := h.wallet.SendMoney(c.Context(), claims.UserID, wallet.SendMoneyInput{
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		Pin:         req.Pin,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "money sent", receipt)
}
