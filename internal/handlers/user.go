package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/middleware"
	"cashpoint/internal/services/user"
	"cashpoint/internal/utils/response"
	"cashpoint/internal/validation"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

type findRecipientRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	DOB    string `json:"dob"`
	Pin    string `json:"pin" validate:"required,pin"`
}

func (h *UserHandler) FindRecipient(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req findRecipientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	recipient, err := h.users.FindRecipient(c.Context(), claims.UserID, req.Identifier)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "recipient found", recipient)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	account, err := h.users.UpdateProfile(c.Context(), claims.UserID, user.UpdateProfileInput{
		Name:   req.Name,
		Mobile: req.Mobile,
		DOB:    req.DOB,
		Pin:    req.Pin,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "profile updated", account)
}
