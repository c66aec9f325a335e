package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/services/auth"
	"cashpoint/internal/utils/response"
	"cashpoint/internal/validation"
)

type AuthHandler struct {
	auth auth.Service
}

func NewAuthHandler(authSvc auth.Service) *AuthHandler {
	return &AuthHandler{auth: authSvc}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,min=6"`
	DOB      string `json:"dob"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	account, err := h.auth.Register(c.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		DOB:      req.DOB,
		Password: req.Password,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "account created", account)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.auth.Login(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "login successful", fiber.Map{
		"token":   result.Token,
		"account": result.Account,
	})
}
