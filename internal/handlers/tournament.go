package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/middleware"
	"cashpoint/internal/services/tournament"
	"cashpoint/internal/utils/response"
	"cashpoint/internal/validation"
)

type TournamentHandler struct {
	tournaments tournament.Service
}

func NewTournamentHandler(tournaments tournament.Service) *TournamentHandler {
	return &TournamentHandler{tournaments: tournaments}
}

type joinTournamentRequest struct {
	PostID uint `json:"postId" validate:"required"`
}

type submitProofRequest struct {
	PostID        uint   `json:"postId" validate:"required"`
	Note          string `json:"note"`
	ScreenshotURL string `json:"screenshotUrl"`
}

type prizeAwardRequest struct {
	UserID uint    `json:"userId" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type distributePrizesRequest struct {
	PostID  uint                `json:"postId" validate:"required"`
	Winners []prizeAwardRequest `json:"winners" validate:"required,min=1,dive"`
}

type createPostRequest struct {
	Title      string  `json:"title" validate:"required"`
	EntryFee   float64 `json:"entryFee" validate:"required,gt=0"`
	MaxPlayers int     `json:"maxPlayers" validate:"gte=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=draft active"`
}

func (h *TournamentHandler) ListActive(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	posts, err := h.tournaments.ListActivePosts(c.Context(), limit, offset)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "tournaments retrieved", posts)
}

func (h *TournamentHandler) Join(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req joinTournamentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	participant, err := h.tournaments.Join(c.Context(), claims.UserID, req.PostID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "tournament joined", participant)
}

func (h *TournamentHandler) SubmitProof(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req submitProofRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	err := h.tournaments.SubmitProof(c.Context(), claims.UserID, req.PostID, tournament.ProofInput{
		Note:          req.Note,
		ScreenshotURL: req.ScreenshotURL,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "proof submitted", nil)
}

func (h *TournamentHandler) DistributePrizes(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req distributePrizesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	winners := make([]tournament.PrizeAward, 0, len(req.Winners))
	for _, w := range req.Winners {
		winners = append(winners, tournament.PrizeAward{AccountID: w.UserID, Amount: w.Amount})
	}

	paid, err := h.tournaments.DistributePrizes(c.Context(), claims.UserID, req.PostID, winners)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "prizes distributed", fiber.Map{"paidCount": paid})
}

func (h *TournamentHandler) GetTotals(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	totals, err := h.tournaments.GetTotals(c.Context(), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "totals retrieved", totals)
}

func (h *TournamentHandler) CreatePost(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	post, err := h.tournaments.CreatePost(c.Context(), claims.UserID, tournament.CreatePostInput{
		Title:      req.Title,
		EntryFee:   req.EntryFee,
		MaxPlayers: req.MaxPlayers,
		Status:     req.Status,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "tournament created", post)
}
