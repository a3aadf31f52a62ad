package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bandscore/bandscore-api/internal/dto"
	"github.com/bandscore/bandscore-api/internal/service"
	"github.com/bandscore/bandscore-api/internal/utils"
)

// CreditsHandler manages the credit balance endpoints.
type CreditsHandler struct {
	service service.CreditsService
	logger  zerolog.Logger
}

// NewCreditsHandler builds a credits handler instance.
func NewCreditsHandler(service service.CreditsService, logger zerolog.Logger) *CreditsHandler {
	return &CreditsHandler{
		service: service,
		logger:  logger.With().Str("component", "credits_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. The grant route
// is expected to sit behind an admin guard.
func (h *CreditsHandler) Register(router fiber.Router, adminGuard fiber.Handler) {
	router.Get("", h.balance)
	router.Post("/grant", adminGuard, h.grant)
}

func (h *CreditsHandler) balance(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	balance, err := h.service.Balance(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "balance retrieved", balance)
}

func (h *CreditsHandler) grant(c *fiber.Ctx) error {
	var payload dto.GrantCreditsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	balance, err := h.service.Grant(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "credits granted", balance)
}

func (h *CreditsHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
