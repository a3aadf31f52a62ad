package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bandscore/bandscore-api/internal/dto"
	"github.com/bandscore/bandscore-api/internal/repository"
	"github.com/bandscore/bandscore-api/internal/service"
	"github.com/bandscore/bandscore-api/internal/utils"
	"github.com/bandscore/bandscore-api/pkg/ai"
)

// WritingHandler manages the essay evaluation endpoints.
type WritingHandler struct {
	service service.WritingService
	logger  zerolog.Logger
}

// NewWritingHandler builds a writing handler instance.
func NewWritingHandler(service service.WritingService, logger zerolog.Logger) *WritingHandler {
	return &WritingHandler{
		service: service,
		logger:  logger.With().Str("component", "writing_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *WritingHandler) Register(router fiber.Router, limiter fiber.Handler) {
	if limiter != nil {
		router.Post("/score", limiter, h.score)
	} else {
		router.Post("/score", h.score)
	}
	router.Get("/scores", h.listScores)
	router.Get("/scores/:id", h.getScore)
	router.Get("/combined-scores", h.listCombinedScores)
}

func (h *WritingHandler) score(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ScoreEssayRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Score(c.Context(), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "essay scored", response)
}

func (h *WritingHandler) listScores(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	scores, err := h.service.ListScores(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scores retrieved", scores)
}

func (h *WritingHandler) getScore(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	score, err := h.service.GetScore(c.Context(), userID, id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "score retrieved", score)
}

func (h *WritingHandler) listCombinedScores(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	combined, err := h.service.ListCombinedScores(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "combined scores retrieved", combined)
}

func (h *WritingHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInvalidScoreRequest):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, repository.ErrInsufficientCredits):
		return utils.SendError(c, fiber.StatusPaymentRequired, "insufficient credits")
	case errors.Is(err, repository.ErrUnknownUser):
		return utils.SendError(c, fiber.StatusNotFound, "credits account not found")
	case errors.Is(err, service.ErrScoreNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "score not found")
	case errors.Is(err, ai.ErrMalformedJudgeResponse):
		return utils.SendError(c, fiber.StatusBadGateway, "judge returned an unusable response")
	case errors.Is(err, ai.ErrJudgeUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "judge unavailable")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
