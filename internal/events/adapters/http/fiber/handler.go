package fiber

import (
	"context"
	"errors"
	"net/http"

	"calq-destination-service/internal/events/core/domain"
	"calq-destination-service/internal/events/core/ports"
	"calq-destination-service/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type DispatchUseCase interface {
	Dispatch(ctx context.Context, e *domain.Event) (*ports.Response, error)
}

type EventHandler struct {
	uc DispatchUseCase
}

func NewEventHandler(uc DispatchUseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

// Register mounts the event endpoints on r.
func (h *EventHandler) Register(r fiber.Router) {
	r.Post("/track", h.Track)
	r.Post("/identify", h.Identify)
	r.Post("/alias", h.Alias)
	r.Post("/page", h.Page)
	r.Post("/screen", h.Screen)
}

// Track godoc
// @Summary Track an action
// @Description Maps a track event and delivers it to Calq /track
// @Tags Events
// @Accept json
// @Produce json
// @Param request body EventRequest true "Track event"
// @Success 202 {object} DispatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/track [post]
func (h *EventHandler) Track(c *fiber.Ctx) error {
	return h.dispatch(c, domain.TypeTrack)
}

// Identify godoc
// @Summary Update a user profile
// @Description Maps allow-listed traits and delivers them to Calq /profile. Skipped when no trait is left.
// @Tags Events
// @Accept json
// @Produce json
// @Param request body EventRequest true "Identify event"
// @Success 202 {object} DispatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/identify [post]
func (h *EventHandler) Identify(c *fiber.Ctx) error {
	return h.dispatch(c, domain.TypeIdentify)
}

// Alias godoc
// @Summary Transfer an actor
// @Description Maps an alias event and delivers it to Calq /transfer
// @Tags Events
// @Accept json
// @Produce json
// @Param request body EventRequest true "Alias event"
// @Success 202 {object} DispatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/alias [post]
func (h *EventHandler) Alias(c *fiber.Ctx) error {
	return h.dispatch(c, domain.TypeAlias)
}

// Page godoc
// @Summary Track a page view
// @Description Delivered to Calq /track as a "Page View" action
// @Tags Events
// @Accept json
// @Produce json
// @Param request body EventRequest true "Page event"
// @Success 202 {object} DispatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/page [post]
func (h *EventHandler) Page(c *fiber.Ctx) error {
	return h.dispatch(c, domain.TypePage)
}

// Screen godoc
// @Summary Track a screen view
// @Description Delivered to Calq /track as a "Screen View" action
// @Tags Events
// @Accept json
// @Produce json
// @Param request body EventRequest true "Screen event"
// @Success 202 {object} DispatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/screen [post]
func (h *EventHandler) Screen(c *fiber.Ctx) error {
	return h.dispatch(c, domain.TypeScreen)
}

func (h *EventHandler) dispatch(c *fiber.Ctx, typ domain.EventType) error {
	var req EventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	resp, err := h.uc.Dispatch(c.UserContext(), req.toDomain(typ))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChannelNotSupported):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "channel_not_supported",
				Message: err.Error(),
			})
		case errors.Is(err, usecase.ErrInvalidEvent):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_event",
				Message: err.Error(),
			})
		case resp != nil:
			// Calq answered but refused the call.
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Error:             "destination_rejected",
				Message:           err.Error(),
				DestinationStatus: resp.StatusCode,
			})
		default:
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Error:   "destination_unreachable",
				Message: err.Error(),
			})
		}
	}

	if resp == nil {
		return c.Status(http.StatusAccepted).JSON(DispatchResponse{
			Status: "skipped",
		})
	}

	return c.Status(http.StatusAccepted).JSON(DispatchResponse{
		Status:            "delivered",
		DestinationStatus: resp.StatusCode,
	})
}
