package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"calq-destination-service/internal/metrics/core/domain"
	"calq-destination-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetMetricsUseCase interface {
	Execute(ctx context.Context, in usecase.GetMetricsInput) (*domain.AggregatedMetrics, error)
}

type MetricsHandler struct {
	uc GetMetricsUseCase
}

func NewMetricsHandler(uc GetMetricsUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// GetMetrics godoc
// @Summary Query delivery metrics
// @Description Returns delivery counts for one operation, optionally grouped by outcome or time bucket
// @Tags Metrics
// @Produce json
// @Param operation query string true "Operation: track | identify | alias | page | screen"
// @Param from query int true "From timestamp"
// @Param to query int true "To timestamp"
// @Param outcome query string false "Outcome: delivered | failed | skipped"
// @Param group_by query string false "Group by: outcome | time"
// @Param interval query string false "Interval: hour | day"
// @Success 200 {object} MetricsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /deliveries/metrics [get]
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	operation := c.Query("operation", "")
	if operation == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "operation is required",
		})
	}

	fromStr := c.Query("from", "")
	toStr := c.Query("to", "")
	if fromStr == "" || toStr == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "from and to are required",
		})
	}

	from, err := strconv.ParseInt(fromStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'from' parameter",
		})
	}
	to, err := strconv.ParseInt(toStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'to' parameter",
		})
	}

	var outcomePtr *string
	outcome := c.Query("outcome", "")
	if outcome != "" {
		outcomePtr = &outcome
	}

	in := usecase.GetMetricsInput{
		Operation: operation,
		From:      from,
		To:        to,
		Outcome:   outcomePtr,
		GroupBy:   c.Query("group_by", ""),
		Interval:  c.Query("interval", ""),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidMetricsQuery),
			errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidGroupBy),
			errors.Is(err, usecase.ErrInvalidInterval),
			errors.Is(err, usecase.ErrInvalidOutcome):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := MetricsResponse{
		Operation:    res.Operation,
		From:         res.From,
		To:           res.To,
		TotalCount:   res.TotalCount,
		UniqueActors: res.UniqueActors,
		GroupBy:      res.GroupBy,
		Groups:       make([]MetricsGroupResponse, 0, len(res.Groups)),
	}

	for _, g := range res.Groups {
		resp.Groups = append(resp.Groups, MetricsGroupResponse{
			Key:          g.Key,
			TotalCount:   g.TotalCount,
			UniqueActors: g.UniqueActors,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
