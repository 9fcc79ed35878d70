package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cibf/call-postprocessor/internal/models"
	"github.com/cibf/call-postprocessor/internal/usecase"
)

type Controller interface {
	ProcessConversation(c echo.Context) error
	FormatBudget(c echo.Context) error
	GetUserHistory(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	processUsecase usecase.ProcessUsecase
}

func NewHandler(processUsecase usecase.ProcessUsecase) Controller {
	return &controller{
		processUsecase: processUsecase,
	}
}

func (h *controller) ProcessConversation(c echo.Context) error {
	var req models.ProcessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	result, err := h.processUsecase.ProcessConversation(ctx, req.Conversation)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":               "success",
		"message":              "Conversation processed successfully",
		"user":                 result.User,
		"analytics":            result.Analytics,
		"conversation_history": result.History,
	})
}

func (h *controller) FormatBudget(c echo.Context) error {
	var req models.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	formatted, err := h.processUsecase.FormatBudget(ctx, req.Budget)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"formatted": formatted,
	})
}

func (h *controller) GetUserHistory(c echo.Context) error {
	ctx := c.Request().Context()
	entries, err := h.processUsecase.GetUserHistory(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"history": entries,
	})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "call-postprocessor",
	})
}

// httpError maps pipeline errors onto HTTP status codes: bad input and
// missing identifiers are the caller's problem, everything else is ours.
func httpError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrExtractionFailed):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
