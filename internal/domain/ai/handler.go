package ai

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teleconsult/teleconsult/internal/domain/chat"
	"github.com/teleconsult/teleconsult/internal/platform/chatkit"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the assistant endpoints. enableTranslate and
// enableQuickAnswer gate the features independently.
func (h *Handler) RegisterRoutes(api *echo.Group, enableTranslate, enableQuickAnswer bool) {
	if enableTranslate {
		api.POST("/ai/translate", h.Translate)
	}
	if enableQuickAnswer {
		api.POST("/ai/quick-answer", h.QuickAnswer)
	}
}

type translateRequest struct {
	DialogID  string `json:"dialog_id"`
	MessageID string `json:"message_id"`
	Language  string `json:"language"`
}

func (h *Handler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DialogID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "body/dialog_id Invalid property")
	}
	if req.MessageID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "body/message_id Invalid property")
	}
	if !chat.IsSupportedLanguage(req.Language) {
		return echo.NewHTTPError(http.StatusBadRequest, "body/language Invalid property")
	}

	translation, err := h.svc.Translate(c.Request().Context(), req.DialogID, req.MessageID, req.Language)
	if err != nil {
		return assistError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"translation": translation})
}

type quickAnswerRequest struct {
	DialogID  string `json:"dialog_id"`
	MessageID string `json:"message_id"`
}

func (h *Handler) QuickAnswer(c echo.Context) error {
	var req quickAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DialogID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "body/dialog_id Invalid property")
	}
	if req.MessageID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "body/message_id Invalid property")
	}

	answer, err := h.svc.QuickAnswer(c.Request().Context(), req.DialogID, req.MessageID)
	if err != nil {
		return assistError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

func assistError(err error) error {
	if errors.Is(err, ErrMessageNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Message not found")
	}
	var apiErr *chatkit.APIError
	if errors.As(err, &apiErr) {
		return echo.NewHTTPError(apiErr.StatusCode, apiErr.Message)
	}
	return echo.NewHTTPError(http.StatusBadGateway, err.Error())
}
