package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teleconsult/teleconsult/internal/platform/chatkit"
)

const defaultPageSize = 50

type Handler struct {
	history History
	urlFor  func(uid string) string
	flags   AssistFlags
}

// NewHandler builds the message history handler. urlFor resolves attachment
// uids to download URLs.
func NewHandler(history History, urlFor func(uid string) string, flags AssistFlags) *Handler {
	return &Handler{history: history, urlFor: urlFor, flags: flags}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dialogs/:dialogID/messages", h.ListMessages)
}

// ListMessages returns a dialog's history as day sections of render models.
func (h *Handler) ListMessages(c echo.Context) error {
	session, ok := chatkit.SessionFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user session required")
	}

	limit := defaultPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "query/limit Invalid property")
		}
		limit = n
	}
	skip := 0
	if raw := c.QueryParam("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "query/skip Invalid property")
		}
		skip = n
	}

	messages, err := h.history.Messages(c.Request().Context(), c.Param("dialogID"), limit, skip)
	if err != nil {
		var apiErr *chatkit.APIError
		if errors.As(err, &apiErr) {
			return echo.NewHTTPError(apiErr.StatusCode, apiErr.Message)
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	views := make([]View, 0, len(messages))
	for _, msg := range messages {
		views = append(views, BuildView(msg, session.UserID, h.flags, h.urlFor))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sections": GroupByDay(views),
	})
}
