package appointment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teleconsult/teleconsult/internal/platform/chatkit"
	"github.com/teleconsult/teleconsult/internal/platform/notification"
)

// Notifier announces appointment changes to affected users.
type Notifier interface {
	AppointmentUpdated(ctx context.Context, change notification.AppointmentChange)
}

// notifyTimeout bounds the asynchronous notification fan-out after an update
// response has been sent.
const notifyTimeout = 30 * time.Second

type Handler struct {
	svc      *Service
	notifier Notifier
}

func NewHandler(svc *Service, notifier Notifier) *Handler {
	return &Handler{svc: svc, notifier: notifier}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments/:id", h.GetAppointment)
	api.PATCH("/appointments/:id", h.UpdateAppointment)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	appt, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return upstreamError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.svc.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidProvider) {
			return echo.NewHTTPError(http.StatusBadRequest, "body/provider_id Invalid property")
		}
		return upstreamError(err)
	}

	h.scheduleNotify(c, result)
	return c.JSON(http.StatusOK, result.Appointment)
}

// scheduleNotify fans the change notification out after the response is
// written, as the authenticated user.
func (h *Handler) scheduleNotify(c echo.Context, result *UpdateResult) {
	if h.notifier == nil {
		return
	}
	session, ok := chatkit.SessionFromContext(c.Request().Context())
	if !ok {
		return
	}
	appt := result.Appointment
	change := notification.AppointmentChange{
		AppointmentID:  appt.ID,
		PrevProviderID: result.PrevProviderID,
		NewProviderID:  appt.ProviderID,
		ClientID:       appt.ClientID,
		ActorID:        session.UserID,
		Token:          session.Token,
	}
	c.Response().After(func() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			h.notifier.AppointmentUpdated(ctx, change)
		}()
	})
}

// upstreamError translates provider API failures into HTTP errors, keeping
// the provider's status code where one exists.
func upstreamError(err error) error {
	var apiErr *chatkit.APIError
	if errors.As(err, &apiErr) {
		return echo.NewHTTPError(apiErr.StatusCode, apiErr.Message)
	}
	return echo.NewHTTPError(http.StatusBadGateway, err.Error())
}
