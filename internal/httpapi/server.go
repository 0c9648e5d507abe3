// Package httpapi exposes quotes, bookables and bookings over HTTP.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/beesaferoot/gorm-bookings/models"
	"github.com/beesaferoot/gorm-bookings/pricing"
	"github.com/beesaferoot/gorm-bookings/store"
)

type Handler struct {
	resources *store.Resources
	bookings  *store.Bookings
	tickets   *store.Tickets
	log       *zap.Logger
}

func NewHandler(resources *store.Resources, bookings *store.Bookings, tickets *store.Tickets, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{resources: resources, bookings: bookings, tickets: tickets, log: log}
}

// NewServer builds the echo instance with all routes registered.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			h.log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	RegisterRoutes(e, h)
	return e
}

func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/healthz", Health)

	g := e.Group("/v1")

	g.POST("/bookables", h.CreateBookable)
	g.GET("/bookables/:id", h.GetBookable)
	g.POST("/bookables/:id/activate", h.ActivateBookable)
	g.POST("/bookables/:id/deactivate", h.DeactivateBookable)
	g.POST("/bookables/:id/rates", h.AddRate)
	g.POST("/bookables/:id/prices", h.AddPrice)
	g.POST("/bookables/:id/quote", h.Quote)
	g.GET("/bookables/:id/availabilities", h.ListAvailabilities)
	g.POST("/bookables/:id/availabilities", h.AddAvailability)
	g.DELETE("/bookables/:id/availabilities/:rule", h.RemoveAvailability)
	g.POST("/bookables/:id/addons", h.AddAddon)
	g.DELETE("/bookables/:id/addons/:addon", h.RemoveAddon)

	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PATCH("/bookings/:id", h.RescheduleBooking)
	g.POST("/bookings/:id/cancel", h.CancelBooking)

	g.POST("/ticketables", h.CreateTicketable)
	g.GET("/ticketables", h.ListTicketables)
	g.GET("/ticketables/:id", h.GetTicketable)
	g.DELETE("/ticketables/:id", h.DeleteTicketable)
	g.POST("/ticketables/:id/publish", h.PublishTicketable)
	g.POST("/ticketables/:id/unpublish", h.UnpublishTicketable)
	g.POST("/ticketables/:id/tickets", h.AddTicket)
	g.POST("/ticketables/:id/tickets/:ticket/activate", h.ActivateTicket)
	g.POST("/ticketables/:id/tickets/:ticket/deactivate", h.DeactivateTicket)
	g.POST("/ticketables/:id/bookings", h.BookTicket)
	g.GET("/ticketables/:id/bookings", h.ListTicketBookings)

	g.GET("/ticket-bookings/:id", h.GetTicketBooking)
	g.POST("/ticket-bookings/:id/approve", h.ApproveTicketBooking)
	g.POST("/ticket-bookings/:id/confirm", h.ConfirmTicketBooking)
	g.POST("/ticket-bookings/:id/attend", h.AttendTicketBooking)
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// errorResponse maps service errors onto HTTP statuses.
func (h *Handler) errorResponse(err error) error {
	var code int
	switch {
	case errors.Is(err, store.ErrBookableNotFound),
		errors.Is(err, store.ErrBookingNotFound),
		errors.Is(err, store.ErrAvailabilityNotFound),
		errors.Is(err, store.ErrAddonNotFound),
		errors.Is(err, store.ErrTicketableNotFound),
		errors.Is(err, store.ErrTicketNotFound),
		errors.Is(err, store.ErrTicketBookingNotFound):
		code = http.StatusNotFound
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, pricing.ErrUnsupportedUnit),
		errors.Is(err, pricing.ErrInvalidOperator),
		errors.Is(err, pricing.ErrInvalidWeekday),
		errors.Is(err, pricing.ErrInvalidTimeOfDay),
		errors.Is(err, pricing.ErrPercentageOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, store.ErrBookableInactive),
		errors.Is(err, store.ErrNotCancelable),
		errors.Is(err, store.ErrAlreadyCanceled),
		errors.Is(err, store.ErrTicketInactive):
		code = http.StatusConflict
	case errors.Is(err, store.ErrRangeTooLong),
		errors.Is(err, store.ErrBelowMinimumUnits),
		errors.Is(err, store.ErrAboveMaximumUnits):
		code = http.StatusUnprocessableEntity
	default:
		h.log.Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return echo.NewHTTPError(code, err.Error())
}

func parseID(c echo.Context) (uint, error) {
	return parseParam(c, "id")
}

func parseParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
