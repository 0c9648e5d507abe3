package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/beesaferoot/gorm-bookings/models"
	"github.com/beesaferoot/gorm-bookings/store"
)

type bookingRequest struct {
	BookableID   uint             `json:"bookable_id"`
	CustomerType string           `json:"customer_type"`
	CustomerID   uint             `json:"customer_id"`
	StartsAt     time.Time        `json:"starts_at"`
	EndsAt       *time.Time       `json:"ends_at"`
	Timezone     string           `json:"timezone"`
	Price        *decimal.Decimal `json:"price"`
	Options      models.Options   `json:"options"`
	Notes        string           `json:"notes"`
}

type rescheduleRequest struct {
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	booking := &models.BookableBooking{
		BookableID:   req.BookableID,
		CustomerType: req.CustomerType,
		CustomerID:   req.CustomerID,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Timezone:     req.Timezone,
		Options:      req.Options,
		Notes:        req.Notes,
	}
	if req.Price != nil {
		booking.Price = decimal.NewNullDecimal(*req.Price)
	}

	if err := h.bookings.Create(c.Request().Context(), booking); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Get(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}

// ListBookings filters by bookable_id, customer_type/customer_id, agent_id
// and state.
func (h *Handler) ListBookings(c echo.Context) error {
	var scopes []store.Scope

	if v := c.QueryParam("bookable_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid bookable_id")
		}
		scopes = append(scopes, store.OfBookable(uint(id)))
	}

	if v := c.QueryParam("customer_type"); v != "" {
		id, err := strconv.ParseUint(c.QueryParam("customer_id"), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		scopes = append(scopes, store.OfCustomer(v, uint(id)))
	}

	if v := c.QueryParam("agent_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid agent_id")
		}
		scopes = append(scopes, store.OfAgent(uint(id)))
	}

	if v := c.QueryParam("state"); v != "" {
		scope, ok := store.ByState(v, h.bookings.Now())
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid state")
		}
		scopes = append(scopes, scope)
	}

	bookings, err := h.bookings.List(c.Request().Context(), scopes...)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) RescheduleBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.StartsAt.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "starts_at is required")
	}

	booking, err := h.bookings.Reschedule(c.Request().Context(), id, req.StartsAt, req.EndsAt)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Cancel(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}
