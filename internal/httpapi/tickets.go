package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/beesaferoot/gorm-bookings/models"
	"github.com/beesaferoot/gorm-bookings/store"
)

type ticketableRequest struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Timezone    string    `json:"timezone"`
	Location    string    `json:"location"`
}

type ticketRequest struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Quantity    *int            `json:"quantity"`
	SortOrder   int             `json:"sort_order"`
}

type ticketBookingRequest struct {
	TicketID     uint            `json:"ticket_id"`
	CustomerType string          `json:"customer_type"`
	CustomerID   uint            `json:"customer_id"`
	Paid         decimal.Decimal `json:"paid"`
	Currency     string          `json:"currency"`
	Notes        string          `json:"notes"`
}

func (h *Handler) CreateTicketable(c echo.Context) error {
	var req ticketableRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	t := &models.Ticketable{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Timezone:    req.Timezone,
		Location:    req.Location,
	}
	if err := h.tickets.CreateTicketable(c.Request().Context(), t); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTicketables accepts visibility=public or visibility=private.
func (h *Handler) ListTicketables(c echo.Context) error {
	var scopes []store.Scope
	switch c.QueryParam("visibility") {
	case "":
	case "public":
		scopes = append(scopes, store.Public())
	case "private":
		scopes = append(scopes, store.Private())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visibility")
	}

	out, err := h.tickets.ListTicketables(c.Request().Context(), scopes...)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTicketable(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.tickets.GetTicketable(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTicketable(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.tickets.DeleteTicketable(c.Request().Context(), id); err != nil {
		return h.errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PublishTicketable(c echo.Context) error {
	return h.setPublic(c, true)
}

func (h *Handler) UnpublishTicketable(c echo.Context) error {
	return h.setPublic(c, false)
}

func (h *Handler) setPublic(c echo.Context, public bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.tickets.SetPublic(c.Request().Context(), id, public)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) AddTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req ticketRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ticket := &models.TicketableTicket{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
		Price:       req.Price,
		Currency:    req.Currency,
		Quantity:    req.Quantity,
		SortOrder:   req.SortOrder,
	}
	if err := h.tickets.AddTicket(c.Request().Context(), id, ticket); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (h *Handler) ActivateTicket(c echo.Context) error {
	return h.setTicketActive(c, true)
}

func (h *Handler) DeactivateTicket(c echo.Context) error {
	return h.setTicketActive(c, false)
}

func (h *Handler) setTicketActive(c echo.Context, active bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ticketID, err := parseParam(c, "ticket")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.SetTicketActive(c.Request().Context(), id, ticketID, active)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (h *Handler) BookTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req ticketBookingRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	booking := &models.TicketableBooking{
		TicketableID: id,
		TicketID:     req.TicketID,
		CustomerType: req.CustomerType,
		CustomerID:   req.CustomerID,
		Paid:         req.Paid,
		Currency:     req.Currency,
		Notes:        req.Notes,
	}
	if err := h.tickets.Book(c.Request().Context(), booking); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListTicketBookings filters by ticket_id and customer_type/customer_id.
func (h *Handler) ListTicketBookings(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	scopes := []store.Scope{store.OfTicketable(id)}

	if v := c.QueryParam("ticket_id"); v != "" {
		ticketID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket_id")
		}
		scopes = append(scopes, store.OfTicket(uint(ticketID)))
	}

	if v := c.QueryParam("customer_type"); v != "" {
		customerID, err := strconv.ParseUint(c.QueryParam("customer_id"), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		scopes = append(scopes, store.OfCustomer(v, uint(customerID)))
	}

	out, err := h.tickets.ListBookings(c.Request().Context(), scopes...)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTicketBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	booking, err := h.tickets.GetBooking(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) ApproveTicketBooking(c echo.Context) error {
	return h.updateTicketBooking(c, h.tickets.Approve)
}

func (h *Handler) ConfirmTicketBooking(c echo.Context) error {
	return h.updateTicketBooking(c, h.tickets.Confirm)
}

func (h *Handler) AttendTicketBooking(c echo.Context) error {
	return h.updateTicketBooking(c, h.tickets.MarkAttended)
}

func (h *Handler) updateTicketBooking(c echo.Context, update func(ctx context.Context, id uint) (*models.TicketableBooking, error)) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	booking, err := update(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}
