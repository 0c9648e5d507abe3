package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/beesaferoot/gorm-bookings/models"
)

type createBookableRequest struct {
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	IsActive     *bool           `json:"is_active"`
	IsCancelable *bool           `json:"is_cancelable"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Unit         string          `json:"unit"`
	Currency     string          `json:"currency"`
	MinimumUnits int             `json:"minimum_units"`
	MaximumUnits int             `json:"maximum_units"`
	Capacity     int             `json:"capacity"`
	SortOrder    int             `json:"sort_order"`
}

type rateRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
	Operator   string          `json:"operator"`
	Amount     int             `json:"amount"`
}

type priceRequest struct {
	Weekday    string          `json:"weekday"`
	StartsAt   string          `json:"starts_at"`
	EndsAt     string          `json:"ends_at"`
	Percentage decimal.Decimal `json:"percentage"`
}

type quoteRequest struct {
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Timezone string     `json:"timezone"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (h *Handler) CreateBookable(c echo.Context) error {
	var req createBookableRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	b := &models.Bookable{
		Slug:         req.Slug,
		Name:         req.Name,
		Description:  req.Description,
		IsActive:     boolOr(req.IsActive, true),
		IsCancelable: boolOr(req.IsCancelable, true),
		BasePrice:    req.BasePrice,
		Unit:         req.Unit,
		Currency:     req.Currency,
		MinimumUnits: req.MinimumUnits,
		MaximumUnits: req.MaximumUnits,
		Capacity:     req.Capacity,
		SortOrder:    req.SortOrder,
	}
	if err := h.resources.Create(c.Request().Context(), b); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBookable(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	b, err := h.resources.Get(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ActivateBookable(c echo.Context) error {
	return h.setActive(c, true)
}

func (h *Handler) DeactivateBookable(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *Handler) setActive(c echo.Context, active bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	b, err := h.resources.SetActive(c.Request().Context(), id, active)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) AddRate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	rate := &models.BookableRate{Percentage: req.Percentage, Operator: req.Operator, Amount: req.Amount}
	if err := h.resources.AddRate(c.Request().Context(), id, rate); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, rate)
}

func (h *Handler) AddPrice(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req priceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	price := &models.BookablePrice{
		Weekday:    req.Weekday,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Percentage: req.Percentage,
	}
	if err := h.resources.AddPrice(c.Request().Context(), id, price); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, price)
}

func (h *Handler) Quote(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.StartsAt.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "starts_at is required")
	}

	q, err := h.bookings.Quote(c.Request().Context(), id, req.StartsAt, req.EndsAt, req.Timezone)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, q)
}

type availabilityRequest struct {
	Range      string `json:"range"`
	From       string `json:"from"`
	To         string `json:"to"`
	IsBookable bool   `json:"is_bookable"`
	Priority   *int   `json:"priority"`
}

type addonRequest struct {
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	BaseCost         decimal.Decimal `json:"base_cost"`
	BaseCostModifier string          `json:"base_cost_modifier"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	UnitCostModifier string          `json:"unit_cost_modifier"`
}

func (h *Handler) ListAvailabilities(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	rules, err := h.resources.Availabilities(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, rules)
}

func (h *Handler) AddAvailability(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	rule := &models.BookableAvailability{
		Range:      req.Range,
		From:       req.From,
		To:         req.To,
		IsBookable: req.IsBookable,
		Priority:   req.Priority,
	}
	if err := h.resources.AddAvailability(c.Request().Context(), id, rule); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, rule)
}

func (h *Handler) RemoveAvailability(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ruleID, err := parseParam(c, "rule")
	if err != nil {
		return err
	}
	if err := h.resources.RemoveAvailability(c.Request().Context(), id, ruleID); err != nil {
		return h.errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddAddon(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req addonRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	addon := &models.BookableAddon{
		Slug:             req.Slug,
		Name:             req.Name,
		Description:      req.Description,
		BaseCost:         req.BaseCost,
		BaseCostModifier: req.BaseCostModifier,
		UnitCost:         req.UnitCost,
		UnitCostModifier: req.UnitCostModifier,
	}
	if err := h.resources.AddAddon(c.Request().Context(), id, addon); err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, addon)
}

func (h *Handler) RemoveAddon(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	addonID, err := parseParam(c, "addon")
	if err != nil {
		return err
	}
	if err := h.resources.RemoveAddon(c.Request().Context(), id, addonID); err != nil {
		return h.errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
