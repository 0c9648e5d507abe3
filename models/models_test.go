package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

func validBookable() Bookable {
	return Bookable{
		Slug:         "room-101",
		Name:         "Room 101",
		IsActive:     true,
		BasePrice:    decimal.NewFromInt(20),
		Unit:         "hour",
		Currency:     "USD",
		IsCancelable: true,
	}
}

func TestBookable_Validate(t *testing.T) {
	b := validBookable()
	assert.NoError(t, b.Validate())

	tests := []struct {
		name   string
		mutate func(*Bookable)
	}{
		{"empty slug", func(b *Bookable) { b.Slug = "" }},
		{"slug with spaces", func(b *Bookable) { b.Slug = "room 101" }},
		{"empty name", func(b *Bookable) { b.Name = "" }},
		{"negative price", func(b *Bookable) { b.BasePrice = decimal.NewFromInt(-1) }},
		{"unknown unit", func(b *Bookable) { b.Unit = "week" }},
		{"short currency", func(b *Bookable) { b.Currency = "US" }},
		{"numeric currency", func(b *Bookable) { b.Currency = "840" }},
		{"oversized sort order", func(b *Bookable) { b.SortOrder = 100001 }},
		{"minimum above maximum", func(b *Bookable) { b.MinimumUnits, b.MaximumUnits = 5, 2 }},
		{"negative capacity", func(b *Bookable) { b.Capacity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBookable()
			tt.mutate(&b)
			assert.ErrorIs(t, b.Validate(), ErrValidation)
		})
	}
}

func TestBookable_Conversions(t *testing.T) {
	b := validBookable()
	b.Prices = []BookablePrice{
		{Weekday: "mon", StartsAt: "09:00:00", EndsAt: "17:00:00", Percentage: decimal.NewFromInt(-25)},
		{Weekday: "sat", StartsAt: "00:00", EndsAt: "24:00", Percentage: decimal.NewFromInt(10)},
	}
	b.Rates = []BookableRate{
		{Percentage: decimal.NewFromInt(-15), Operator: "^", Amount: 10},
	}

	cfg, err := b.PricingConfig()
	require.NoError(t, err)
	assert.Equal(t, pricing.UnitHour, cfg.Unit)
	assert.Equal(t, "USD", cfg.Currency)

	overrides, err := b.Overrides()
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, pricing.Monday, overrides[0].Weekday)
	assert.Equal(t, pricing.EndOfDay, overrides[1].EndsAt)

	rules := b.RateRules()
	require.Len(t, rules, 1)
	assert.Equal(t, pricing.OperatorCap, rules[0].Operator)
	assert.Equal(t, 10, rules[0].Amount)
}

func TestBookable_OverridesRejectsBadWindow(t *testing.T) {
	b := validBookable()
	b.Prices = []BookablePrice{{Weekday: "mon", StartsAt: "9am", EndsAt: "17:00", Percentage: decimal.Zero}}

	_, err := b.Overrides()
	assert.ErrorIs(t, err, pricing.ErrInvalidTimeOfDay)
}

func TestBookablePrice_Validate(t *testing.T) {
	p := BookablePrice{BookableID: 1, Weekday: "fri", StartsAt: "18:00", EndsAt: "23:59", Percentage: decimal.NewFromInt(50)}
	assert.NoError(t, p.Validate())

	p.Weekday = "friday"
	p.Percentage = decimal.NewFromInt(150)
	err := p.Validate()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "weekday")
	assert.Contains(t, err.Error(), "percentage")
}

func TestBookableRate_Validate(t *testing.T) {
	r := BookableRate{BookableID: 1, Percentage: decimal.NewFromInt(10), Operator: ">", Amount: 3}
	assert.NoError(t, r.Validate())

	r.Operator = "!"
	assert.ErrorIs(t, r.Validate(), ErrValidation)

	r.Operator = "="
	r.Amount = -1
	assert.ErrorIs(t, r.Validate(), ErrValidation)
}

func TestBookableBooking_State(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	end := now.Add(2 * time.Hour)

	current := BookableBooking{StartsAt: now.Add(-time.Hour), EndsAt: &end}
	assert.True(t, current.IsCurrent(now))
	assert.False(t, current.IsPast(now))
	assert.False(t, current.IsFuture(now))

	future := BookableBooking{StartsAt: now.Add(time.Hour)}
	assert.True(t, future.IsFuture(now))
	assert.Equal(t, now.Add(25*time.Hour), future.EffectiveEnd())

	past := BookableBooking{StartsAt: now.AddDate(0, 0, -3)}
	assert.True(t, past.IsPast(now))

	canceledAt := now.Add(-time.Minute)
	canceled := BookableBooking{StartsAt: now.Add(time.Hour), CanceledAt: &canceledAt}
	assert.True(t, canceled.IsCancelled())
	assert.False(t, canceled.IsFuture(now))
	assert.False(t, canceled.IsCurrent(now))
}

func TestBookableBooking_Validate(t *testing.T) {
	start := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	b := BookableBooking{
		BookableID:   1,
		CustomerType: "user",
		CustomerID:   7,
		StartsAt:     start,
		Currency:     "EUR",
	}
	assert.NoError(t, b.Validate())

	b.EndsAt = &before
	b.Timezone = "Mars/Olympus"
	err := b.Validate()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "ends_at")
	assert.Contains(t, err.Error(), "timezone")
}

func TestBookableBooking_Location(t *testing.T) {
	b := BookableBooking{}
	loc, err := b.Location(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	b.Timezone = "Europe/Berlin"
	loc, err = b.Location(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	b := validBookable()
	b.Slug = "room 101"
	b.Currency = ""

	err := b.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "slug must contain only letters, digits, dashes or underscores")
	assert.ErrorContains(t, err, "currency is required")
	assert.NotContains(t, err.Error(), "Slug")
}

func TestBookableAvailability_Validate(t *testing.T) {
	priority := 10
	a := BookableAvailability{BookableID: 1, Range: "time-fri", From: "09:00", To: "17:00", IsBookable: true, Priority: &priority}
	assert.NoError(t, a.Validate())

	a.Priority = nil
	assert.NoError(t, a.Validate())

	bad := a
	bad.Range = "fortnight"
	assert.ErrorContains(t, bad.Validate(), "range must be one of")

	bad = a
	bad.From = ""
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	negative := -1
	bad = a
	bad.Priority = &negative
	assert.ErrorIs(t, bad.Validate(), ErrValidation)
}

func TestBookableAddon_Validate(t *testing.T) {
	addon := BookableAddon{
		BookableID: 1, Slug: "catering", Name: "Catering",
		BaseCostModifier: ModifierAdd, UnitCostModifier: ModifierDivide,
	}
	assert.NoError(t, addon.Validate())

	addon.UnitCostModifier = "%"
	assert.ErrorContains(t, addon.Validate(), "unit_cost_modifier must be one of")

	addon.UnitCostModifier = ModifierMultiply
	addon.Slug = "cat/ering"
	assert.ErrorIs(t, addon.Validate(), ErrValidation)
}

func TestTicketable_Validate(t *testing.T) {
	start := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	event := Ticketable{Slug: "gala", Name: "Gala", StartsAt: start, EndsAt: start.Add(4 * time.Hour), Timezone: "Europe/Paris"}
	assert.NoError(t, event.Validate())

	bad := event
	bad.Timezone = "Mars/Olympus"
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = event
	bad.EndsAt = start.Add(-time.Hour)
	assert.ErrorContains(t, bad.Validate(), "ends_at is before starts_at")

	quantity := 100
	ticket := TicketableTicket{TicketableID: 1, Slug: "early", Name: "Early bird", Price: decimal.NewFromInt(15), Currency: "EUR", Quantity: &quantity}
	assert.NoError(t, ticket.Validate())
	ticket.Price = decimal.NewFromInt(-15)
	assert.ErrorContains(t, ticket.Validate(), "price must be at least 0")

	booking := TicketableBooking{TicketableID: 1, TicketID: 2, CustomerType: "user", CustomerID: 3, Currency: "EUR"}
	assert.NoError(t, booking.Validate())
	booking.TicketID = 0
	assert.ErrorContains(t, booking.Validate(), "ticket_id is required")
}

func TestBookableBooking_EffectiveEndAcrossDST(t *testing.T) {
	start := time.Date(2024, 3, 30, 11, 0, 0, 0, time.UTC)

	berlin := BookableBooking{StartsAt: start, Timezone: "Europe/Berlin"}
	assert.Equal(t, start.Add(23*time.Hour), berlin.EffectiveEnd())
	assert.Equal(t, time.UTC, berlin.EffectiveEnd().Location())

	utc := BookableBooking{StartsAt: start}
	assert.Equal(t, start.Add(24*time.Hour), utc.EffectiveEnd())
}
