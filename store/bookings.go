package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beesaferoot/gorm-bookings/models"
	"github.com/beesaferoot/gorm-bookings/pricing"
)

// Options configures a Bookings service.
type Options struct {
	Logger *zap.Logger
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
	// MaxUnits bounds the number of billing units a single range may span.
	MaxUnits int
	// Location is used for bookings without a timezone.
	Location *time.Location
}

// Bookings persists bookings and keeps their price, currency and formula
// in sync with the pricing engine.
type Bookings struct {
	db       *gorm.DB
	log      *zap.Logger
	now      func() time.Time
	maxUnits int
	loc      *time.Location
}

func NewBookings(db *gorm.DB, opts Options) *Bookings {
	b := &Bookings{
		db:       db,
		log:      opts.Logger,
		now:      opts.Now,
		maxUnits: opts.MaxUnits,
		loc:      opts.Location,
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.loc == nil {
		b.loc = time.UTC
	}
	return b
}

// Quote prices a prospective booking without persisting anything. An empty
// timezone evaluates the range in the service's default location.
func (s *Bookings) Quote(ctx context.Context, bookableID uint, startsAt time.Time, endsAt *time.Time, timezone string) (pricing.Quote, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return pricing.Quote{}, err
	}

	b, err := loadBookable(s.db.WithContext(ctx), bookableID, true)
	if err != nil {
		return pricing.Quote{}, err
	}

	start, end := rangeIn(startsAt, endsAt, loc)
	q, _, err := s.price(b, start, end)
	if err != nil {
		return pricing.Quote{}, err
	}

	s.log.Debug("quoted booking",
		zap.Uint("bookable_id", bookableID),
		zap.Int("units", q.Equation.TotalUnits),
		zap.Stringer("total", q.TotalPrice),
	)
	return q, nil
}

// Create stores a booking. A booking without a price is priced by the
// engine; an explicit price is kept.
func (s *Bookings) Create(ctx context.Context, booking *models.BookableBooking) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := loadBookable(tx, booking.BookableID, true)
		if err != nil {
			return err
		}
		if !b.IsActive {
			return ErrBookableInactive
		}
		if err := s.applyPrice(b, booking); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("booking created",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("bookable_id", booking.BookableID),
		zap.Stringer("price", booking.Price.Decimal),
		zap.String("currency", booking.Currency),
	)
	return nil
}

// Get loads a booking by id.
func (s *Bookings) Get(ctx context.Context, id uint) (*models.BookableBooking, error) {
	return loadBooking(s.db.WithContext(ctx), id)
}

// Reschedule moves a booking to a new range and re-prices it.
func (s *Bookings) Reschedule(ctx context.Context, id uint, startsAt time.Time, endsAt *time.Time) (*models.BookableBooking, error) {
	var booking *models.BookableBooking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = loadBooking(tx, id)
		if err != nil {
			return err
		}
		if booking.IsCancelled() {
			return ErrAlreadyCanceled
		}

		b, err := loadBookable(tx, booking.BookableID, true)
		if err != nil {
			return err
		}

		booking.StartsAt = startsAt
		booking.EndsAt = endsAt
		booking.Price = decimal.NullDecimal{}
		if err := s.applyPrice(b, booking); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(booking).Error; err != nil {
			return fmt.Errorf("failed to reschedule booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking rescheduled",
		zap.Uint("booking_id", booking.ID),
		zap.Time("starts_at", booking.StartsAt),
		zap.Stringer("price", booking.Price.Decimal),
	)
	return booking, nil
}

// Cancel marks a booking canceled at the current time.
func (s *Bookings) Cancel(ctx context.Context, id uint) (*models.BookableBooking, error) {
	var booking *models.BookableBooking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = loadBooking(tx, id)
		if err != nil {
			return err
		}
		if booking.IsCancelled() {
			return ErrAlreadyCanceled
		}

		b, err := loadBookable(tx, booking.BookableID, false)
		if err != nil {
			return err
		}
		if !b.IsCancelable {
			return ErrNotCancelable
		}

		now := s.now()
		booking.CanceledAt = &now
		if err := tx.Model(booking).Update("canceled_at", now).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking canceled", zap.Uint("booking_id", booking.ID))
	return booking, nil
}

// List returns bookings ordered by start, filtered by scopes.
func (s *Bookings) List(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]models.BookableBooking, error) {
	var out []models.BookableBooking
	err := s.db.WithContext(ctx).
		Scopes(scopes...).
		Order("starts_at").Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return out, nil
}

// Now exposes the service clock for callers building time-relative scopes.
func (s *Bookings) Now() time.Time {
	return s.now()
}

// applyPrice normalizes the range, enforces the unit policies and fills in
// price, currency and formula when the price is unset. Prices are stored
// rounded to models.PriceScale.
func (s *Bookings) applyPrice(b *models.Bookable, booking *models.BookableBooking) error {
	loc, err := booking.Location(s.loc)
	if err != nil {
		return fmt.Errorf("%w: timezone %v", models.ErrValidation, err)
	}
	start, end := rangeIn(booking.StartsAt, booking.EndsAt, loc)
	if booking.EndsAt == nil {
		stored := end.In(booking.StartsAt.Location())
		booking.EndsAt = &stored
	}

	q, units, err := s.price(b, start, end)
	if err != nil {
		return err
	}
	if b.MinimumUnits > 0 && units < b.MinimumUnits {
		return fmt.Errorf("%w: %d < %d", ErrBelowMinimumUnits, units, b.MinimumUnits)
	}
	if b.MaximumUnits > 0 && units > b.MaximumUnits {
		return fmt.Errorf("%w: %d > %d", ErrAboveMaximumUnits, units, b.MaximumUnits)
	}

	if booking.Price.Valid {
		booking.Price.Decimal = booking.Price.Decimal.Round(models.PriceScale)
		if booking.Currency == "" {
			booking.Currency = b.Currency
		}
		return nil
	}

	// The formula keeps the exact total; the price column holds it rounded
	// half away from zero to PriceScale places.
	booking.Price = decimal.NewNullDecimal(q.TotalPrice.Round(models.PriceScale))
	booking.Currency = q.Currency
	booking.Formula = &q.Equation
	return nil
}

// rangeIn converts a booking range into loc. A missing end becomes one
// calendar day after the start in loc, so a day spanning a DST change is
// 23 or 25 hours long for quotes and stored bookings alike.
func rangeIn(startsAt time.Time, endsAt *time.Time, loc *time.Location) (time.Time, time.Time) {
	start := startsAt.In(loc)
	if endsAt == nil {
		return start, start.AddDate(0, 0, 1)
	}
	return start, endsAt.In(loc)
}

// price runs the engine for a loaded bookable over a resolved range.
func (s *Bookings) price(b *models.Bookable, startsAt, endsAt time.Time) (pricing.Quote, int, error) {
	req, err := pricingRequest(b)
	if err != nil {
		return pricing.Quote{}, 0, err
	}
	req.StartsAt = startsAt
	req.EndsAt = &endsAt

	if s.maxUnits > 0 {
		seq, err := pricing.Iterate(req.StartsAt, req.EndsAt, req.Pricing.Unit)
		if err != nil {
			return pricing.Quote{}, 0, err
		}
		n := 0
		for range seq {
			n++
			if n > s.maxUnits {
				return pricing.Quote{}, 0, fmt.Errorf("%w (%d)", ErrRangeTooLong, s.maxUnits)
			}
		}
	}

	q, err := pricing.Calculate(req)
	if err != nil {
		return pricing.Quote{}, 0, err
	}
	return q, q.Equation.TotalUnits, nil
}

func (s *Bookings) location(timezone string) (*time.Location, error) {
	if timezone == "" {
		return s.loc, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %v", models.ErrValidation, err)
	}
	return loc, nil
}

func loadBooking(db *gorm.DB, id uint) (*models.BookableBooking, error) {
	var booking models.BookableBooking
	if err := db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	return &booking, nil
}
