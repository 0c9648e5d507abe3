package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beesaferoot/gorm-bookings/models"
)

// Tickets manages ticketed events, their ticket types and ticket bookings.
// Ticket bookings carry the amount paid; they are not priced by the engine.
type Tickets struct {
	db       *gorm.DB
	log      *zap.Logger
	currency string
}

func NewTickets(db *gorm.DB, currency string, log *zap.Logger) *Tickets {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tickets{db: db, log: log, currency: currency}
}

func (s *Tickets) CreateTicketable(ctx context.Context, t *models.Ticketable) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create ticketable: %w", err)
	}
	return nil
}

// GetTicketable loads a ticketable with its tickets by sort order.
func (s *Tickets) GetTicketable(ctx context.Context, id uint) (*models.Ticketable, error) {
	return loadTicketable(s.db.WithContext(ctx), id, true)
}

// ListTicketables returns ticketables by start time, filtered by scopes.
func (s *Tickets) ListTicketables(ctx context.Context, scopes ...Scope) ([]models.Ticketable, error) {
	var out []models.Ticketable
	err := s.db.WithContext(ctx).
		Scopes(scopes...).
		Order("starts_at").Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticketables: %w", err)
	}
	return out, nil
}

func (s *Tickets) SetPublic(ctx context.Context, id uint, public bool) (*models.Ticketable, error) {
	db := s.db.WithContext(ctx)
	t, err := loadTicketable(db, id, false)
	if err != nil {
		return nil, err
	}
	t.IsPublic = public
	if err := db.Model(t).Update("is_public", public).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticketable: %w", err)
	}
	return t, nil
}

// DeleteTicketable soft-deletes a ticketable together with its tickets and
// bookings.
func (s *Tickets) DeleteTicketable(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Ticketable{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete ticketable: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTicketableNotFound
		}
		if err := tx.Where("ticketable_id = ?", id).Delete(&models.TicketableBooking{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket bookings: %w", err)
		}
		if err := tx.Where("ticketable_id = ?", id).Delete(&models.TicketableTicket{}).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}
		return nil
	})
}

// AddTicket adds a ticket type. An empty currency defaults to the service
// currency.
func (s *Tickets) AddTicket(ctx context.Context, ticketableID uint, ticket *models.TicketableTicket) error {
	db := s.db.WithContext(ctx)
	if _, err := loadTicketable(db, ticketableID, false); err != nil {
		return err
	}
	ticket.TicketableID = ticketableID
	if ticket.Currency == "" {
		ticket.Currency = s.currency
	}
	if err := db.Create(ticket).Error; err != nil {
		return fmt.Errorf("failed to add ticket: %w", err)
	}
	return nil
}

func (s *Tickets) SetTicketActive(ctx context.Context, ticketableID, ticketID uint, active bool) (*models.TicketableTicket, error) {
	db := s.db.WithContext(ctx)
	ticket, err := loadTicket(db, ticketableID, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.IsActive = active
	if err := db.Model(ticket).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return ticket, nil
}

// Book records a ticket purchase for a customer. The ticket has to be active
// and belong to the ticketable. An empty currency defaults to the ticket's.
func (s *Tickets) Book(ctx context.Context, booking *models.TicketableBooking) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := loadTicket(tx, booking.TicketableID, booking.TicketID)
		if err != nil {
			return err
		}
		if !ticket.IsActive {
			return ErrTicketInactive
		}
		if booking.Currency == "" {
			booking.Currency = ticket.Currency
		}

		if err := tx.Omit(clause.Associations).Create(booking).Error; err != nil {
			return fmt.Errorf("failed to book ticket: %w", err)
		}
		booking.Ticket = ticket
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("ticket booked",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("ticketable_id", booking.TicketableID),
		zap.Uint("ticket_id", booking.TicketID),
		zap.String("paid", booking.Paid.StringFixed(models.PriceScale)),
	)
	return nil
}

// NewBooking books ticketID for a customer who paid the given amount.
func (s *Tickets) NewBooking(ctx context.Context, ticketableID, ticketID uint, customerType string, customerID uint, paid decimal.Decimal, currency string) (*models.TicketableBooking, error) {
	booking := &models.TicketableBooking{
		TicketableID: ticketableID,
		TicketID:     ticketID,
		CustomerType: customerType,
		CustomerID:   customerID,
		Paid:         paid,
		Currency:     currency,
	}
	if err := s.Book(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Tickets) GetBooking(ctx context.Context, id uint) (*models.TicketableBooking, error) {
	return loadTicketBooking(s.db.WithContext(ctx).Preload("Ticket"), id)
}

func (s *Tickets) Approve(ctx context.Context, id uint) (*models.TicketableBooking, error) {
	return s.setFlag(ctx, id, "is_approved")
}

func (s *Tickets) Confirm(ctx context.Context, id uint) (*models.TicketableBooking, error) {
	return s.setFlag(ctx, id, "is_confirmed")
}

func (s *Tickets) MarkAttended(ctx context.Context, id uint) (*models.TicketableBooking, error) {
	return s.setFlag(ctx, id, "is_attended")
}

func (s *Tickets) setFlag(ctx context.Context, id uint, column string) (*models.TicketableBooking, error) {
	db := s.db.WithContext(ctx)
	booking, err := loadTicketBooking(db, id)
	if err != nil {
		return nil, err
	}
	switch column {
	case "is_approved":
		booking.IsApproved = true
	case "is_confirmed":
		booking.IsConfirmed = true
	case "is_attended":
		booking.IsAttended = true
	}
	if err := db.Model(booking).Update(column, true).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticket booking: %w", err)
	}
	return booking, nil
}

// ListBookings returns ticket bookings in id order, filtered by scopes such
// as OfTicketable, OfTicket and OfCustomer.
func (s *Tickets) ListBookings(ctx context.Context, scopes ...Scope) ([]models.TicketableBooking, error) {
	var out []models.TicketableBooking
	err := s.db.WithContext(ctx).
		Scopes(scopes...).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket bookings: %w", err)
	}
	return out, nil
}

func loadTicketable(db *gorm.DB, id uint, withTickets bool) (*models.Ticketable, error) {
	if withTickets {
		db = db.Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order").Order("id")
		})
	}

	var t models.Ticketable
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketableNotFound
		}
		return nil, fmt.Errorf("failed to load ticketable %d: %w", id, err)
	}
	return &t, nil
}

func loadTicket(db *gorm.DB, ticketableID, id uint) (*models.TicketableTicket, error) {
	var ticket models.TicketableTicket
	err := db.Where("ticketable_id = ?", ticketableID).First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to load ticket %d: %w", id, err)
	}
	return &ticket, nil
}

func loadTicketBooking(db *gorm.DB, id uint) (*models.TicketableBooking, error) {
	var booking models.TicketableBooking
	if err := db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketBookingNotFound
		}
		return nil, fmt.Errorf("failed to load ticket booking %d: %w", id, err)
	}
	return &booking, nil
}
