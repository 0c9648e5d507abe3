package store

import (
	"time"

	"gorm.io/gorm"
)

// Scope narrows a booking query. Apply with db.Scopes or Bookings.List.
type Scope = func(*gorm.DB) *gorm.DB

func notCancelled(db *gorm.DB) *gorm.DB {
	return db.Where("canceled_at IS NULL")
}

func OfBookable(bookableID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("bookable_id = ?", bookableID)
	}
}

func OfCustomer(customerType string, customerID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("customer_type = ? AND customer_id = ?", customerType, customerID)
	}
}

// OfAgent selects bookings placed by an agent. Agents are stored as the
// booking customer, so only the customer id is matched.
func OfAgent(agentID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("customer_id = ?", agentID)
	}
}

// Past selects uncancelled bookings that ended before now.
func Past(now time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("ends_at IS NOT NULL AND ends_at < ?", now)
	}
}

// Future selects uncancelled bookings that start after now.
func Future(now time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("starts_at > ?", now)
	}
}

// Current selects uncancelled bookings in progress at now.
func Current(now time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).
			Where("starts_at <= ?", now).
			Where("ends_at IS NOT NULL AND ends_at >= ?", now)
	}
}

func Cancelled() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("canceled_at IS NOT NULL")
	}
}

func StartsBefore(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("starts_at < ?", t)
	}
}

func StartsAfter(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("starts_at > ?", t)
	}
}

func StartsBetween(from, to time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("starts_at >= ? AND starts_at <= ?", from, to)
	}
}

func EndsBefore(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("ends_at < ?", t)
	}
}

func EndsAfter(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("ends_at > ?", t)
	}
}

func EndsBetween(from, to time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("ends_at >= ? AND ends_at <= ?", from, to)
	}
}

func CancelledBefore(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("canceled_at IS NOT NULL AND canceled_at < ?", t)
	}
}

func CancelledAfter(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("canceled_at IS NOT NULL AND canceled_at > ?", t)
	}
}

func CancelledBetween(from, to time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("canceled_at IS NOT NULL AND canceled_at >= ? AND canceled_at <= ?", from, to)
	}
}

// Range selects uncancelled bookings lying entirely inside [from, to].
func Range(from, to time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return notCancelled(db).Where("starts_at >= ? AND ends_at <= ?", from, to)
	}
}

// ByState maps a state name to its scope. Unknown names report false.
func ByState(state string, now time.Time) (Scope, bool) {
	switch state {
	case "past":
		return Past(now), true
	case "future":
		return Future(now), true
	case "current":
		return Current(now), true
	case "cancelled", "canceled":
		return Cancelled(), true
	default:
		return nil, false
	}
}

func OfTicketable(ticketableID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("ticketable_id = ?", ticketableID)
	}
}

func OfTicket(ticketID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("ticket_id = ?", ticketID)
	}
}

// Public and Private filter ticketables by visibility.
func Public() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_public = ?", true)
	}
}

func Private() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_public = ?", false)
	}
}
