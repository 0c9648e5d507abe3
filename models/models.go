// Package models holds the GORM records for bookable resources, their
// pricing and their bookings, and for ticketed events.
package models

// All returns the models in dependency order.
func All() []interface{} {
	return []interface{}{
		&Bookable{},
		&BookableRate{},
		&BookablePrice{},
		&BookableBooking{},
		&BookableAvailability{},
		&BookableAddon{},
		&Ticketable{},
		&TicketableTicket{},
		&TicketableBooking{},
	}
}
