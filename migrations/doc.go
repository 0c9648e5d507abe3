// Package migrations holds the schema migrations for the booking tables.
// Importing it registers them with the migration package.
//
// Every migration creates its tables from record types declared in its own
// file. Those types are frozen at the version that introduced them; later
// schema changes get a new migration rather than an edit to a model here.
package migrations
