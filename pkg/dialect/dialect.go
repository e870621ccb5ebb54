// Package dialect defines the database-dialect contract for dbt-academy.
//
// A dialect knows how to turn normalized connection details into a locator
// string and a driver DSN. Concrete dialects live in pkg/dialects/
// subdirectories and register themselves via init().
package dialect

import "fmt"

// Dialect is the per-database-system variant of connection-string formatting.
// The set of dialects is open; register new ones with Register.
type Dialect interface {
	// Name returns the dialect identifier, e.g. "singlestore".
	Name() string

	// DriverName returns the database/sql driver name to open connections with.
	DriverName() string

	// LocatorString builds the canonical connection locator of the form
	// <scheme>://<user>:<pass>@<host>:<port>/<database>.
	LocatorString(details map[string]string) string

	// DSN builds the driver-specific connection string for sql.Open.
	DSN(details map[string]string) string
}

// UnknownDialectError is returned when an unregistered dialect is requested.
type UnknownDialectError struct {
	Type      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q\nAvailable dialects: %v\nHint: check the type key of your target profile", e.Type, e.Available)
}
