// Package sequence issues human-readable business identifiers like
// PAT000001 or INV000042. Each record category has its own counter;
// identifiers are never reused, even when records are deleted.
package sequence

import (
	"context"
	"fmt"
)

// Category names a record family that receives sequential identifiers.
type Category string

const (
	Patients      Category = "patients"
	Appointments  Category = "appointments"
	Encounters    Category = "encounters"
	Prescriptions Category = "prescriptions"
	Orders        Category = "orders"
	Reports       Category = "reports"
	Invoices      Category = "invoices"
)

// prefixes maps each category to its identifier prefix.
var prefixes = map[Category]string{
	Patients:      "PAT",
	Appointments:  "APT",
	Encounters:    "ENC",
	Prescriptions: "RX",
	Orders:        "ORD",
	Reports:       "RPT",
	Invoices:      "INV",
}

// Prefix returns the identifier prefix for the category, or an error for
// an unknown category.
func (c Category) Prefix() (string, error) {
	p, ok := prefixes[c]
	if !ok {
		return "", fmt.Errorf("unknown sequence category %q", c)
	}
	return p, nil
}

// Format renders a counter value as a business identifier, e.g.
// Format("PAT", 7) -> "PAT000007".
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s%06d", prefix, n)
}

// Issuer allocates the next identifier for a category. Implementations
// must be safe for concurrent use and must never hand out the same
// identifier twice.
type Issuer interface {
	Next(ctx context.Context, category Category) (string, error)
}
