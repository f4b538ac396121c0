package domain

import "time"

// ServiceOffering is a catalog entry for a garage service such as an
// oil change or brake inspection.
type ServiceOffering struct {
	ID              string
	Name            string
	Slug            string
	Description     string
	PriceCents      int64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
