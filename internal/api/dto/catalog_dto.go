package dto

import (
	"time"

	"github.com/spec-kit/garage-service/internal/domain"
)

// OfferingRequest payload for catalog create/update.
type OfferingRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
}

// OfferingResponse is the public view of a catalog entry.
type OfferingResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewOfferingResponse maps a domain offering.
func NewOfferingResponse(o *domain.ServiceOffering) OfferingResponse {
	return OfferingResponse{
		ID:              o.ID,
		Name:            o.Name,
		Slug:            o.Slug,
		Description:     o.Description,
		PriceCents:      o.PriceCents,
		DurationMinutes: o.DurationMinutes,
		Active:          o.Active,
		UpdatedAt:       o.UpdatedAt,
	}
}

// NewOfferingListResponse maps a slice of offerings.
func NewOfferingListResponse(offerings []domain.ServiceOffering) []OfferingResponse {
	out := make([]OfferingResponse, 0, len(offerings))
	for i := range offerings {
		out = append(out, NewOfferingResponse(&offerings[i]))
	}
	return out
}
