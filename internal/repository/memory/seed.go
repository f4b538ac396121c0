package memory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/garage-service/internal/domain"
)

// SeedData bundles the fixture records used when running without a
// database.
type SeedData struct {
	Users     []domain.User
	Offerings []domain.ServiceOffering
	Plans     []domain.SubscriptionPlan
}

// DemoPassword is the password shared by every seeded demo account.
const DemoPassword = "password"

// DefaultSeed returns the demo dataset. The hash is computed here
// rather than pasted as a literal so the seeded accounts always verify.
func DefaultSeed() SeedData {
	raw, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	demoHash := string(raw)
	now := time.Now()

	return SeedData{
		Users: []domain.User{
			{
				ID:           "7f1e9c1a-0b5d-4a6f-9a3e-1c2d3e4f5a6b",
				Name:         "Ava Admin",
				Email:        "admin@garage.test",
				PasswordHash: demoHash,
				Role:         domain.RoleAdmin,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			{
				ID:           "2b3c4d5e-6f7a-4b8c-9d0e-1f2a3b4c5d6e",
				Name:         "Sam Mechanic",
				Email:        "staff@garage.test",
				PasswordHash: demoHash,
				Role:         domain.RoleStaff,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			{
				ID:           "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d",
				Name:         "Casey Customer",
				Email:        "customer@garage.test",
				PasswordHash: demoHash,
				Role:         domain.RoleCustomer,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		Offerings: []domain.ServiceOffering{
			{
				ID:              "c1a2b3c4-d5e6-4f7a-8b9c-0d1e2f3a4b5c",
				Name:            "Oil Change",
				Slug:            "oil-change",
				Description:     "Full synthetic oil change with filter replacement.",
				PriceCents:      7999,
				DurationMinutes: 45,
				Active:          true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			{
				ID:              "d2b3c4d5-e6f7-4a8b-9c0d-1e2f3a4b5c6d",
				Name:            "Brake Inspection",
				Slug:            "brake-inspection",
				Description:     "Pad, rotor and fluid inspection with report.",
				PriceCents:      4999,
				DurationMinutes: 30,
				Active:          true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			{
				ID:              "e3c4d5e6-f7a8-4b9c-0d1e-2f3a4b5c6d7e",
				Name:            "Wheel Alignment",
				Slug:            "wheel-alignment",
				Description:     "Four-wheel computerized alignment.",
				PriceCents:      10999,
				DurationMinutes: 60,
				Active:          true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
		},
		Plans: []domain.SubscriptionPlan{
			{
				ID:         "f4d5e6f7-a8b9-4c0d-1e2f-3a4b5c6d7e8f",
				Name:       "Basic Care",
				PriceCents: 1999,
				Interval:   domain.BillingIntervalMonthly,
				Perks:      []string{"Two oil changes per year", "Priority booking"},
				Active:     true,
				CreatedAt:  now,
				UpdatedAt:  now,
			},
			{
				ID:         "a5e6f7a8-b9c0-4d1e-2f3a-4b5c6d7e8f9a",
				Name:       "Premium Care",
				PriceCents: 4999,
				Interval:   domain.BillingIntervalMonthly,
				Perks:      []string{"Unlimited inspections", "Free fluid top-ups", "Loaner vehicle"},
				Active:     true,
				CreatedAt:  now,
				UpdatedAt:  now,
			},
		},
	}
}
