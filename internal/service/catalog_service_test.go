package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/garage-service/internal/repository/memory"
)

func TestCatalogCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(memory.NewOfferingRepository(nil))

	t.Run("creates an active offering with a derived slug", func(t *testing.T) {
		offering, err := svc.Create(ctx, OfferingInput{
			Name:            "  Tire Rotation  ",
			Description:     "Rotate and rebalance all four tires.",
			PriceCents:      3999,
			DurationMinutes: 30,
		})
		require.NoError(t, err)
		assert.Equal(t, "Tire Rotation", offering.Name)
		assert.Equal(t, "tire-rotation", offering.Slug)
		assert.True(t, offering.Active)

		found, err := svc.GetBySlug(ctx, "tire-rotation")
		require.NoError(t, err)
		assert.Equal(t, offering.ID, found.ID)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := svc.Create(ctx, OfferingInput{Name: "", PriceCents: 100, DurationMinutes: 10})
		assert.Error(t, err)
		_, err = svc.Create(ctx, OfferingInput{Name: "x", PriceCents: 0, DurationMinutes: 10})
		assert.Error(t, err)
		_, err = svc.Create(ctx, OfferingInput{Name: "x", PriceCents: 100, DurationMinutes: 0})
		assert.Error(t, err)
	})
}

func TestCatalogDeactivate(t *testing.T) {
	ctx := context.Background()
	seed := memory.DefaultSeed()
	svc := NewCatalogService(memory.NewOfferingRepository(seed.Offerings))

	require.NoError(t, svc.Deactivate(ctx, seed.Offerings[0].ID))

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	for _, o := range public {
		assert.NotEqual(t, seed.Offerings[0].ID, o.ID)
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(seed.Offerings))
}
