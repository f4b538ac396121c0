package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/garage-service/internal/events"
	"github.com/spec-kit/garage-service/internal/repository/memory"
)

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the message and publishes a preview", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
		svc := NewContactService(memory.NewContactRepository(), dispatcher)

		var payloads []events.ContactMessageReceivedPayload
		dispatcher.Subscribe(events.EventContactMessageReceived, func(_ context.Context, e events.Event) error {
			payloads = append(payloads, e.Payload.(events.ContactMessageReceivedPayload))
			return nil
		})

		long := strings.Repeat("my brakes squeal ", 20)
		msg, err := svc.Submit(ctx, "Casey", "casey@garage.test", long)
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)

		require.Len(t, payloads, 1)
		assert.Equal(t, msg.ID, payloads[0].MessageID)
		assert.True(t, len(payloads[0].Preview) <= 83)

		stored, err := svc.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		svc := NewContactService(memory.NewContactRepository(), nil)

		_, err := svc.Submit(ctx, "", "a@b.c", "hello")
		assert.Error(t, err)
		_, err = svc.Submit(ctx, "Casey", "", "hello")
		assert.Error(t, err)
		_, err = svc.Submit(ctx, "Casey", "a@b.c", "   ")
		assert.Error(t, err)
	})
}
