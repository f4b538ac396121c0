package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	allowed := map[AppointmentStatus][]AppointmentStatus{
		AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
		AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
		AppointmentStatusCompleted: nil,
		AppointmentStatusCancelled: nil,
	}

	all := []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	}

	for from, targets := range allowed {
		permitted := map[AppointmentStatus]bool{}
		for _, to := range targets {
			permitted[to] = true
		}
		for _, to := range all {
			assert.Equal(t, permitted[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestErrInvalidTransitionMessage(t *testing.T) {
	err := ErrInvalidTransition{From: AppointmentStatusCompleted, To: AppointmentStatusPending}
	assert.Contains(t, err.Error(), "COMPLETED")
	assert.Contains(t, err.Error(), "PENDING")
}
