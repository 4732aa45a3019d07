package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

func TestStatus_Classification(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCompleted.IsActive())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())

	assert.True(t, IsValidStatus("no_show"))
	assert.False(t, IsValidStatus("scheduled"))
}

func TestConfirm_OnlyFromPending(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, Confirm(b, now))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)

	for _, status := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		b := &models.Booking{Status: string(status)}
		assert.ErrorIs(t, Confirm(b, now), ErrInvalidTransition, "from %s", status)
	}
}

func TestCancel_FromActiveOnly(t *testing.T) {
	now := time.Now()

	for _, status := range []Status{StatusPending, StatusConfirmed} {
		b := &models.Booking{Status: string(status)}
		require.NoError(t, Cancel(b, "imprevisto", now))
		assert.Equal(t, string(StatusCancelled), b.Status)
		assert.Equal(t, "imprevisto", b.CancellationReason)
		assert.NotNil(t, b.CancelledAt)
	}

	for _, status := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		b := &models.Booking{Status: string(status)}
		assert.ErrorIs(t, Cancel(b, "", now), ErrInvalidTransition, "from %s", status)
	}
}

func TestComplete_FromActiveOnly(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(b, "coleta sem intercorrências", now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	assert.Equal(t, "coleta sem intercorrências", b.Notes)
	assert.NotNil(t, b.CompletedAt)

	done := &models.Booking{Status: string(StatusCancelled)}
	assert.ErrorIs(t, Complete(done, "", now), ErrInvalidTransition)
}

func TestMarkNoShow(t *testing.T) {
	now, err := time.Parse("2006-01-02 15:04", "2026-09-10 12:00")
	require.NoError(t, err)

	past := &models.Booking{
		Status: string(StatusConfirmed),
		Date:   "2026-09-10",
		Time:   "09:00",
	}
	require.NoError(t, MarkNoShow(past, now))
	assert.Equal(t, string(StatusNoShow), past.Status)

	future := &models.Booking{
		Status: string(StatusConfirmed),
		Date:   "2026-09-10",
		Time:   "15:00",
	}
	err = MarkNoShow(future, now)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "slot_not_in_the_past")

	terminal := &models.Booking{
		Status: string(StatusCompleted),
		Date:   "2026-09-10",
		Time:   "09:00",
	}
	assert.ErrorIs(t, MarkNoShow(terminal, now), ErrInvalidTransition)
}
