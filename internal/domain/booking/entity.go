package booking

import (
	"time"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, reason string, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancellationReason = reason
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, notes string, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	if notes != "" {
		b.Notes = notes
	}
	b.CompletedAt = &now
	return nil
}

// MarkNoShow só vale depois do horário agendado ter passado.
func MarkNoShow(b *models.Booking, now time.Time) error {
	if err := CanMarkNoShow(Status(b.Status)); err != nil {
		return err
	}

	slotInstant, err := time.ParseInLocation(
		"2006-01-02 15:04",
		b.Date+" "+b.Time,
		now.Location(),
	)
	if err != nil {
		return ErrValidation("invalid_slot_datetime")
	}
	if !slotInstant.Before(now) {
		return ErrValidation("slot_not_in_the_past")
	}

	b.Status = string(StatusNoShow)
	return nil
}
