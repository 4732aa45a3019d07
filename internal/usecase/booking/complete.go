package booking

import (
	"context"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/audit"
	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/events"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/slotlock"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/timezone"
)

type Complete struct {
	repo   domain.Repository
	locks  *slotlock.Manager
	events *events.Dispatcher
	audit  *audit.Dispatcher
}

func NewComplete(
	repo domain.Repository,
	locks *slotlock.Manager,
	eventsDisp *events.Dispatcher,
	auditDisp *audit.Dispatcher,
) *Complete {
	return &Complete{
		repo:   repo,
		locks:  locks,
		events: eventsDisp,
		audit:  auditDisp,
	}
}

// Execute transita para COMPLETED. É este evento que alimenta o cálculo
// de elegibilidade das próximas doações.
func (uc *Complete) Execute(
	ctx context.Context,
	bookingID string,
	bloodBankID uint,
	notes string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if b.BloodBankID != bloodBankID {
		return nil, domain.ErrForbidden
	}

	bank, err := uc.repo.GetBloodBankByID(ctx, bloodBankID)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(slotlock.Key(b.BloodBankID, b.Date, b.Time))
	defer unlock()

	now := timezone.NowIn(bank.Timezone)
	if err := domain.Complete(b, notes, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:        events.BookingCompleted,
		BookingID:   b.ID,
		UserID:      b.UserID,
		BloodBankID: b.BloodBankID,
		Date:        b.Date,
		Time:        b.Time,
	})

	uc.audit.Dispatch(audit.Event{
		BloodBankID: bloodBankID,
		Action:      "booking_completed",
		Entity:      "booking",
		EntityID:    b.ID,
	})

	return b, nil
}
