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

type MarkNoShow struct {
	repo   domain.Repository
	locks  *slotlock.Manager
	events *events.Dispatcher
	audit  *audit.Dispatcher
}

func NewMarkNoShow(
	repo domain.Repository,
	locks *slotlock.Manager,
	eventsDisp *events.Dispatcher,
	auditDisp *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:   repo,
		locks:  locks,
		events: eventsDisp,
		audit:  auditDisp,
	}
}

// Execute marca NO_SHOW. Ação exclusiva do banco de sangue, só depois do
// horário agendado ter passado; não existe varredura automática.
func (uc *MarkNoShow) Execute(
	ctx context.Context,
	bookingID string,
	bloodBankID uint,
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
	if err := domain.MarkNoShow(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:        events.BookingNoShow,
		BookingID:   b.ID,
		UserID:      b.UserID,
		BloodBankID: b.BloodBankID,
		Date:        b.Date,
		Time:        b.Time,
	})

	uc.audit.Dispatch(audit.Event{
		BloodBankID: bloodBankID,
		Action:      "booking_no_show",
		Entity:      "booking",
		EntityID:    b.ID,
	})

	return b, nil
}
