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

// Ator do cancelamento: o doador dono do agendamento ou o banco de
// sangue dono do slot.
type CancelInput struct {
	BookingID string
	Reason    string

	ActorUserID      uint
	ActorBloodBankID uint // 0 quando o ator é doador
}

type Cancel struct {
	repo   domain.Repository
	locks  *slotlock.Manager
	events *events.Dispatcher
	audit  *audit.Dispatcher
}

func NewCancel(
	repo domain.Repository,
	locks *slotlock.Manager,
	eventsDisp *events.Dispatcher,
	auditDisp *audit.Dispatcher,
) *Cancel {
	return &Cancel{
		repo:   repo,
		locks:  locks,
		events: eventsDisp,
		audit:  auditDisp,
	}
}

// Execute transita para CANCELLED e libera a vaga imediatamente: o
// agendamento deixa de contar como ativo na contagem de capacidade.
func (uc *Cancel) Execute(
	ctx context.Context,
	in CancelInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ownerDonor := in.ActorBloodBankID == 0 && b.UserID == in.ActorUserID
	ownerBank := in.ActorBloodBankID != 0 && b.BloodBankID == in.ActorBloodBankID
	if !ownerDonor && !ownerBank {
		return nil, domain.ErrForbidden
	}

	bank, err := uc.repo.GetBloodBankByID(ctx, b.BloodBankID)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(slotlock.Key(b.BloodBankID, b.Date, b.Time))
	defer unlock()

	now := timezone.NowIn(bank.Timezone)
	if err := domain.Cancel(b, in.Reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:        events.BookingCancelled,
		BookingID:   b.ID,
		UserID:      b.UserID,
		BloodBankID: b.BloodBankID,
		Date:        b.Date,
		Time:        b.Time,
		Reason:      in.Reason,
	})

	uc.audit.Dispatch(audit.Event{
		BloodBankID: b.BloodBankID,
		UserID:      &in.ActorUserID,
		Action:      "booking_cancelled",
		Entity:      "booking",
		EntityID:    b.ID,
		Metadata:    map[string]any{"reason": in.Reason},
	})

	return b, nil
}
