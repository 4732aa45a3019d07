package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/slotlock"
)

// seedBooking cria um agendamento PENDING direto no repositório fake.
func seedBooking(t *testing.T, repo *fakeRepo, uc *Book, userID uint) string {
	t.Helper()

	b, err := uc.Execute(context.Background(), bookInput(userID, ""))
	require.NoError(t, err)
	return b.ID
}

func newTransitionDeps(t *testing.T) (*fakeRepo, *Book, *slotlock.Manager) {
	t.Helper()

	repo := newFakeRepo()
	repo.addBank(1)
	repo.addSlot(1, futureDate, slotTime, 10)

	locks := slotlock.NewManager()
	book := NewBook(repo, locks, newBookEvaluator(), newTestEvents(), newTestAudit(t))
	return repo, book, locks
}

func TestConfirm_HappyPath(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	uc := NewConfirm(repo, locks, newTestEvents(), newTestAudit(t))

	b, err := uc.Execute(context.Background(), id, 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.NotNil(t, b.ConfirmedAt)

	// confirmar de novo é transição inválida
	_, err = uc.Execute(context.Background(), id, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConfirm_WrongBank(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	uc := NewConfirm(repo, locks, newTestEvents(), newTestAudit(t))

	_, err := uc.Execute(context.Background(), id, 99)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConfirm_NotFound(t *testing.T) {
	repo, _, locks := newTransitionDeps(t)

	uc := NewConfirm(repo, locks, newTestEvents(), newTestAudit(t))

	_, err := uc.Execute(context.Background(), "missing-id", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_ByDonorOwner(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	uc := NewCancel(repo, locks, newTestEvents(), newTestAudit(t))

	b, err := uc.Execute(context.Background(), CancelInput{
		BookingID:   id,
		Reason:      "imprevisto",
		ActorUserID: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	assert.Equal(t, "imprevisto", b.CancellationReason)
	assert.NotNil(t, b.CancelledAt)
}

func TestCancel_FreesCapacity(t *testing.T) {
	repo := newFakeRepo()
	repo.addBank(1)
	repo.addSlot(1, futureDate, slotTime, 1)

	locks := slotlock.NewManager()
	book := NewBook(repo, locks, newBookEvaluator(), newTestEvents(), newTestAudit(t))
	cancel := NewCancel(repo, locks, newTestEvents(), newTestAudit(t))

	first, err := book.Execute(context.Background(), bookInput(10, ""))
	require.NoError(t, err)

	_, err = book.Execute(context.Background(), bookInput(20, ""))
	require.ErrorIs(t, err, domain.ErrSlotFull)

	_, err = cancel.Execute(context.Background(), CancelInput{
		BookingID:   first.ID,
		ActorUserID: 10,
	})
	require.NoError(t, err)

	// vaga liberada na hora
	_, err = book.Execute(context.Background(), bookInput(20, ""))
	assert.NoError(t, err)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	uc := NewCancel(repo, locks, newTestEvents(), newTestAudit(t))

	_, err := uc.Execute(context.Background(), CancelInput{
		BookingID:   id,
		ActorUserID: 77,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancel_ByOwnerBank(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	uc := NewCancel(repo, locks, newTestEvents(), newTestAudit(t))

	b, err := uc.Execute(context.Background(), CancelInput{
		BookingID:        id,
		Reason:           "manutencao",
		ActorUserID:      55,
		ActorBloodBankID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
}

func TestComplete_HappyPath(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	confirm := NewConfirm(repo, locks, newTestEvents(), newTestAudit(t))
	complete := NewComplete(repo, locks, newTestEvents(), newTestAudit(t))

	_, err := confirm.Execute(context.Background(), id, 1)
	require.NoError(t, err)

	b, err := complete.Execute(context.Background(), id, 1, "coleta ok")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), b.Status)
	assert.Equal(t, "coleta ok", b.Notes)
	assert.NotNil(t, b.CompletedAt)

	// terminal: cancelar depois de concluído não existe
	cancel := NewCancel(repo, locks, newTestEvents(), newTestAudit(t))
	_, err = cancel.Execute(context.Background(), CancelInput{BookingID: id, ActorUserID: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMarkNoShow_RequiresPastSlot(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	uc := NewMarkNoShow(repo, locks, newTestEvents(), newTestAudit(t))

	// slot ainda no futuro
	_, err := uc.Execute(context.Background(), id, 1)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.EqualError(t, err, "slot_not_in_the_past")
}

func TestMarkNoShow_PastSlot(t *testing.T) {
	repo, book, locks := newTransitionDeps(t)
	id := seedBooking(t, repo, book, 10)

	// empurra o agendamento para o passado direto no repositório
	stored, err := repo.GetBookingByID(context.Background(), id)
	require.NoError(t, err)
	stored.Date = "2020-01-01"
	require.NoError(t, repo.UpdateBooking(context.Background(), stored))

	uc := NewMarkNoShow(repo, locks, newTestEvents(), newTestAudit(t))

	b, err := uc.Execute(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), b.Status)
}
