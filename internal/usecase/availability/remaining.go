package availability

import (
	"context"
	"log"

	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
)

// SlotAvailability é a visão em tempo real de um slot: capacidade
// publicada combinada com os agendamentos ativos.
type SlotAvailability struct {
	Time          string `json:"time"`
	TotalCapacity int    `json:"total_capacity"`
	BookedCount   int    `json:"booked_count"`
	Remaining     int    `json:"remaining"`
}

type RemainingCapacity struct {
	repo domain.Repository
}

func NewRemainingCapacity(repo domain.Repository) *RemainingCapacity {
	return &RemainingCapacity{repo: repo}
}

// Execute mescla slots publicados com a contagem de agendamentos
// PENDING/CONFIRMED por horário. É um retrato para leitura; a checagem que
// vale para reservar acontece dentro da seção crítica do Book.
func (uc *RemainingCapacity) Execute(
	ctx context.Context,
	bloodBankID uint,
	date string,
) ([]SlotAvailability, error) {

	slots, err := uc.repo.ListSlotsForDate(ctx, bloodBankID, date)
	if err != nil {
		return nil, err
	}

	counts, err := uc.repo.ActiveCountsByTime(ctx, bloodBankID, date)
	if err != nil {
		return nil, err
	}

	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		booked := int(counts[slot.Time])
		remaining := slot.TotalCapacity - booked

		if remaining < 0 {
			// capacidade estourada indica bug de sincronização; nunca
			// devolvemos valor negativo ao chamador
			log.Printf("inconsistent capacity: bank=%d %s %s booked=%d total=%d",
				bloodBankID, date, slot.Time, booked, slot.TotalCapacity)
			remaining = 0
		}

		out = append(out, SlotAvailability{
			Time:          slot.Time,
			TotalCapacity: slot.TotalCapacity,
			BookedCount:   booked,
			Remaining:     remaining,
		})
	}

	return out, nil
}
