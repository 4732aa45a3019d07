package availability

import (
	"context"

	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
)

type ListDates struct {
	repo domain.Repository
}

func NewListDates(repo domain.Repository) *ListDates {
	return &ListDates{repo: repo}
}

// Execute devolve as datas (a partir de fromDate, inclusive) para as quais o
// hemocentro publicou slots, em ordem crescente.
func (uc *ListDates) Execute(ctx context.Context, bloodBankID uint, fromDate string) ([]string, error) {
	return uc.repo.ListDatesWithSlots(ctx, bloodBankID, fromDate)
}
