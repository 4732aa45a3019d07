package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/audit"
	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/events"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

// fakeRepo guarda tudo em memória, protegido por um único mutex. Bom o
// bastante para exercitar os use cases sem banco.
type fakeRepo struct {
	mu sync.Mutex

	banks    map[uint]*models.BloodBank
	slots    map[string]*models.PublishedSlot
	bookings map[string]*models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		banks:    make(map[uint]*models.BloodBank),
		slots:    make(map[string]*models.PublishedSlot),
		bookings: make(map[string]*models.Booking),
	}
}

func slotKey(bankID uint, date, timeOfDay string) string {
	return fmt.Sprintf("%d|%s|%s", bankID, date, timeOfDay)
}

func (r *fakeRepo) addBank(id uint) {
	r.banks[id] = &models.BloodBank{ID: id, Name: "Hemocentro Teste", Timezone: "America/Sao_Paulo"}
}

func (r *fakeRepo) addSlot(bankID uint, date, timeOfDay string, capacity int) {
	r.slots[slotKey(bankID, date, timeOfDay)] = &models.PublishedSlot{
		BloodBankID:   bankID,
		Date:          date,
		Time:          timeOfDay,
		TotalCapacity: capacity,
	}
}

func (r *fakeRepo) GetBloodBankByID(_ context.Context, id uint) (*models.BloodBank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bank, ok := r.banks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return bank, nil
}

func (r *fakeRepo) ReplaceSlotsForDates(_ context.Context, bankID uint, dates []string, slots []models.PublishedSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range dates {
		for key, s := range r.slots {
			if s.BloodBankID == bankID && s.Date == d {
				delete(r.slots, key)
			}
		}
	}
	for i := range slots {
		s := slots[i]
		r.slots[slotKey(s.BloodBankID, s.Date, s.Time)] = &s
	}
	return nil
}

func (r *fakeRepo) DeleteSlotsForDate(_ context.Context, bankID uint, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, s := range r.slots {
		if s.BloodBankID == bankID && s.Date == date {
			delete(r.slots, key)
		}
	}
	return nil
}

func (r *fakeRepo) GetSlot(_ context.Context, bankID uint, date, timeOfDay string) (*models.PublishedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[slotKey(bankID, date, timeOfDay)]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return slot, nil
}

func (r *fakeRepo) ListSlotsForDate(_ context.Context, bankID uint, date string) ([]models.PublishedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.PublishedSlot
	for _, s := range r.slots {
		if s.BloodBankID == bankID && s.Date == date {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (r *fakeRepo) ListDatesWithSlots(_ context.Context, bankID uint, fromDate string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]bool{}
	for _, s := range r.slots {
		if s.BloodBankID == bankID && s.Date >= fromDate {
			seen[s.Date] = true
		}
	}

	var dates []string
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) CountActiveBySlot(_ context.Context, bankID uint, date, timeOfDay string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, b := range r.bookings {
		if b.BloodBankID == bankID && b.Date == date && b.Time == timeOfDay &&
			domain.Status(b.Status).IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) ActiveCountsByTime(_ context.Context, bankID uint, date string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := map[string]int64{}
	for _, b := range r.bookings {
		if b.BloodBankID == bankID && b.Date == date && domain.Status(b.Status).IsActive() {
			counts[b.Time]++
		}
	}
	return counts, nil
}

func (r *fakeRepo) CountActiveForDate(_ context.Context, bankID uint, date string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, b := range r.bookings {
		if b.BloodBankID == bankID && b.Date == date && domain.Status(b.Status).IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetBookingByIdempotencyKey(_ context.Context, key string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.IdempotencyKey == key {
			copied := *b
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) ListBookingsByUser(_ context.Context, userID uint, activeOnly bool) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if activeOnly && !domain.Status(b.Status).IsActive() {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsByBank(_ context.Context, bankID uint, fromDate, toDate string, status *domain.Status) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.BloodBankID != bankID {
			continue
		}
		if fromDate != "" && b.Date < fromDate {
			continue
		}
		if toDate != "" && b.Date > toDate {
			continue
		}
		if status != nil && b.Status != string(*status) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Dependências compartilhadas dos testes
// --------------------------------------------------

func newTestAudit(t *testing.T) *audit.Dispatcher {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// em memória: uma conexão só, senão cada conexão enxerga um banco vazio
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	return audit.NewDispatcher(audit.New(db))
}

func newTestEvents() *events.Dispatcher {
	return events.NewDispatcher()
}
