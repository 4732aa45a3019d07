package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Blood bank
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBloodBankByID(
	ctx context.Context,
	id uint,
) (*models.BloodBank, error) {

	var bank models.BloodBank
	if err := r.db.WithContext(ctx).First(&bank, id).Error; err != nil {
		return nil, err
	}
	return &bank, nil
}

// --------------------------------------------------
// Published slots
// --------------------------------------------------

// ReplaceSlotsForDates troca a grade das datas cobertas pela janela numa
// única transação: apaga os slots existentes das datas e insere os novos.
// Republicar uma janela é, portanto, um upsert por data.
func (r *SchedulingGormRepository) ReplaceSlotsForDates(
	ctx context.Context,
	bloodBankID uint,
	dates []string,
	slots []models.PublishedSlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("blood_bank_id = ? AND date IN ?", bloodBankID, dates).
			Delete(&models.PublishedSlot{}).Error; err != nil {
			return err
		}

		if len(slots) == 0 {
			return nil
		}

		return tx.Create(&slots).Error
	})
}

func (r *SchedulingGormRepository) DeleteSlotsForDate(
	ctx context.Context,
	bloodBankID uint,
	date string,
) error {

	return r.db.WithContext(ctx).
		Where("blood_bank_id = ? AND date = ?", bloodBankID, date).
		Delete(&models.PublishedSlot{}).Error
}

func (r *SchedulingGormRepository) GetSlot(
	ctx context.Context,
	bloodBankID uint,
	date string,
	timeOfDay string,
) (*models.PublishedSlot, error) {

	var slot models.PublishedSlot
	err := r.db.WithContext(ctx).
		Where("blood_bank_id = ? AND date = ? AND time = ?", bloodBankID, date, timeOfDay).
		First(&slot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *SchedulingGormRepository) ListSlotsForDate(
	ctx context.Context,
	bloodBankID uint,
	date string,
) ([]models.PublishedSlot, error) {

	var slots []models.PublishedSlot
	if err := r.db.WithContext(ctx).
		Where("blood_bank_id = ? AND date = ?", bloodBankID, date).
		Order("time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *SchedulingGormRepository) ListDatesWithSlots(
	ctx context.Context,
	bloodBankID uint,
	fromDate string,
) ([]string, error) {

	var dates []string
	if err := r.db.WithContext(ctx).
		Model(&models.PublishedSlot{}).
		Distinct("date").
		Where("blood_bank_id = ? AND date >= ?", bloodBankID, fromDate).
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}

	return dates, nil
}

// --------------------------------------------------
// Bookings (create / capacity)
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *SchedulingGormRepository) CountActiveBySlot(
	ctx context.Context,
	bloodBankID uint,
	date string,
	timeOfDay string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"blood_bank_id = ? AND date = ? AND time = ? AND status IN ?",
			bloodBankID, date, timeOfDay, activeStatuses(),
		).
		Count(&count).Error

	return count, err
}

func (r *SchedulingGormRepository) ActiveCountsByTime(
	ctx context.Context,
	bloodBankID uint,
	date string,
) (map[string]int64, error) {

	type row struct {
		Time  string
		Count int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("time, COUNT(*) AS count").
		Where(
			"blood_bank_id = ? AND date = ? AND status IN ?",
			bloodBankID, date, activeStatuses(),
		).
		Group("time").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Time] = rw.Count
	}

	return counts, nil
}

func (r *SchedulingGormRepository) CountActiveForDate(
	ctx context.Context,
	bloodBankID uint,
	date string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"blood_bank_id = ? AND date = ? AND status IN ?",
			bloodBankID, date, activeStatuses(),
		).
		Count(&count).Error

	return count, err
}

// --------------------------------------------------
// Bookings (state change / lookup)
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBookingByID(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *SchedulingGormRepository) GetBookingByIdempotencyKey(
	ctx context.Context,
	key string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *SchedulingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Bookings (listings / history)
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBookingsByUser(
	ctx context.Context,
	userID uint,
	activeOnly bool,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID)

	if activeOnly {
		q = q.Where("status IN ?", activeStatuses())
	}

	var bookings []models.Booking
	if err := q.
		Order("date DESC, time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *SchedulingGormRepository) ListBookingsByBank(
	ctx context.Context,
	bloodBankID uint,
	fromDate string,
	toDate string,
	status *domain.Status,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Where("blood_bank_id = ?", bloodBankID)

	if fromDate != "" {
		q = q.Where("date >= ?", fromDate)
	}
	if toDate != "" {
		q = q.Where("date <= ?", toDate)
	}
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var bookings []models.Booking
	if err := q.
		Order("date ASC, time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
