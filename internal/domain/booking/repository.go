package booking

import (
	"context"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

type Repository interface {
	// -------- Blood bank --------
	GetBloodBankByID(
		ctx context.Context,
		id uint,
	) (*models.BloodBank, error)

	// -------- Published slots --------
	ReplaceSlotsForDates(
		ctx context.Context,
		bloodBankID uint,
		dates []string,
		slots []models.PublishedSlot,
	) error

	DeleteSlotsForDate(
		ctx context.Context,
		bloodBankID uint,
		date string,
	) error

	GetSlot(
		ctx context.Context,
		bloodBankID uint,
		date string,
		timeOfDay string,
	) (*models.PublishedSlot, error)

	ListSlotsForDate(
		ctx context.Context,
		bloodBankID uint,
		date string,
	) ([]models.PublishedSlot, error)

	ListDatesWithSlots(
		ctx context.Context,
		bloodBankID uint,
		fromDate string,
	) ([]string, error)

	// -------- Bookings (create / capacity) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	CountActiveBySlot(
		ctx context.Context,
		bloodBankID uint,
		date string,
		timeOfDay string,
	) (int64, error)

	ActiveCountsByTime(
		ctx context.Context,
		bloodBankID uint,
		date string,
	) (map[string]int64, error)

	CountActiveForDate(
		ctx context.Context,
		bloodBankID uint,
		date string,
	) (int64, error)

	// -------- Bookings (state change / lookup) --------
	GetBookingByID(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	GetBookingByIdempotencyKey(
		ctx context.Context,
		key string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Bookings (listings / history) --------
	ListBookingsByUser(
		ctx context.Context,
		userID uint,
		activeOnly bool,
	) ([]models.Booking, error)

	ListBookingsByBank(
		ctx context.Context,
		bloodBankID uint,
		fromDate string,
		toDate string,
		status *Status,
	) ([]models.Booking, error)
}
