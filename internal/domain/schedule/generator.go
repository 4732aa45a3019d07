package schedule

import (
	"time"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// Cadência fixa dos slots de doação
	SlotInterval = 30 * time.Minute
)

// Generate expande a janela em um slot por grade de 30 minutos, por data.
// O horário final entra quando cai exatamente na grade; caso contrário a
// expansão para na última grade anterior a ele. Função pura.
func Generate(window AvailabilityWindow) ([]models.PublishedSlot, error) {
	startDate, endDate, startTime, endTime, err := parseWindow(window)
	if err != nil {
		return nil, err
	}

	var slots []models.PublishedSlot

	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)

		for cur := startTime; !cur.After(endTime); cur = cur.Add(SlotInterval) {
			slots = append(slots, models.PublishedSlot{
				BloodBankID:   window.BloodBankID,
				Date:          date,
				Time:          cur.Format(TimeLayout),
				TotalCapacity: window.CapacityPerSlot,
			})
		}
	}

	return slots, nil
}

// Dates lista as datas cobertas pela janela, na ordem do calendário.
func Dates(window AvailabilityWindow) ([]string, error) {
	startDate, endDate, _, _, err := parseWindow(window)
	if err != nil {
		return nil, err
	}

	var dates []string
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day.Format(DateLayout))
	}
	return dates, nil
}

func parseWindow(window AvailabilityWindow) (startDate, endDate, startTime, endTime time.Time, err error) {
	startDate, err = time.Parse(DateLayout, window.StartDate)
	if err != nil {
		return startDate, endDate, startTime, endTime, booking.ErrValidation("invalid_start_date")
	}

	endDate, err = time.Parse(DateLayout, window.EndDate)
	if err != nil {
		return startDate, endDate, startTime, endTime, booking.ErrValidation("invalid_end_date")
	}

	startTime, err = time.Parse(TimeLayout, window.StartTime)
	if err != nil {
		return startDate, endDate, startTime, endTime, booking.ErrValidation("invalid_start_time")
	}

	endTime, err = time.Parse(TimeLayout, window.EndTime)
	if err != nil {
		return startDate, endDate, startTime, endTime, booking.ErrValidation("invalid_end_time")
	}

	if endDate.Before(startDate) {
		return startDate, endDate, startTime, endTime, booking.ErrValidation("end_date_before_start_date")
	}
	if !endTime.After(startTime) {
		return startDate, endDate, startTime, endTime, booking.ErrValidation("end_time_not_after_start_time")
	}
	if window.CapacityPerSlot <= 0 {
		return startDate, endDate, startTime, endTime, booking.ErrValidation("capacity_not_positive")
	}

	return startDate, endDate, startTime, endTime, nil
}
