package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/cache"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/schedule"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httperr"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httpresp"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/middleware"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/timezone"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	publish   *availability.Publish
	unpublish *availability.Unpublish
	remaining *availability.RemainingCapacity
	listDates *availability.ListDates
	cache     *cache.AvailabilityCache
}

func NewAvailabilityHandler(
	publish *availability.Publish,
	unpublish *availability.Unpublish,
	remaining *availability.RemainingCapacity,
	listDates *availability.ListDates,
	snapshots *cache.AvailabilityCache,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		publish:   publish,
		unpublish: unpublish,
		remaining: remaining,
		listDates: listDates,
		cache:     snapshots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublishAvailabilityRequest struct {
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	CapacityPerSlot int    `json:"capacity_per_slot" binding:"required"`
}

// ======================================================
// BLOOD BANK (autenticado)
// ======================================================

// Publish expande a janela em slots de 30 minutos e substitui a grade das
// datas cobertas. Republicar é idempotente por data.
func (h *AvailabilityHandler) Publish(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	var req PublishAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	window := schedule.AvailabilityWindow{
		BloodBankID:     bloodBankID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		CapacityPerSlot: req.CapacityPerSlot,
	}

	slots, err := h.publish.Execute(c.Request.Context(), window)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	dates, err := schedule.Dates(window)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	for _, d := range dates {
		h.cache.Invalidate(c.Request.Context(), bloodBankID, d)
	}

	httpresp.Created(c, gin.H{
		"dates":         dates,
		"slots_created": len(slots),
	})
}

func (h *AvailabilityHandler) Unpublish(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)
	date := c.Param("date")

	if err := h.unpublish.Execute(c.Request.Context(), bloodBankID, date); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), bloodBankID, date)

	httpresp.OK(c, gin.H{"date": date, "unpublished": true})
}

// ======================================================
// PÚBLICO (doador)
// ======================================================

func (h *AvailabilityHandler) ListDates(c *gin.Context) {
	bloodBankID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_blood_bank_id", "Identificador inválido.")
		return
	}

	from := c.Query("from")
	if from == "" {
		from = timezone.Today(timezone.DefaultTimezone)
	}

	dates, err := h.listDates.Execute(c.Request.Context(), uint(bloodBankID), from)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, dates)
}

// GetForDate devolve a disponibilidade por slot, preferindo o snapshot do
// cache quando presente.
func (h *AvailabilityHandler) GetForDate(c *gin.Context) {
	bloodBankID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_blood_bank_id", "Identificador inválido.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}

	var cached []availability.SlotAvailability
	if h.cache.Get(c.Request.Context(), uint(bloodBankID), date, &cached) {
		httpresp.List(c, cached)
		return
	}

	slots, err := h.remaining.Execute(c.Request.Context(), uint(bloodBankID), date)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.Set(c.Request.Context(), uint(bloodBankID), date, slots)

	httpresp.List(c, slots)
}
