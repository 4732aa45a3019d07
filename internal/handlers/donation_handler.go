package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/cache"
	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httperr"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httpresp"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/middleware"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/timezone"
	usecase "github.com/RenatoWlk/projeto-aplicado-II/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type DonationHandler struct {
	db   *gorm.DB
	repo domain.Repository

	book     *usecase.Book
	confirm  *usecase.Confirm
	cancel   *usecase.Cancel
	complete *usecase.Complete
	noShow   *usecase.MarkNoShow

	cache *cache.AvailabilityCache
}

func NewDonationHandler(
	db *gorm.DB,
	repo domain.Repository,
	book *usecase.Book,
	confirm *usecase.Confirm,
	cancel *usecase.Cancel,
	complete *usecase.Complete,
	noShow *usecase.MarkNoShow,
	snapshots *cache.AvailabilityCache,
) *DonationHandler {
	return &DonationHandler{
		db:       db,
		repo:     repo,
		book:     book,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
		noShow:   noShow,
		cache:    snapshots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDonationRequest struct {
	BloodBankID uint   `json:"blood_bank_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`

	// Aceita também pelo header Idempotency-Key, que tem prioridade.
	IdempotencyKey string `json:"idempotency_key"`
}

type CancelDonationRequest struct {
	Reason string `json:"reason"`
}

type CompleteDonationRequest struct {
	Notes string `json:"notes"`
}

// ======================================================
// DONOR
// ======================================================

func (h *DonationHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = req.IdempotencyKey
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	b, err := h.book.Execute(c.Request.Context(), usecase.BookInput{
		UserID:         userID,
		Gender:         user.Gender,
		BloodType:      user.BloodType,
		BloodBankID:    req.BloodBankID,
		Date:           req.Date,
		Time:           req.Time,
		IdempotencyKey: key,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), b.BloodBankID, b.Date)

	httpresp.Created(c, b)
}

func (h *DonationHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	b, err := h.repo.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ownerDonor := bloodBankID == 0 && b.UserID == userID
	ownerBank := bloodBankID != 0 && b.BloodBankID == bloodBankID
	if !ownerDonor && !ownerBank {
		writeDomainError(c, domain.ErrForbidden)
		return
	}

	httpresp.OK(c, b)
}

func (h *DonationHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	activeOnly := c.Query("active") == "true"

	bookings, err := h.repo.ListBookingsByUser(c.Request.Context(), userID, activeOnly)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// Cancel atende doador e banco: o use case resolve a posse pelo ator.
func (h *DonationHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	var req CancelDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), usecase.CancelInput{
		BookingID:        c.Param("id"),
		Reason:           req.Reason,
		ActorUserID:      userID,
		ActorBloodBankID: bloodBankID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), b.BloodBankID, b.Date)

	httpresp.OK(c, b)
}

// ======================================================
// BLOOD BANK (transições)
// ======================================================

func (h *DonationHandler) Confirm(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	b, err := h.confirm.Execute(c.Request.Context(), c.Param("id"), bloodBankID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *DonationHandler) Complete(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	var req CompleteDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.complete.Execute(c.Request.Context(), c.Param("id"), bloodBankID, req.Notes)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), b.BloodBankID, b.Date)

	httpresp.OK(c, b)
}

func (h *DonationHandler) MarkNoShow(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	b, err := h.noShow.Execute(c.Request.Context(), c.Param("id"), bloodBankID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), b.BloodBankID, b.Date)

	httpresp.OK(c, b)
}

// ======================================================
// BLOOD BANK (listagens)
// ======================================================

func (h *DonationHandler) ListForBank(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	var status *domain.Status
	if raw := c.Query("status"); raw != "" {
		if !domain.IsValidStatus(raw) {
			httperr.BadRequest(c, "invalid_status", "Status desconhecido.")
			return
		}
		s := domain.Status(raw)
		status = &s
	}

	bookings, err := h.repo.ListBookingsByBank(
		c.Request.Context(),
		bloodBankID,
		c.Query("from"),
		c.Query("to"),
		status,
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// Upcoming devolve os agendamentos ativos dos próximos N dias (default 7).
func (h *DonationHandler) Upcoming(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	days := 7
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	now := timezone.Now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, days).Format("2006-01-02")

	bookings, err := h.repo.ListBookingsByBank(c.Request.Context(), bloodBankID, from, to, nil)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	active := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if domain.Status(b.Status).IsActive() {
			active = append(active, b)
		}
	}

	httpresp.List(c, active)
}

func (h *DonationHandler) Stats(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	type statusRow struct {
		Status string
		Count  int64
	}
	type bloodTypeRow struct {
		BloodType string
		Count     int64
	}

	ranged := func(q *gorm.DB) *gorm.DB {
		if from := c.Query("from"); from != "" {
			q = q.Where("date >= ?", from)
		}
		if to := c.Query("to"); to != "" {
			q = q.Where("date <= ?", to)
		}
		return q
	}

	var byStatus []statusRow
	if err := ranged(h.db.
		Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("blood_bank_id = ?", bloodBankID)).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	var byBloodType []bloodTypeRow
	if err := ranged(h.db.
		Model(&models.Booking{}).
		Select("blood_type, COUNT(*) AS count").
		Where("blood_bank_id = ? AND status = ?", bloodBankID, string(domain.StatusCompleted))).
		Group("blood_type").
		Scan(&byBloodType).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	statusCounts := gin.H{}
	for _, row := range byStatus {
		statusCounts[row.Status] = row.Count
	}

	bloodTypeCounts := gin.H{}
	for _, row := range byBloodType {
		if row.BloodType == "" {
			continue
		}
		bloodTypeCounts[row.BloodType] = row.Count
	}

	httpresp.OK(c, gin.H{
		"by_status":               statusCounts,
		"completed_by_blood_type": bloodTypeCounts,
	})
}
