package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/httperr"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httpresp"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/middleware"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

type AuditHandler struct {
	db *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

// List devolve a trilha de auditoria do banco autenticado, mais recente
// primeiro.
func (h *AuditHandler) List(c *gin.Context) {
	bloodBankID := c.MustGet(middleware.ContextBloodBankID).(uint)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	q := h.db.
		Where("blood_bank_id = ?", bloodBankID).
		Order("created_at DESC").
		Limit(limit)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	httpresp.List(c, logs)
}
