package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/eligibility"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httperr"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httpresp"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/middleware"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type EligibilityHandler struct {
	db        *gorm.DB
	repo      domain.Repository
	evaluator *eligibility.Evaluator
}

func NewEligibilityHandler(
	db *gorm.DB,
	repo domain.Repository,
	evaluator *eligibility.Evaluator,
) *EligibilityHandler {
	return &EligibilityHandler{
		db:        db,
		repo:      repo,
		evaluator: evaluator,
	}
}

// ======================================================
// STATUS (intervalo entre doações)
// ======================================================

// Status responde se o doador pode agendar agora e, se não, quando poderá.
// É informativo: a checagem que vale acontece dentro do Book.
func (h *EligibilityHandler) Status(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	history, err := h.repo.ListBookingsByUser(c.Request.Context(), userID, false)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	result := h.evaluator.Evaluate(user.Gender, history, timezone.Now())
	httpresp.OK(c, result)
}

// ======================================================
// QUESTIONÁRIO DE TRIAGEM
// ======================================================

func (h *EligibilityHandler) SubmitQuestionnaire(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var q eligibility.Questionnaire
	if err := c.ShouldBindJSON(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	verdict := q.Evaluate()

	answers, err := json.Marshal(q)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	record := models.EligibilityQuestionnaire{
		UserID:        userID,
		Gender:        string(q.Gender),
		Answers:       string(answers),
		IsEligible:    verdict.Eligible,
		ResultMessage: verdict.Message,
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_save_questionnaire", "Erro ao salvar questionário.")
		return
	}

	httpresp.Created(c, gin.H{
		"id":       record.ID,
		"eligible": verdict.Eligible,
		"message":  verdict.Message,
	})
}

func (h *EligibilityHandler) LatestQuestionnaire(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var record models.EligibilityQuestionnaire
	err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error

	if err == gorm.ErrRecordNotFound {
		httperr.NotFound(c, "questionnaire_not_found", "Nenhum questionário respondido.")
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	httpresp.OK(c, record)
}
