package handler

import (
	"context"
	"net/http"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/modules/audit/service"
	"github.com/gin-gonic/gin"
)

// ExistenceChecker reports whether an entity with the given id exists,
// letting the history endpoints 404 instead of silently returning an
// empty array for an unknown candidate or interview.
type ExistenceChecker func(ctx context.Context, id string) (bool, error)

type AuditHandler struct {
	service         *service.AuditService
	candidateExists ExistenceChecker
	interviewExists ExistenceChecker
}

func NewAuditHandler(service *service.AuditService, candidateExists, interviewExists ExistenceChecker) *AuditHandler {
	return &AuditHandler{service: service, candidateExists: candidateExists, interviewExists: interviewExists}
}

// CandidateHistory godoc
// @Summary Candidate stage history
// @Description Full stage-transition history for a candidate, ascending by changedAt
// @Tags history
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {array} model.StageChange
// @Router /history/candidates/{id} [get]
func (h *AuditHandler) CandidateHistory(c *gin.Context) {
	candidateID := c.Param("id")

	exists, err := h.candidateExists(c.Request.Context(), candidateID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	if !exists {
		httpx.RespondError(c, apperr.NotFound("candidate not found"))
		return
	}

	history, err := h.service.StageHistory(c.Request.Context(), candidateID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, history)
}

// InterviewHistory godoc
// @Summary Interview status history
// @Description Full status-transition history for an interview, ascending by changedAt
// @Tags history
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {array} model.StatusChange
// @Router /history/interviews/{id} [get]
func (h *AuditHandler) InterviewHistory(c *gin.Context) {
	interviewID := c.Param("id")

	exists, err := h.interviewExists(c.Request.Context(), interviewID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	if !exists {
		httpx.RespondError(c, apperr.NotFound("interview not found"))
		return
	}

	history, err := h.service.StatusHistory(c.Request.Context(), interviewID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, history)
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	history := router.Group("/history")
	{
		history.GET("/candidates/:id", h.CandidateHistory)
		history.GET("/interviews/:id", h.InterviewHistory)
	}
}
