package handler

import (
	"net/http"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/modules/feedback/model"
	"github.com/jobber-ats/core/modules/feedback/service"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	service *service.FeedbackService
}

func NewFeedbackHandler(service *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit godoc
// @Summary Submit interviewer feedback for a completed interview
// @Tags feedback
// @Accept json
// @Produce json
// @Success 201 {object} model.DTO
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, apperr.MalformedRequest("invalid feedback payload"))
		return
	}

	dto, err := h.service.Submit(c.Request.Context(), req.InterviewID, req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusCreated, dto)
}

func (h *FeedbackHandler) ListByInterview(c *gin.Context) {
	items, err := h.service.ListByInterview(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, items)
}

func (h *FeedbackHandler) ListByInterviewer(c *gin.Context) {
	items, err := h.service.ListByInterviewer(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, items)
}

func (h *FeedbackHandler) ListPositive(c *gin.Context) {
	items, err := h.service.ListPositive(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, items)
}

func (h *FeedbackHandler) CandidateAverage(c *gin.Context) {
	avg, err := h.service.CandidateAverage(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, avg)
}

func (h *FeedbackHandler) InterviewerStats(c *gin.Context) {
	stats, err := h.service.InterviewerStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, stats)
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	{
		feedback.POST("", h.Submit)
		feedback.GET("/positive", h.ListPositive)
		feedback.GET("/interviewer/:id", h.ListByInterviewer)
		feedback.GET("/interviewer/:id/stats", h.InterviewerStats)
		feedback.GET("/candidate/:id/average", h.CandidateAverage)
	}

	interviews := router.Group("/interviews")
	{
		interviews.GET("/:id/feedback", h.ListByInterview)
	}
}
