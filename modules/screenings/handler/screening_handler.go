package handler

import (
	"net/http"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/modules/screenings/model"
	"github.com/jobber-ats/core/modules/screenings/service"
	"github.com/gin-gonic/gin"
)

type ScreeningHandler struct {
	service *service.ScreeningService
}

func NewScreeningHandler(service *service.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{service: service}
}

// Screen godoc
// @Summary Synchronously screen a candidate against a job description
// @Tags screenings
// @Produce json
// @Param id path string true "Candidate ID"
// @Param jobDescription query string false "Job description text"
// @Success 201 {object} model.DTO
// @Router /screenings/candidate/{id} [post]
func (h *ScreeningHandler) Screen(c *gin.Context) {
	req := model.ScreenRequest{CandidateID: c.Param("id")}
	if jd := c.Query("jobDescription"); jd != "" {
		req.JobDescription = &jd
	}

	dto, err := h.service.Screen(c.Request.Context(), req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusCreated, dto)
}

// ScreenAsync godoc
// @Summary Queue a screening for a candidate
// @Tags screenings
// @Produce json
// @Param id path string true "Candidate ID"
// @Param jobDescription query string false "Job description text"
// @Success 202 {object} gin.H
// @Router /screenings/candidate/{id}/async [post]
func (h *ScreeningHandler) ScreenAsync(c *gin.Context) {
	req := model.ScreenRequest{CandidateID: c.Param("id")}
	if jd := c.Query("jobDescription"); jd != "" {
		req.JobDescription = &jd
	}

	h.service.ScreenAsync(req)
	httpx.RespondWithData(c, http.StatusAccepted, gin.H{"candidateId": req.CandidateID, "status": "queued"})
}

// BulkAsync godoc
// @Summary Queue screening for a batch of candidates sharing one job description
// @Tags screenings
// @Accept json
// @Produce json
// @Success 202 {object} gin.H
// @Router /screenings/bulk [post]
func (h *ScreeningHandler) BulkAsync(c *gin.Context) {
	var req model.BulkScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, apperr.MalformedRequest("invalid bulk screening payload"))
		return
	}

	h.service.BulkAsync(req)
	httpx.RespondWithData(c, http.StatusAccepted, gin.H{"count": len(req.CandidateIDs), "status": "queued"})
}

func (h *ScreeningHandler) Get(c *gin.Context) {
	dto, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

func (h *ScreeningHandler) ListByCandidate(c *gin.Context) {
	items, err := h.service.ListByCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, items)
}

func (h *ScreeningHandler) RegisterRoutes(router *gin.RouterGroup) {
	screenings := router.Group("/screenings")
	{
		screenings.POST("/candidate/:id", h.Screen)
		screenings.POST("/candidate/:id/async", h.ScreenAsync)
		screenings.POST("/bulk", h.BulkAsync)
		screenings.GET("/:id", h.Get)
		screenings.GET("/candidate/:id", h.ListByCandidate)
	}
}
