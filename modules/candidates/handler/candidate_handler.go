package handler

import (
	"io"
	"net/http"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/modules/candidates/model"
	"github.com/jobber-ats/core/modules/candidates/ports"
	"github.com/jobber-ats/core/modules/candidates/service"
	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	service *service.CandidateService
}

func NewCandidateHandler(service *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{service: service}
}

const maxResumeBytes = 10 << 20 // 10 MiB

// Create godoc
// @Summary Register a candidate
// @Description Creates a candidate from a multipart form, optionally with a resume file
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} model.DTO
// @Router /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	var req model.CreateCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		httpx.RespondError(c, apperr.MalformedRequest("invalid candidate payload: "+err.Error()))
		return
	}

	var filename, contentType string
	var data []byte

	fileHeader, err := c.FormFile("resume")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > maxResumeBytes {
			httpx.RespondError(c, apperr.PayloadTooLarge("resume file exceeds the 10MB limit"))
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			httpx.RespondError(c, apperr.Internal("failed to read uploaded file", err))
			return
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			httpx.RespondError(c, apperr.Internal("failed to read uploaded file", err))
			return
		}
		filename = fileHeader.Filename
		contentType = fileHeader.Header.Get("Content-Type")
	}

	dto, err := h.service.Create(c.Request.Context(), &req, filename, contentType, data)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusCreated, dto)
}

// Get godoc
// @Summary Get a candidate
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} model.DTO
// @Router /candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	dto, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

// List godoc
// @Summary List candidates
// @Tags candidates
// @Produce json
// @Success 200 {object} httpx.Page
// @Router /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	params, err := httpx.ParsePageParams(c, "created_at")
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	opts := ports.ListOptions{Limit: params.Limit(), Offset: params.Offset(), SortBy: params.SortBy, SortDir: params.SortDir}
	items, total, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithPage(c, items, params, total)
}

// Search godoc
// @Summary Search candidates by name, email, or stage
// @Tags candidates
// @Produce json
// @Success 200 {object} httpx.Page
// @Router /candidates/search [get]
func (h *CandidateHandler) Search(c *gin.Context) {
	params, err := httpx.ParsePageParams(c, "created_at")
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	filter := model.SearchFilter{}
	if name := c.Query("name"); name != "" {
		filter.Name = &name
	}
	if email := c.Query("email"); email != "" {
		filter.Email = &email
	}
	if stageParam := c.Query("stage"); stageParam != "" {
		stage := model.Stage(stageParam)
		if !model.ValidStage(stage) {
			httpx.RespondError(c, apperr.Validation("unknown stage value",
				apperr.FieldError{Field: "stage", RejectedValue: stageParam, Message: "not a recognized pipeline stage"}))
			return
		}
		filter.Stage = &stage
	}

	opts := ports.ListOptions{Limit: params.Limit(), Offset: params.Offset(), SortBy: params.SortBy, SortDir: params.SortDir}
	items, total, err := h.service.Search(c.Request.Context(), filter, opts)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithPage(c, items, params, total)
}

// TransitionStage godoc
// @Summary Move a candidate to a new pipeline stage
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Param newStage query string true "Target stage"
// @Param changedBy query string true "Actor making the change"
// @Param reason query string false "Reason for the transition"
// @Success 200 {object} model.DTO
// @Router /candidates/{id}/stage [put]
func (h *CandidateHandler) TransitionStage(c *gin.Context) {
	newStage := c.Query("newStage")
	if newStage == "" {
		httpx.RespondError(c, apperr.MissingParameter("newStage"))
		return
	}
	changedBy := c.Query("changedBy")
	if changedBy == "" {
		httpx.RespondError(c, apperr.MissingParameter("changedBy"))
		return
	}
	var reason *string
	if r := c.Query("reason"); r != "" {
		reason = &r
	}

	dto, err := h.service.TransitionStage(c.Request.Context(), c.Param("id"), model.Stage(newStage), changedBy, reason)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

// UpdateProfile godoc
// @Summary Update a candidate's mutable profile fields
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} model.DTO
// @Router /candidates/{id} [patch]
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, apperr.MalformedRequest("invalid profile update payload"))
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

// Delete godoc
// @Summary Delete a candidate not yet hired
// @Tags candidates
// @Param id path string true "Candidate ID"
// @Success 204
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CandidateHandler) RegisterRoutes(router *gin.RouterGroup) {
	candidates := router.Group("/candidates")
	{
		candidates.POST("", h.Create)
		candidates.GET("", h.List)
		candidates.GET("/search", h.Search)
		candidates.GET("/:id", h.Get)
		candidates.PATCH("/:id", h.UpdateProfile)
		candidates.PUT("/:id/stage", h.TransitionStage)
		candidates.DELETE("/:id", h.Delete)
	}
}
