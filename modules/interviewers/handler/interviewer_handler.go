package handler

import (
	"net/http"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/modules/interviewers/model"
	"github.com/jobber-ats/core/modules/interviewers/ports"
	"github.com/jobber-ats/core/modules/interviewers/service"
	"github.com/gin-gonic/gin"
)

type InterviewerHandler struct {
	service *service.InterviewerService
}

func NewInterviewerHandler(service *service.InterviewerService) *InterviewerHandler {
	return &InterviewerHandler{service: service}
}

func (h *InterviewerHandler) Create(c *gin.Context) {
	var req model.CreateInterviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, apperr.MalformedRequest("invalid interviewer payload"))
		return
	}

	dto, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusCreated, dto)
}

func (h *InterviewerHandler) Get(c *gin.Context) {
	dto, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

func (h *InterviewerHandler) List(c *gin.Context) {
	params, err := httpx.ParsePageParams(c, "name")
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	includeArchived := c.Query("includeArchived") == "true"
	opts := ports.ListOptions{
		Limit: params.Limit(), Offset: params.Offset(),
		SortBy: params.SortBy, SortDir: params.SortDir,
		IncludeArchived: includeArchived,
	}

	items, total, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithPage(c, items, params, total)
}

// Search godoc
// @Summary Search interviewers by name, email, department, or expertise
// @Tags interviewers
// @Produce json
// @Success 200 {object} httpx.Page
// @Router /interviewers/search [get]
func (h *InterviewerHandler) Search(c *gin.Context) {
	params, err := httpx.ParsePageParams(c, "name")
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
	if department := c.Query("department"); department != "" {
		filter.Department = &department
	}
	if expertise := c.Query("expertise"); expertise != "" {
		filter.Expertise = &expertise
	}

	opts := ports.ListOptions{
		Limit: params.Limit(), Offset: params.Offset(),
		SortBy: params.SortBy, SortDir: params.SortDir,
		IncludeArchived: c.Query("includeArchived") == "true",
	}

	items, total, err := h.service.Search(c.Request.Context(), filter, opts)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithPage(c, items, params, total)
}

func (h *InterviewerHandler) Update(c *gin.Context) {
	var req model.UpdateInterviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, apperr.MalformedRequest("invalid interviewer update payload"))
		return
	}

	dto, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

func (h *InterviewerHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InterviewerHandler) Unarchive(c *gin.Context) {
	if err := h.service.Unarchive(c.Request.Context(), c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InterviewerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InterviewerHandler) RegisterRoutes(router *gin.RouterGroup) {
	interviewers := router.Group("/interviewers")
	{
		interviewers.POST("", h.Create)
		interviewers.GET("", h.List)
		interviewers.GET("/search", h.Search)
		interviewers.GET("/:id", h.Get)
		interviewers.PATCH("/:id", h.Update)
		interviewers.POST("/:id/archive", h.Archive)
		interviewers.POST("/:id/unarchive", h.Unarchive)
		interviewers.DELETE("/:id", h.Delete)
	}
}
