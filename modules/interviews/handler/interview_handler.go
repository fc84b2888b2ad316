package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/modules/interviews/model"
	"github.com/jobber-ats/core/modules/interviews/ports"
	"github.com/jobber-ats/core/modules/interviews/service"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	service *service.InterviewService
}

func NewInterviewHandler(service *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{service: service}
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req model.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, apperr.MalformedRequest("invalid schedule payload"))
		return
	}

	dto, err := h.service.Schedule(c.Request.Context(), &req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusCreated, dto)
}

// Reschedule godoc
// @Summary Move an interview to a new time
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Param newScheduledAt query string true "RFC3339 new start time"
// @Param newDuration query int false "New duration in minutes"
// @Param rescheduledBy query string true "Actor making the change"
// @Param reason query string false "Reason for rescheduling"
// @Success 200 {object} model.DTO
// @Router /interviews/{id}/reschedule [put]
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	newScheduledAtParam := c.Query("newScheduledAt")
	if newScheduledAtParam == "" {
		httpx.RespondError(c, apperr.MissingParameter("newScheduledAt"))
		return
	}
	newScheduledAt, err := time.Parse(time.RFC3339, newScheduledAtParam)
	if err != nil {
		httpx.RespondError(c, apperr.TypeMismatch("newScheduledAt"))
		return
	}
	rescheduledBy := c.Query("rescheduledBy")
	if rescheduledBy == "" {
		httpx.RespondError(c, apperr.MissingParameter("rescheduledBy"))
		return
	}

	req := &model.RescheduleRequest{NewScheduledAt: newScheduledAt, Who: rescheduledBy, Reason: c.Query("reason")}
	if newDurationParam := c.Query("newDuration"); newDurationParam != "" {
		newDuration, err := strconv.Atoi(newDurationParam)
		if err != nil {
			httpx.RespondError(c, apperr.TypeMismatch("newDuration"))
			return
		}
		req.NewDurationMin = &newDuration
	}

	dto, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

// Cancel godoc
// @Summary Cancel an interview
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Param cancelledBy query string true "Actor making the change"
// @Param reason query string false "Reason for cancellation"
// @Success 200 {object} model.DTO
// @Router /interviews/{id}/cancel [put]
func (h *InterviewHandler) Cancel(c *gin.Context) {
	cancelledBy := c.Query("cancelledBy")
	if cancelledBy == "" {
		httpx.RespondError(c, apperr.MissingParameter("cancelledBy"))
		return
	}

	req := &model.CancelRequest{Who: cancelledBy, Reason: c.Query("reason")}

	dto, err := h.service.Cancel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

// TransitionStatus godoc
// @Summary Move an interview to a new status
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Param newStatus query string true "Target status"
// @Param changedBy query string true "Actor making the change"
// @Param notes query string false "Notes for the transition"
// @Success 200 {object} model.DTO
// @Router /interviews/{id}/status [put]
func (h *InterviewHandler) TransitionStatus(c *gin.Context) {
	newStatus := c.Query("newStatus")
	if newStatus == "" {
		httpx.RespondError(c, apperr.MissingParameter("newStatus"))
		return
	}
	changedBy := c.Query("changedBy")
	if changedBy == "" {
		httpx.RespondError(c, apperr.MissingParameter("changedBy"))
		return
	}
	var notes *string
	if n := c.Query("notes"); n != "" {
		notes = &n
	}

	req := &model.TransitionStatusRequest{Status: model.Status(newStatus), Who: changedBy, Notes: notes}

	dto, err := h.service.TransitionStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	dto, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, dto)
}

func (h *InterviewHandler) List(c *gin.Context) {
	params, err := httpx.ParsePageParams(c, "scheduled_at")
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

func (h *InterviewHandler) ListByCandidate(c *gin.Context) {
	items, err := h.service.ListByCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, items)
}

// Availability godoc
// @Summary Single-interviewer availability check
// @Tags interviews
// @Produce json
// @Param interviewerId query string true "Interviewer ID"
// @Param start query string true "RFC3339 window start"
// @Param end query string true "RFC3339 window end"
// @Router /interviews/availability [get]
func (h *InterviewHandler) Availability(c *gin.Context) {
	interviewerID := c.Query("interviewerId")
	if interviewerID == "" {
		httpx.RespondError(c, apperr.MissingParameter("interviewerId"))
		return
	}
	start, end, err := parseWindow(c)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	available, err := h.service.IsAvailable(c.Request.Context(), interviewerID, start, end)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, gin.H{"available": available})
}

func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	startParam := c.Query("start")
	endParam := c.Query("end")
	if startParam == "" || endParam == "" {
		return time.Time{}, time.Time{}, apperr.MissingParameter("start/end")
	}
	start, err := time.Parse(time.RFC3339, startParam)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.TypeMismatch("start")
	}
	end, err := time.Parse(time.RFC3339, endParam)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.TypeMismatch("end")
	}
	return start, end, nil
}

func (h *InterviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	interviews := router.Group("/interviews")
	{
		interviews.POST("", h.Schedule)
		interviews.GET("", h.List)
		interviews.GET("/availability", h.Availability)
		interviews.GET("/:id", h.Get)
		interviews.PUT("/:id/reschedule", h.Reschedule)
		interviews.PUT("/:id/cancel", h.Cancel)
		interviews.PUT("/:id/status", h.TransitionStatus)
		interviews.GET("/candidate/:id", h.ListByCandidate)
	}
}
