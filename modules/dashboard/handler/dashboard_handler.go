package handler

import (
	"net/http"

	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/modules/dashboard/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	httpx.RespondWithData(c, http.StatusOK, overview)
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Overview)
}
