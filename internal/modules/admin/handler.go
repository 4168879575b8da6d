package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic/internal/domain"
	"servic/internal/middleware"
	"servic/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts /admin. Every route needs an admin session.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(domain.RoleAdmin))
	{
		g.GET("/providers/pending", h.PendingProviders)
		g.POST("/providers/:id/verify", h.VerifyProvider)
		g.POST("/providers/:id/unverify", h.UnverifyProvider)
		g.GET("/stats", h.GetStats)
	}
}

// PendingProviders godoc
// @Summary  Providers waiting for the verified badge
// @Param    page   query int false "Page, from 1"
// @Param    limit  query int false "Page size, at most 100"
// @Router   /admin/providers/pending [GET]
func (h *Handler) PendingProviders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := h.service.PendingProviders(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) VerifyProvider(c *gin.Context) {
	h.setVerified(c, true)
}

func (h *Handler) UnverifyProvider(c *gin.Context) {
	h.setVerified(c, false)
}

func (h *Handler) setVerified(c *gin.Context, verified bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, h.log, ErrInvalidID)
		return
	}

	actor, _ := middleware.CurrentActor(c)
	p, err := h.service.SetVerified(c.Request.Context(), actor.UserID, id, verified)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
