package lead

import (
	"net/http"

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

// RegisterRoutes mounts /leads. limited guards the public write.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limited gin.HandlerFunc) {
	g := api.Group("/leads")
	{
		g.POST("", limited, h.RecordLead)
		g.GET("/my-stats",
			middleware.RequireAuth(),
			middleware.RequireRole(domain.RoleProvider, domain.RoleAdmin),
			h.MyStats,
		)
	}
}

// RecordLead godoc
// @Summary  Record a call or WhatsApp click on a provider
// @Param    request body RecordLeadRequest true "providerId and type"
// @Success  201 {object} map[string]interface{}
// @Router   /leads [POST]
func (h *Handler) RecordLead(c *gin.Context) {
	var req RecordLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.RecordLead(c.Request.Context(), req.ProviderID, req.Type)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) MyStats(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	stats, err := h.service.StatsForOwner(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
