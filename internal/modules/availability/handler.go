package availability

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/providers/:id/availability", h.GetAvailability)
}

// GetAvailability godoc
// @Summary  Open and booked slots of a provider for one day
// @Param    id    path   int    true "Provider ID"
// @Param    date  query  string true "Day as YYYY-MM-DD"
// @Router   /providers/{id}/availability [GET]
func (h *Handler) GetAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, h.log, ErrInvalidProviderID)
		return
	}

	out, err := h.service.GetAvailability(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
