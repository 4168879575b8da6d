package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

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

// RegisterRoutes mounts /bookings. Session must already run on api.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/bookings")
	{
		g.GET("/provider/:id", h.ListBookedSlots)
		g.GET("/my-provider-bookings", middleware.RequireAuth(), h.ListProviderBookings)
		g.GET("", middleware.RequireAuth(), h.ListMyBookings)
		g.POST("", middleware.RequireAuth(), h.CreateBooking)
		g.PATCH("/:id", middleware.RequireAuth(), h.UpdateStatus)
	}
}

// CreateBooking godoc
// @Summary  Book a 30 minute slot with a provider
// @Param    request body CreateBookingRequest true "providerId, date, timeSlot, clientPhone, notes"
// @Success  201 {object} map[string]interface{}
// @Failure  409 {object} map[string]interface{} "Slot already booked"
// @Router   /bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, _ := middleware.CurrentActor(c)
	b, err := h.service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// UpdateStatus godoc
// @Summary  Change a booking's status or mark it as seen
// @Param    id      path int                 true "Booking ID"
// @Param    request body UpdateStatusRequest true "status and/or isNew=false"
// @Router   /bookings/{id} [PATCH]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, h.log, ErrInvalidID)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, _ := middleware.CurrentActor(c)
	b, err := h.service.UpdateBookingStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := h.service.ListBookingsForUser(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ListProviderBookings(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := h.service.ListBookingsForProvider(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ListBookedSlots is public: it only reveals which slots are taken.
func (h *Handler) ListBookedSlots(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, h.log, ErrInvalidID)
		return
	}

	slots, err := h.service.ListBookedSlots(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, slots)
}
