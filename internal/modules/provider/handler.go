package provider

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
	service  *Service
	sessions SessionStarter
	log      logrus.FieldLogger
}

func NewHandler(service *Service, sessions SessionStarter, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, sessions: sessions, log: log}
}

// RegisterRoutes mounts the directory. Session must already run on api.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/categories", h.ListCategories)

	g := api.Group("/providers")
	{
		g.GET("", h.ListProviders)
		g.POST("", h.CreateProvider)
		g.GET("/me", middleware.RequireAuth(), h.GetMyProvider)
		g.GET("/:id", h.GetProvider)
		g.PATCH("/:id", middleware.RequireAuth(), h.UpdateProvider)
	}
}

func (h *Handler) ListCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, domain.Categories())
}

// ListProviders godoc
// @Summary  Search the provider directory
// @Param    category  query string false "Category or all"
// @Param    location  query string false "City, case-insensitive, or all"
// @Router   /providers [GET]
func (h *Handler) ListProviders(c *gin.Context) {
	out, err := h.service.ListProviders(c.Request.Context(), c.Query("category"), c.Query("location"))
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CreateProvider godoc
// @Summary  Register a provider profile
// @Description Signed-in callers are linked to the profile and promoted to the provider role; a fresh session token is returned.
// @Param    request body CreateProviderRequest true "Profile"
// @Router   /providers [POST]
func (h *Handler) CreateProvider(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var actor *domain.Actor
	if a, ok := middleware.CurrentActor(c); ok {
		actor = &a
	}

	p, err := h.service.CreateProvider(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	res := CreateResult{Provider: p}
	if actor != nil {
		role := domain.RoleProvider
		if actor.IsAdmin() {
			role = domain.RoleAdmin
		}
		token, err := h.sessions.StartSession(c, &domain.User{
			ID:    actor.UserID,
			Email: actor.Email,
			Name:  actor.Name,
			Role:  role,
		})
		if err != nil {
			// the profile exists; the old token still works until the next login
			h.log.WithError(err).WithField("user_id", actor.UserID).Warn("re-issue session after provider signup")
		}
		res.Token = token
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) GetProvider(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.FromError(c, h.log, ErrInvalidID)
		return
	}

	p, err := h.service.GetProvider(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetMyProvider(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	p, err := h.service.GetMyProvider(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateProvider(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.FromError(c, h.log, ErrInvalidID)
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, _ := middleware.CurrentActor(c)
	p, err := h.service.UpdateProvider(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
