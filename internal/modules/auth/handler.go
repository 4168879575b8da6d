package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic/internal/domain"
	"servic/internal/middleware"
	"servic/internal/pkg/response"
)

// Handler manages the HTTP side of authentication.
type Handler struct {
	service *Service
	cookie  SessionCookie
	log     logrus.FieldLogger
}

func NewHandler(service *Service, cookie SessionCookie, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, cookie: cookie, log: log}
}

// RegisterRoutes mounts /auth. limited wraps the credential endpoints.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limited gin.HandlerFunc) {
	g := api.Group("/auth")
	{
		g.POST("/signup", limited, h.Signup)
		g.POST("/login", limited, h.Login)
		g.POST("/logout", h.Logout)
		g.GET("/me", h.Me)
	}
}

// Signup godoc
// @Summary  Create an account and start a session
// @Param    request body SignupRequest true "name, email, password"
// @Router   /auth/signup [POST]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	h.cookie.Set(c, res.Token)
	response.Success(c, http.StatusCreated, res)
}

// Login godoc
// @Summary  Start a session with email and password
// @Param    request body LoginRequest true "email, password"
// @Router   /auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}

	h.cookie.Set(c, res.Token)
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me reports the current session identity; anonymous callers get user=null.
func (h *Handler) Me(c *gin.Context) {
	var actor *domain.Actor
	if a, ok := middleware.CurrentActor(c); ok {
		actor = &a
	}
	response.Success(c, http.StatusOK, gin.H{"user": h.service.Me(actor)})
}

// StartSession issues a token for u and sets the session cookie.
func (h *Handler) StartSession(c *gin.Context, u *domain.User) (string, error) {
	res, err := h.service.IssueFor(u)
	if err != nil {
		return "", err
	}
	h.cookie.Set(c, res.Token)
	return res.Token, nil
}
