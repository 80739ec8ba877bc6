package handler

import (
	"errors"
	"io"
	"net/http"

	"listinggen/internal/model"
	"listinggen/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles form and submission HTTP requests
type SessionHandler struct {
	session *service.Session
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(session *service.Session) *SessionHandler {
	return &SessionHandler{
		session: session,
	}
}

// FieldEditRequest is the body of PATCH /api/v1/session/form
type FieldEditRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// RegisterRoutes wires the session API onto the router
func RegisterRoutes(router *gin.Engine, h *SessionHandler, limiter *RateLimiter) {
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/session", h.Get)
		apiV1.PUT("/session/form", h.ReplaceForm)
		apiV1.PATCH("/session/form", h.EditField)
		apiV1.POST("/session/dismiss", h.Dismiss)

		if limiter != nil {
			apiV1.POST("/session/submit", RateLimit(limiter), h.Submit)
		} else {
			apiV1.POST("/session/submit", h.Submit)
		}
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.View())
}

// ReplaceForm handles PUT /api/v1/session/form
func (h *SessionHandler) ReplaceForm(c *gin.Context) {
	var form model.FormInput
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	h.session.SetForm(form)
	c.JSON(http.StatusOK, h.session.View())
}

// EditField handles PATCH /api/v1/session/form
func (h *SessionHandler) EditField(c *gin.Context) {
	var req FieldEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var editErr error
	h.session.Edit(func(f model.FormInput) model.FormInput {
		next, err := f.WithField(req.Field, req.Value)
		if err != nil {
			editErr = err
			return f
		}
		return next
	})
	if editErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": editErr.Error()})
		return
	}

	c.JSON(http.StatusOK, h.session.View())
}

// Submit handles POST /api/v1/session/submit.
// A FormInput body, when present, replaces the stored form before submitting.
func (h *SessionHandler) Submit(c *gin.Context) {
	var listing *model.GeneratedListing
	var err error

	var form model.FormInput
	if bindErr := c.ShouldBindJSON(&form); bindErr == nil {
		listing, err = h.session.SubmitForm(c.Request.Context(), form)
	} else if errors.Is(bindErr, io.EOF) {
		listing, err = h.session.Submit(c.Request.Context())
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + bindErr.Error()})
		return
	}
	status := h.session.Status()

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"listing": listing, "status": status})
	case errors.Is(err, service.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "A listing is already being generated", "status": status})
	case errors.Is(err, service.ErrMissingFields):
		var fields []string
		if status.Error != nil {
			fields = status.Error.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": model.MessageMissingFields, "fields": fields, "status": status})
	case errors.Is(err, service.ErrProviderDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": model.MessageProviderFailed, "status": status})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": model.MessageProviderFailed, "status": status})
	}
}

// Dismiss handles POST /api/v1/session/dismiss
func (h *SessionHandler) Dismiss(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.session.Dismiss()})
}
