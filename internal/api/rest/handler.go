// Package rest exposes the HTTP API: entity CRUD, the enrollment and
// application workflows, announcements, auth, and the stats overview.
package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentbridge/internhub/internal/announcement"
	"github.com/talentbridge/internhub/internal/auth"
	"github.com/talentbridge/internhub/internal/enrollment"
	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/id"
	"github.com/talentbridge/internhub/internal/placement"
	"github.com/talentbridge/internhub/internal/stats"
	"github.com/talentbridge/internhub/internal/storage"
)

// Handler carries the services and store the HTTP routes delegate to.
type Handler struct {
	store         storage.Store
	enrollments   *enrollment.Service
	placements    *placement.Service
	announcements *announcement.Service
	stats         *stats.Service
	tokens        *auth.TokenIssuer
	logger        *zap.Logger
	clock         func() time.Time
	newID         func() string
}

// NewHandler creates an API handler over the store.
func NewHandler(store storage.Store, tokens *auth.TokenIssuer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:         store,
		enrollments:   enrollment.NewService(store),
		placements:    placement.NewService(store),
		announcements: announcement.NewService(store),
		stats:         stats.NewService(store),
		tokens:        tokens,
		logger:        logger,
		clock:         time.Now,
		newID:         id.New,
	}
}

func (h *Handler) now() time.Time {
	if h.clock != nil {
		return h.clock().UTC()
	}
	return time.Now().UTC()
}

// envelope is the JSON shape every response uses.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: true, Message: message})
}

// respondError maps domain error codes to HTTP statuses. Unrecognized errors
// surface as 500 without leaking internals.
func (h *Handler) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	message := "internal server error"
	if status != http.StatusInternalServerError {
		message = err.Error()
	} else {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, envelope{Success: false, Error: message, Code: string(code)})
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Error:   message,
		Code:    string(errors.CodeValidation),
	})
}
