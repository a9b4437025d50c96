package rest

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/internhub/internal/announcement"
	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

type publishRequest struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	TargetAudience string     `json:"targetAudience"`
	Priority       string     `json:"priority"`
	PublishDate    *time.Time `json:"publishDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
}

func (h *Handler) publishAnnouncement(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	record, err := h.announcements.Publish(c.Request.Context(), announcement.PublishInput{
		Title:          req.Title,
		Content:        req.Content,
		TargetAudience: storage.Audience(req.TargetAudience),
		Priority:       storage.Priority(req.Priority),
		PublishDate:    req.PublishDate,
		ExpiryDate:     req.ExpiryDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toAnnouncementView(record))
}

// listVisibleAnnouncements defaults to the student audience; ?audience= and
// ?limit= narrow the result.
func (h *Handler) listVisibleAnnouncements(c *gin.Context) {
	audience := storage.AudienceStudents
	if raw := strings.TrimSpace(c.Query("audience")); raw != "" {
		audience = storage.Audience(raw)
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondValidation(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	records, err := h.announcements.ListVisible(c.Request.Context(), audience, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toAnnouncementViews(records))
}

// listAnnouncements returns every published, active announcement across all
// audiences. An optional ?audience= narrows to that audience plus All.
func (h *Handler) listAnnouncements(c *gin.Context) {
	ctx := c.Request.Context()
	var records []storage.Announcement
	var err error
	if raw := strings.TrimSpace(c.Query("audience")); raw != "" {
		records, err = h.announcements.ListVisible(ctx, storage.Audience(raw), 0)
	} else {
		records, err = h.announcements.List(ctx)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toAnnouncementViews(records))
}

func (h *Handler) getAnnouncement(c *gin.Context) {
	record, err := h.store.GetAnnouncement(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "announcement does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toAnnouncementView(record))
}

type markReadRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) markAnnouncementRead(c *gin.Context) {
	var req markReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "invalid request body")
			return
		}
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		if claims := authClaims(c); claims != nil {
			userID = claims.UserID
		}
	}
	if err := h.announcements.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "announcement marked as read")
}

type updateAnnouncementRequest struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	TargetAudience string     `json:"targetAudience"`
	Priority       string     `json:"priority"`
	IsActive       *bool      `json:"isActive"`
	PublishDate    *time.Time `json:"publishDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
}

func (h *Handler) updateAnnouncement(c *gin.Context) {
	var req updateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	record, err := h.store.GetAnnouncement(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "announcement does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		record.Title = title
	}
	if content := strings.TrimSpace(req.Content); content != "" {
		record.Content = content
	}
	if req.TargetAudience != "" {
		audience := storage.Audience(req.TargetAudience)
		switch audience {
		case storage.AudienceAll, storage.AudienceStudents,
			storage.AudienceAdmins, storage.AudienceCompanies:
		default:
			h.respondError(c, errors.New(errors.CodeInvalidAudience, "unknown target audience"))
			return
		}
		record.TargetAudience = audience
	}
	if req.Priority != "" {
		priority := storage.Priority(req.Priority)
		if priority.Rank() == 0 {
			h.respondError(c, errors.New(errors.CodeInvalidPriority, "unknown priority"))
			return
		}
		record.Priority = priority
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	if req.PublishDate != nil {
		record.PublishDate = *req.PublishDate
	}
	if req.ExpiryDate != nil {
		record.ExpiryDate = req.ExpiryDate
	}
	record.UpdatedAt = h.now()
	if err := h.store.UpdateAnnouncement(ctx, record); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toAnnouncementView(record))
}

func (h *Handler) deleteAnnouncement(c *gin.Context) {
	if err := h.store.DeleteAnnouncement(c.Request.Context(), c.Param("id")); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "announcement does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "announcement deleted")
}
