package rest

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

type internshipRequest struct {
	CompanyID           string     `json:"companyId"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	Slots               int        `json:"slots"`
	Status              string     `json:"status"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	IsActive            *bool      `json:"isActive"`
}

func (r *internshipRequest) validate() error {
	r.CompanyID = strings.TrimSpace(r.CompanyID)
	r.Title = strings.TrimSpace(r.Title)
	if r.CompanyID == "" {
		return errors.New(errors.CodeValidation, "companyId is required")
	}
	if r.Title == "" {
		return errors.New(errors.CodeValidation, "title is required")
	}
	if r.Slots < 1 {
		return errors.New(errors.CodeValidation, "slots must be at least 1")
	}
	if r.Status != "" && !validInternshipStatus(storage.InternshipStatus(r.Status)) {
		return errors.New(errors.CodeInvalidStatus, "unknown internship status")
	}
	return nil
}

func (h *Handler) createInternship(c *gin.Context) {
	var req internshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}
	status := storage.InternshipOpen
	if req.Status != "" {
		status = storage.InternshipStatus(req.Status)
	}

	now := h.now()
	record := storage.Internship{
		ID:                  h.newID(),
		CompanyID:           req.CompanyID,
		Title:               req.Title,
		Description:         strings.TrimSpace(req.Description),
		Location:            strings.TrimSpace(req.Location),
		Slots:               req.Slots,
		Status:              status,
		ApplicationDeadline: req.ApplicationDeadline,
		PostedDate:          now,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	if err := h.store.CreateInternship(c.Request.Context(), record); err != nil {
		if stderrors.Is(err, storage.ErrDanglingReference) {
			h.respondError(c, errors.New(errors.CodeNotFound, "company does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toInternshipView(record))
}

func (h *Handler) getInternship(c *gin.Context) {
	record, err := h.store.GetInternship(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "internship does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toInternshipView(record))
}

func (h *Handler) listInternships(c *gin.Context) {
	records, err := h.store.ListInternships(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toInternshipViews(records))
}

func (h *Handler) listOpenInternships(c *gin.Context) {
	records, err := h.placements.OpenInternships(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toInternshipViews(records))
}

func (h *Handler) updateInternship(c *gin.Context) {
	var req internshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	record, err := h.store.GetInternship(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "internship does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}

	record.CompanyID = req.CompanyID
	record.Title = req.Title
	record.Description = strings.TrimSpace(req.Description)
	record.Location = strings.TrimSpace(req.Location)
	record.Slots = req.Slots
	if req.Status != "" {
		record.Status = storage.InternshipStatus(req.Status)
	}
	record.ApplicationDeadline = req.ApplicationDeadline
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	record.UpdatedAt = h.now()
	if err := h.store.UpdateInternship(ctx, record); err != nil {
		if stderrors.Is(err, storage.ErrDanglingReference) {
			h.respondError(c, errors.New(errors.CodeNotFound, "company does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toInternshipView(record))
}

func (h *Handler) deleteInternship(c *gin.Context) {
	if err := h.store.DeleteInternship(c.Request.Context(), c.Param("id")); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "internship does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "internship deleted")
}

func (h *Handler) listInternshipApplications(c *gin.Context) {
	records, err := h.placements.ListByInternship(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toApplicationViews(records))
}

func validInternshipStatus(status storage.InternshipStatus) bool {
	switch status {
	case storage.InternshipOpen, storage.InternshipFilled,
		storage.InternshipPendingReview, storage.InternshipClosed:
		return true
	}
	return false
}
