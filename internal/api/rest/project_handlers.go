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

type projectRequest struct {
	StudentID    string     `json:"studentId"`
	CourseID     *string    `json:"courseId"`
	InternshipID *string    `json:"internshipId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Progress     int        `json:"progress"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"dueDate"`
}

func (r *projectRequest) validate() error {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.Title = strings.TrimSpace(r.Title)
	if r.StudentID == "" {
		return errors.New(errors.CodeValidation, "studentId is required")
	}
	if r.Title == "" {
		return errors.New(errors.CodeValidation, "title is required")
	}
	if r.Progress < 0 || r.Progress > 100 {
		return errors.New(errors.CodeProgressOutOfRange, "progress must be between 0 and 100")
	}
	if r.Status != "" && !validProjectStatus(storage.ProjectStatus(r.Status)) {
		return errors.New(errors.CodeInvalidStatus, "unknown project status")
	}
	return nil
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}
	status := storage.ProjectNotStarted
	if req.Status != "" {
		status = storage.ProjectStatus(req.Status)
	}

	now := h.now()
	record := storage.Project{
		ID:           h.newID(),
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		InternshipID: req.InternshipID,
		Title:        req.Title,
		Description:  strings.TrimSpace(req.Description),
		Progress:     req.Progress,
		Status:       status,
		DueDate:      req.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.store.CreateProject(c.Request.Context(), record); err != nil {
		if stderrors.Is(err, storage.ErrDanglingReference) {
			h.respondError(c, errors.New(errors.CodeNotFound, "referenced record does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toProjectView(record))
}

func (h *Handler) getProject(c *gin.Context) {
	record, err := h.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "project does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProjectView(record))
}

func (h *Handler) listProjects(c *gin.Context) {
	records, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProjectViews(records))
}

func (h *Handler) updateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	record, err := h.store.GetProject(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "project does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	if req.StudentID == "" {
		req.StudentID = record.StudentID
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}

	record.StudentID = req.StudentID
	record.CourseID = req.CourseID
	record.InternshipID = req.InternshipID
	record.Title = req.Title
	record.Description = strings.TrimSpace(req.Description)
	record.Progress = req.Progress
	if req.Status != "" {
		record.Status = storage.ProjectStatus(req.Status)
	}
	record.DueDate = req.DueDate
	record.UpdatedAt = h.now()
	if err := h.store.UpdateProject(ctx, record); err != nil {
		if stderrors.Is(err, storage.ErrDanglingReference) {
			h.respondError(c, errors.New(errors.CodeNotFound, "referenced record does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProjectView(record))
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.store.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "project does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "project deleted")
}

func validProjectStatus(status storage.ProjectStatus) bool {
	switch status {
	case storage.ProjectNotStarted, storage.ProjectInProgress,
		storage.ProjectCompleted, storage.ProjectOnHold, storage.ProjectCancelled:
		return true
	}
	return false
}
