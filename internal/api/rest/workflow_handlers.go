package rest

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/placement"
	"github.com/talentbridge/internhub/internal/storage"
)

type enrollRequest struct {
	StudentID string `json:"studentId"`
	CourseID  string `json:"courseId"`
}

func (h *Handler) enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	record, err := h.enrollments.Enroll(c.Request.Context(), req.StudentID, req.CourseID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toEnrollmentView(record))
}

type progressRequest struct {
	StudentID string `json:"studentId"`
	CourseID  string `json:"courseId"`
	Progress  int    `json:"progress"`
	Status    string `json:"status"`
}

func (h *Handler) updateEnrollmentProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	record, err := h.enrollments.UpdateProgress(c.Request.Context(),
		req.StudentID, req.CourseID, req.Progress, storage.EnrollmentStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toEnrollmentView(record))
}

type applyRequest struct {
	StudentID    string `json:"studentId"`
	InternshipID string `json:"internshipId"`
	CoverLetter  string `json:"coverLetter"`
	Resume       string `json:"resume"`
	Portfolio    string `json:"portfolio"`
}

func (h *Handler) apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	record, err := h.placements.Apply(c.Request.Context(), req.StudentID, req.InternshipID, placement.ApplyInput{
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
		Portfolio:   req.Portfolio,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toApplicationView(record))
}

func (h *Handler) getApplication(c *gin.Context) {
	record, err := h.store.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "application does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toApplicationView(record))
}

type reviewRequest struct {
	Status        string     `json:"status"`
	Feedback      string     `json:"feedback"`
	Score         *int       `json:"score"`
	InterviewDate *time.Time `json:"interviewDate"`
	ReviewedBy    string     `json:"reviewedBy"`
}

func (h *Handler) updateApplicationStatus(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	reviewedBy := strings.TrimSpace(req.ReviewedBy)
	if reviewedBy == "" {
		if claims := authClaims(c); claims != nil {
			reviewedBy = claims.UserID
		}
	}
	record, err := h.placements.UpdateStatus(c.Request.Context(), c.Param("id"), placement.ReviewInput{
		Status:        storage.ApplicationStatus(req.Status),
		Feedback:      req.Feedback,
		Score:         req.Score,
		InterviewDate: req.InterviewDate,
		ReviewedBy:    reviewedBy,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toApplicationView(record))
}
