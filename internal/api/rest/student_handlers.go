package rest

import (
	stderrors "errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/internhub/internal/auth"
	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

type createStudentRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	University     string `json:"university"`
	Degree         string `json:"degree"`
	GraduationYear int    `json:"graduationYear"`
	Status         string `json:"status"`
}

func (h *Handler) createStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		respondValidation(c, "name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondValidation(c, "a valid email is required")
		return
	}
	status := storage.StudentActive
	if req.Status != "" {
		status = storage.StudentStatus(req.Status)
		if !validStudentStatus(status) {
			h.respondError(c, errors.New(errors.CodeInvalidStatus, "unknown student status"))
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	now := h.now()
	record := storage.Student{
		ID:             h.newID(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Phone:          strings.TrimSpace(req.Phone),
		University:     strings.TrimSpace(req.University),
		Degree:         strings.TrimSpace(req.Degree),
		GraduationYear: req.GraduationYear,
		Status:         status,
		JoinDate:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.store.CreateStudent(c.Request.Context(), record); err != nil {
		if stderrors.Is(err, storage.ErrAlreadyExists) {
			h.respondError(c, errors.New(errors.CodeDuplicateEmail, "email is already registered"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toStudentView(record))
}

func (h *Handler) getStudent(c *gin.Context) {
	record, err := h.store.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "student does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toStudentView(record))
}

func (h *Handler) listStudents(c *gin.Context) {
	records, err := h.store.ListStudents(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toStudentViews(records))
}

type updateStudentRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	University      string `json:"university"`
	Degree          string `json:"degree"`
	GraduationYear  int    `json:"graduationYear"`
	Status          string `json:"status"`
	OverallProgress int    `json:"overallProgress"`
}

func (h *Handler) updateStudent(c *gin.Context) {
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondValidation(c, "name is required")
		return
	}
	status := storage.StudentStatus(req.Status)
	if !validStudentStatus(status) {
		h.respondError(c, errors.New(errors.CodeInvalidStatus, "unknown student status"))
		return
	}
	if req.OverallProgress < 0 || req.OverallProgress > 100 {
		h.respondError(c, errors.New(errors.CodeProgressOutOfRange, "overall progress must be between 0 and 100"))
		return
	}

	ctx := c.Request.Context()
	record, err := h.store.GetStudent(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "student does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}

	record.Name = req.Name
	record.Phone = strings.TrimSpace(req.Phone)
	record.University = strings.TrimSpace(req.University)
	record.Degree = strings.TrimSpace(req.Degree)
	record.GraduationYear = req.GraduationYear
	record.Status = status
	record.OverallProgress = req.OverallProgress
	record.UpdatedAt = h.now()
	if err := h.store.UpdateStudent(ctx, record); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toStudentView(record))
}

func (h *Handler) deleteStudent(c *gin.Context) {
	if err := h.store.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "student does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "student deleted")
}

func (h *Handler) listStudentEnrollments(c *gin.Context) {
	records, err := h.enrollments.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toEnrollmentViews(records))
}

func (h *Handler) listAvailableCourses(c *gin.Context) {
	records, err := h.enrollments.AvailableCourses(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCourseViews(records))
}

func (h *Handler) listStudentApplications(c *gin.Context) {
	records, err := h.placements.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toApplicationViews(records))
}

func (h *Handler) listStudentProjects(c *gin.Context) {
	records, err := h.store.ListProjectsByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProjectViews(records))
}

func (h *Handler) listStudentPayments(c *gin.Context) {
	records, err := h.store.ListPaymentsByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toPaymentViews(records))
}

// studentDashboard aggregates one student's recent activity: the five most
// recently accessed enrollments, the five newest projects, and the five
// closest due dates among projects still in flight.
func (h *Handler) studentDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	student, err := h.store.GetStudent(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "student does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}

	enrollments, err := h.store.ListEnrollmentsByStudent(ctx, student.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	projects, err := h.store.ListProjectsByStudent(ctx, student.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	recentEnrollments := append([]storage.Enrollment(nil), enrollments...)
	sort.SliceStable(recentEnrollments, func(i, j int) bool {
		return recentEnrollments[i].LastAccessedDate.After(recentEnrollments[j].LastAccessedDate)
	})

	var deadlines []storage.Project
	for _, project := range projects {
		if project.DueDate == nil {
			continue
		}
		if project.Status == storage.ProjectInProgress || project.Status == storage.ProjectNotStarted {
			deadlines = append(deadlines, project)
		}
	}
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(*deadlines[j].DueDate)
	})

	respondData(c, http.StatusOK, studentDashboardView{
		Student:           toStudentView(student),
		RecentEnrollments: toEnrollmentViews(headEnrollments(recentEnrollments, 5)),
		RecentProjects:    toProjectViews(headProjects(projects, 5)),
		UpcomingDeadlines: toProjectViews(headProjects(deadlines, 5)),
		Stats: dashboardStatsView{
			TotalCourses:  len(enrollments),
			TotalProjects: len(projects),
			AvgProgress:   student.OverallProgress,
		},
	})
}

func headEnrollments(records []storage.Enrollment, n int) []storage.Enrollment {
	if len(records) > n {
		return records[:n]
	}
	return records
}

func headProjects(records []storage.Project, n int) []storage.Project {
	if len(records) > n {
		return records[:n]
	}
	return records
}

func validStudentStatus(status storage.StudentStatus) bool {
	switch status {
	case storage.StudentActive, storage.StudentInactive,
		storage.StudentCompleted, storage.StudentDroppedOut:
		return true
	}
	return false
}
