package rest

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/internhub/internal/auth"
	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

type signupRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	University     string `json:"university"`
	Degree         string `json:"degree"`
	GraduationYear int    `json:"graduationYear"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string      `json:"token"`
	Student studentView `json:"student"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
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
		Status:         storage.StudentActive,
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

	token, err := h.tokens.Issue(record.ID, record.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, authResponse{Token: token, Student: toStudentView(record)})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		respondValidation(c, "email and password are required")
		return
	}

	record, err := h.store.GetStudentByEmail(c.Request.Context(), email)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeInvalidCredentials, "invalid email or password"))
			return
		}
		h.respondError(c, err)
		return
	}
	if err := auth.CheckPassword(record.PasswordHash, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(record.ID, record.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, authResponse{Token: token, Student: toStudentView(record)})
}
