package rest

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

type courseRequest struct {
	Title      string  `json:"title"`
	Instructor string  `json:"instructor"`
	Price      float64 `json:"price"`
	IsActive   *bool   `json:"isActive"`
}

func (h *Handler) createCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondValidation(c, "title is required")
		return
	}
	if req.Price < 0 {
		respondValidation(c, "price must not be negative")
		return
	}

	now := h.now()
	record := storage.Course{
		ID:         h.newID(),
		Title:      req.Title,
		Instructor: strings.TrimSpace(req.Instructor),
		Price:      req.Price,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	if err := h.store.CreateCourse(c.Request.Context(), record); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toCourseView(record))
}

func (h *Handler) getCourse(c *gin.Context) {
	record, err := h.store.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "course does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCourseView(record))
}

func (h *Handler) listCourses(c *gin.Context) {
	records, err := h.store.ListCourses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCourseViews(records))
}

func (h *Handler) updateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondValidation(c, "title is required")
		return
	}
	if req.Price < 0 {
		respondValidation(c, "price must not be negative")
		return
	}

	ctx := c.Request.Context()
	record, err := h.store.GetCourse(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "course does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}

	record.Title = req.Title
	record.Instructor = strings.TrimSpace(req.Instructor)
	record.Price = req.Price
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	record.UpdatedAt = h.now()
	if err := h.store.UpdateCourse(ctx, record); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCourseView(record))
}

func (h *Handler) deleteCourse(c *gin.Context) {
	if err := h.store.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "course does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "course deleted")
}

type companyRequest struct {
	Name         string  `json:"name"`
	Industry     string  `json:"industry"`
	Size         string  `json:"size"`
	Location     string  `json:"location"`
	ContactEmail string  `json:"contactEmail"`
	Rating       float64 `json:"rating"`
	TotalHired   int     `json:"totalHired"`
	Status       string  `json:"status"`
}

func (r *companyRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New(errors.CodeValidation, "name is required")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return errors.New(errors.CodeRatingOutOfRange, "rating must be between 0 and 5")
	}
	if r.Status != "" && !validCompanyStatus(storage.CompanyStatus(r.Status)) {
		return errors.New(errors.CodeInvalidStatus, "unknown company status")
	}
	return nil
}

func (h *Handler) createCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}
	status := storage.CompanyActive
	if req.Status != "" {
		status = storage.CompanyStatus(req.Status)
	}

	now := h.now()
	record := storage.Company{
		ID:           h.newID(),
		Name:         req.Name,
		Industry:     strings.TrimSpace(req.Industry),
		Size:         strings.TrimSpace(req.Size),
		Location:     strings.TrimSpace(req.Location),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Rating:       req.Rating,
		TotalHired:   req.TotalHired,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.store.CreateCompany(c.Request.Context(), record); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toCompanyView(record))
}

func (h *Handler) getCompany(c *gin.Context) {
	record, err := h.store.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "company does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCompanyView(record))
}

func (h *Handler) listCompanies(c *gin.Context) {
	records, err := h.store.ListCompanies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCompanyViews(records))
}

// topCompanies returns the highest-rated Active companies. ?limit= caps the
// result, defaulting to 5.
func (h *Handler) topCompanies(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondValidation(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	records, err := h.store.ListTopCompanies(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCompanyViews(records))
}

func (h *Handler) companiesByIndustry(c *gin.Context) {
	groups, err := h.store.CountCompaniesByIndustry(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCompanyGroupViews("industry", groups))
}

func (h *Handler) companiesBySize(c *gin.Context) {
	groups, err := h.store.CountCompaniesBySize(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCompanyGroupViews("size", groups))
}

func (h *Handler) updateCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	record, err := h.store.GetCompany(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "company does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}

	record.Name = req.Name
	record.Industry = strings.TrimSpace(req.Industry)
	record.Size = strings.TrimSpace(req.Size)
	record.Location = strings.TrimSpace(req.Location)
	record.ContactEmail = strings.TrimSpace(req.ContactEmail)
	record.Rating = req.Rating
	record.TotalHired = req.TotalHired
	if req.Status != "" {
		record.Status = storage.CompanyStatus(req.Status)
	}
	record.UpdatedAt = h.now()
	if err := h.store.UpdateCompany(ctx, record); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCompanyView(record))
}

func (h *Handler) deleteCompany(c *gin.Context) {
	if err := h.store.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "company does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "company deleted")
}

func validCompanyStatus(status storage.CompanyStatus) bool {
	switch status {
	case storage.CompanyActive, storage.CompanyInactive, storage.CompanySuspended:
		return true
	}
	return false
}
