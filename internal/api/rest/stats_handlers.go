package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) studentStats(c *gin.Context) {
	result, err := h.stats.Students(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *Handler) companyStats(c *gin.Context) {
	result, err := h.stats.Companies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *Handler) internshipStats(c *gin.Context) {
	result, err := h.stats.Internships(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *Handler) paymentStats(c *gin.Context) {
	result, err := h.stats.Payments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *Handler) statsOverview(c *gin.Context) {
	result, err := h.stats.OverviewAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}
