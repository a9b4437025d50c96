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

type paymentRequest struct {
	StudentID    string     `json:"studentId"`
	CourseID     *string    `json:"courseId"`
	InternshipID *string    `json:"internshipId"`
	InvoiceID    string     `json:"invoiceId"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	DueDate      *time.Time `json:"dueDate"`
}

func (h *Handler) createPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	if req.StudentID == "" {
		respondValidation(c, "studentId is required")
		return
	}
	if req.Amount <= 0 {
		respondValidation(c, "amount must be positive")
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	now := h.now()
	record := storage.Payment{
		ID:           h.newID(),
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		InternshipID: req.InternshipID,
		InvoiceID:    strings.TrimSpace(req.InvoiceID),
		Description:  strings.TrimSpace(req.Description),
		Amount:       req.Amount,
		Currency:     currency,
		Status:       storage.PaymentPending,
		DueDate:      req.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if record.InvoiceID == "" {
		record.InvoiceID = invoiceID(record.ID)
	}
	if err := h.store.CreatePayment(c.Request.Context(), record); err != nil {
		if stderrors.Is(err, storage.ErrAlreadyExists) {
			h.respondError(c, errors.New(errors.CodeDuplicateInvoice, "invoice id is already in use"))
			return
		}
		if stderrors.Is(err, storage.ErrDanglingReference) {
			h.respondError(c, errors.New(errors.CodeNotFound, "referenced record does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toPaymentView(record))
}

func (h *Handler) getPayment(c *gin.Context) {
	record, err := h.store.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "payment does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toPaymentView(record))
}

func (h *Handler) listPayments(c *gin.Context) {
	records, err := h.store.ListPayments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toPaymentViews(records))
}

type payRequest struct {
	PaymentMethod string   `json:"paymentMethod"`
	TransactionID string   `json:"transactionId"`
	PaidAmount    *float64 `json:"paidAmount"`
}

// markPaymentPaid settles a pending payment. The simulated gateway accepts
// any method and fills in a transaction id when the caller omits one.
func (h *Handler) markPaymentPaid(c *gin.Context) {
	var req payRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "invalid request body")
			return
		}
	}

	ctx := c.Request.Context()
	record, err := h.store.GetPayment(ctx, c.Param("id"))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "payment does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	if record.Status == storage.PaymentPaid {
		h.respondError(c, errors.New(errors.CodeAlreadyPaid, "payment is already paid"))
		return
	}

	now := h.now()
	record.Status = storage.PaymentPaid
	record.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	if record.PaymentMethod == "" {
		record.PaymentMethod = "card"
	}
	record.TransactionID = strings.TrimSpace(req.TransactionID)
	if record.TransactionID == "" {
		record.TransactionID = transactionID(h.newID())
	}
	record.PaidAmount = record.Amount
	if req.PaidAmount != nil {
		if *req.PaidAmount <= 0 {
			respondValidation(c, "paidAmount must be positive")
			return
		}
		record.PaidAmount = *req.PaidAmount
	}
	record.PaymentDate = &now
	record.UpdatedAt = now
	if err := h.store.UpdatePayment(ctx, record); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toPaymentView(record))
}

func (h *Handler) deletePayment(c *gin.Context) {
	if err := h.store.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			h.respondError(c, errors.New(errors.CodeNotFound, "payment does not exist"))
			return
		}
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "payment deleted")
}

func invoiceID(id string) string {
	return "INV-" + strings.ToUpper(idFragment(id))
}

func transactionID(id string) string {
	return "TXN-" + strings.ToUpper(idFragment(id))
}

func idFragment(id string) string {
	trimmed := strings.ReplaceAll(id, "-", "")
	if len(trimmed) > 12 {
		trimmed = trimmed[:12]
	}
	return trimmed
}
