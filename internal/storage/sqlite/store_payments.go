package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/talentbridge/internhub/internal/storage"
)

const paymentColumns = `id, student_id, course_id, internship_id, invoice_id,
       description, amount, currency, status, payment_method, transaction_id,
       payment_date, due_date, paid_amount, created_at, updated_at`

// CreatePayment inserts one payment record. It returns ErrAlreadyExists when
// the invoice id is already taken.
func (s *Store) CreatePayment(ctx context.Context, payment storage.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "students", &payment.StudentID); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "courses", payment.CourseID); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "internships", payment.InternshipID); err != nil {
		return err
	}

	createdAt := payment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO payments (`+paymentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.StudentID,
		toNullString(payment.CourseID),
		toNullString(payment.InternshipID),
		payment.InvoiceID,
		payment.Description,
		payment.Amount,
		payment.Currency,
		string(payment.Status),
		payment.PaymentMethod,
		payment.TransactionID,
		toNullMillis(payment.PaymentDate),
		toNullMillis(payment.DueDate),
		payment.PaidAmount,
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "payments.invoice_id") || isUniqueViolation(err, "payments.id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (storage.Payment, error) {
	if err := ctx.Err(); err != nil {
		return storage.Payment{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Payment{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`,
		id,
	)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Payment{}, storage.ErrNotFound
		}
		return storage.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]storage.Payment, error) {
	return s.queryPayments(
		ctx,
		`SELECT `+paymentColumns+`
		   FROM payments
		  ORDER BY created_at DESC, id ASC`,
	)
}

func (s *Store) ListPaymentsByStudent(ctx context.Context, studentID string) ([]storage.Payment, error) {
	return s.queryPayments(
		ctx,
		`SELECT `+paymentColumns+`
		   FROM payments
		  WHERE student_id = ?
		  ORDER BY created_at DESC, id ASC`,
		studentID,
	)
}

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]storage.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []storage.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *Store) UpdatePayment(ctx context.Context, payment storage.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE payments
		    SET description = ?, amount = ?, currency = ?, status = ?,
		        payment_method = ?, transaction_id = ?, payment_date = ?,
		        due_date = ?, paid_amount = ?, updated_at = ?
		  WHERE id = ?`,
		payment.Description,
		payment.Amount,
		payment.Currency,
		string(payment.Status),
		payment.PaymentMethod,
		payment.TransactionID,
		toNullMillis(payment.PaymentDate),
		toNullMillis(payment.DueDate),
		payment.PaidAmount,
		toMillis(time.Now().UTC()),
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return requireAffected(result, "update payment")
}

func (s *Store) DeletePayment(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "payments", id)
}

func scanPayment(scanner rowScanner) (storage.Payment, error) {
	var payment storage.Payment
	var status string
	var courseID, internshipID sql.NullString
	var paymentDate, dueDate sql.NullInt64
	var createdAt, updatedAt int64
	err := scanner.Scan(
		&payment.ID,
		&payment.StudentID,
		&courseID,
		&internshipID,
		&payment.InvoiceID,
		&payment.Description,
		&payment.Amount,
		&payment.Currency,
		&status,
		&payment.PaymentMethod,
		&payment.TransactionID,
		&paymentDate,
		&dueDate,
		&payment.PaidAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Payment{}, err
	}
	payment.CourseID = fromNullString(courseID)
	payment.InternshipID = fromNullString(internshipID)
	payment.Status = storage.PaymentStatus(status)
	payment.PaymentDate = fromNullMillis(paymentDate)
	payment.DueDate = fromNullMillis(dueDate)
	payment.CreatedAt = fromMillis(createdAt)
	payment.UpdatedAt = fromMillis(updatedAt)
	return payment, nil
}
