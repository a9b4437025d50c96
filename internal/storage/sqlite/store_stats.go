package sqlite

import (
	"context"
	"fmt"

	"github.com/talentbridge/internhub/internal/storage"
)

// StudentAggregates reads student totals in one scan over the table.
func (s *Store) StudentAggregates(ctx context.Context) (storage.StudentAggregates, error) {
	if err := ctx.Err(); err != nil {
		return storage.StudentAggregates{}, err
	}
	if err := s.ready(); err != nil {
		return storage.StudentAggregates{}, err
	}

	aggregates := storage.StudentAggregates{ByStatus: map[storage.StudentStatus]int{}}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(overall_progress), 0)
		   FROM students
		  GROUP BY status`,
	)
	if err != nil {
		return storage.StudentAggregates{}, fmt.Errorf("student aggregates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, progressSum int
		if err := rows.Scan(&status, &count, &progressSum); err != nil {
			return storage.StudentAggregates{}, fmt.Errorf("student aggregates: %w", err)
		}
		aggregates.ByStatus[storage.StudentStatus(status)] = count
		aggregates.Total += count
		aggregates.ProgressSum += progressSum
	}
	if err := rows.Err(); err != nil {
		return storage.StudentAggregates{}, fmt.Errorf("student aggregates: %w", err)
	}
	return aggregates, nil
}

// CompanyAggregates reads company totals in one scan. The rating sum spans
// every active company, unrated ones included, so the dashboard average
// divides by the full active head count.
func (s *Store) CompanyAggregates(ctx context.Context) (storage.CompanyAggregates, error) {
	if err := ctx.Err(); err != nil {
		return storage.CompanyAggregates{}, err
	}
	if err := s.ready(); err != nil {
		return storage.CompanyAggregates{}, err
	}

	aggregates := storage.CompanyAggregates{ByStatus: map[storage.CompanyStatus]int{}}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(total_hired), 0), COALESCE(SUM(rating), 0)
		   FROM companies
		  GROUP BY status`,
	)
	if err != nil {
		return storage.CompanyAggregates{}, fmt.Errorf("company aggregates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, hired int
		var ratingSum float64
		if err := rows.Scan(&status, &count, &hired, &ratingSum); err != nil {
			return storage.CompanyAggregates{}, fmt.Errorf("company aggregates: %w", err)
		}
		companyStatus := storage.CompanyStatus(status)
		aggregates.ByStatus[companyStatus] = count
		aggregates.Total += count
		aggregates.TotalHired += hired
		if companyStatus == storage.CompanyActive {
			aggregates.ActiveCount = count
			aggregates.ActiveRatingSum = ratingSum
		}
	}
	if err := rows.Err(); err != nil {
		return storage.CompanyAggregates{}, fmt.Errorf("company aggregates: %w", err)
	}
	return aggregates, nil
}

// InternshipAggregates reads internship counts and slot sums. Applications
// are counted from their own table, not the per-internship counter, so rows
// left behind by a deleted internship still show up in the total.
func (s *Store) InternshipAggregates(ctx context.Context) (storage.InternshipAggregates, error) {
	if err := ctx.Err(); err != nil {
		return storage.InternshipAggregates{}, err
	}
	if err := s.ready(); err != nil {
		return storage.InternshipAggregates{}, err
	}

	aggregates := storage.InternshipAggregates{ByStatus: map[storage.InternshipStatus]int{}}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT status, COUNT(*),
		        COALESCE(SUM(slots), 0),
		        COALESCE(SUM(filled_slots), 0)
		   FROM internships
		  GROUP BY status`,
	)
	if err != nil {
		return storage.InternshipAggregates{}, fmt.Errorf("internship aggregates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, slots, filled int
		if err := rows.Scan(&status, &count, &slots, &filled); err != nil {
			return storage.InternshipAggregates{}, fmt.Errorf("internship aggregates: %w", err)
		}
		aggregates.ByStatus[storage.InternshipStatus(status)] = count
		aggregates.Total += count
		aggregates.TotalSlots += slots
		aggregates.FilledSlots += filled
	}
	if err := rows.Err(); err != nil {
		return storage.InternshipAggregates{}, fmt.Errorf("internship aggregates: %w", err)
	}

	err = s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).
		Scan(&aggregates.TotalApplications)
	if err != nil {
		return storage.InternshipAggregates{}, fmt.Errorf("internship aggregates: %w", err)
	}
	return aggregates, nil
}

// PaymentAggregates reads payment counts plus the paid and pending sums.
// Paid rows contribute their paid amount; Pending rows their billed amount.
func (s *Store) PaymentAggregates(ctx context.Context) (storage.PaymentAggregates, error) {
	if err := ctx.Err(); err != nil {
		return storage.PaymentAggregates{}, err
	}
	if err := s.ready(); err != nil {
		return storage.PaymentAggregates{}, err
	}

	aggregates := storage.PaymentAggregates{ByStatus: map[storage.PaymentStatus]int{}}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(paid_amount), 0), COALESCE(SUM(amount), 0)
		   FROM payments
		  GROUP BY status`,
	)
	if err != nil {
		return storage.PaymentAggregates{}, fmt.Errorf("payment aggregates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var paidSum, amountSum float64
		if err := rows.Scan(&status, &count, &paidSum, &amountSum); err != nil {
			return storage.PaymentAggregates{}, fmt.Errorf("payment aggregates: %w", err)
		}
		paymentStatus := storage.PaymentStatus(status)
		aggregates.ByStatus[paymentStatus] = count
		aggregates.Total += count
		switch paymentStatus {
		case storage.PaymentPaid:
			aggregates.PaidSum += paidSum
		case storage.PaymentPending:
			aggregates.PendingSum += amountSum
		}
	}
	if err := rows.Err(); err != nil {
		return storage.PaymentAggregates{}, fmt.Errorf("payment aggregates: %w", err)
	}
	return aggregates, nil
}
