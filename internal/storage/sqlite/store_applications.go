package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/talentbridge/internhub/internal/storage"
)

const applicationColumns = `id, student_id, internship_id, status, applied_date,
       cover_letter, resume, portfolio, feedback, score, interview_date,
       reviewed_by, reviewed_date, created_at, updated_at`

// CreateApplication inserts one application and increments the target
// internship's application count inside a single transaction. A failed open
// check leaves the count untouched.
func (s *Store) CreateApplication(ctx context.Context, application storage.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(application.ID) == "" {
		return fmt.Errorf("application id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create application: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := requireRef(ctx, tx, "students", &application.StudentID); err != nil {
		return err
	}

	var existing int
	err = tx.QueryRowContext(
		ctx,
		`SELECT 1 FROM applications WHERE student_id = ? AND internship_id = ?`,
		application.StudentID,
		application.InternshipID,
	).Scan(&existing)
	if err == nil {
		return storage.ErrAlreadyExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check existing application: %w", err)
	}

	var internshipStatus string
	err = tx.QueryRowContext(
		ctx,
		`SELECT status FROM internships WHERE id = ?`,
		application.InternshipID,
	).Scan(&internshipStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrInternshipNotOpen
		}
		return fmt.Errorf("check internship status: %w", err)
	}
	if storage.InternshipStatus(internshipStatus) != storage.InternshipOpen {
		return storage.ErrInternshipNotOpen
	}

	createdAt := application.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	appliedDate := application.AppliedDate
	if appliedDate.IsZero() {
		appliedDate = createdAt
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		application.ID,
		application.StudentID,
		application.InternshipID,
		string(application.Status),
		toMillis(appliedDate),
		application.CoverLetter,
		application.Resume,
		application.Portfolio,
		application.Feedback,
		application.Score,
		toNullMillis(application.InterviewDate),
		application.ReviewedBy,
		toNullMillis(application.ReviewedDate),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "applications.student_id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create application: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE internships
		    SET application_count = application_count + 1, updated_at = ?
		  WHERE id = ?`,
		toMillis(createdAt),
		application.InternshipID,
	); err != nil {
		return fmt.Errorf("increment application count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create application: %w", err)
	}
	return nil
}

// GetApplication returns one application by id.
func (s *Store) GetApplication(ctx context.Context, id string) (storage.Application, error) {
	if err := ctx.Err(); err != nil {
		return storage.Application{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Application{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`,
		id,
	)
	application, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Application{}, storage.ErrNotFound
		}
		return storage.Application{}, fmt.Errorf("get application: %w", err)
	}
	return application, nil
}

// ListApplicationsByInternship returns applications for one internship, most
// recently applied first.
func (s *Store) ListApplicationsByInternship(ctx context.Context, internshipID string) ([]storage.Application, error) {
	return s.queryApplications(
		ctx,
		`SELECT `+applicationColumns+`
		   FROM applications
		  WHERE internship_id = ?
		  ORDER BY applied_date DESC, id ASC`,
		internshipID,
	)
}

// ListApplicationsByStudent returns one student's applications, most recently
// applied first.
func (s *Store) ListApplicationsByStudent(ctx context.Context, studentID string) ([]storage.Application, error) {
	return s.queryApplications(
		ctx,
		`SELECT `+applicationColumns+`
		   FROM applications
		  WHERE student_id = ?
		  ORDER BY applied_date DESC, id ASC`,
		studentID,
	)
}

func (s *Store) queryApplications(ctx context.Context, query string, args ...any) ([]storage.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var applications []storage.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return applications, nil
}

// UpdateApplicationReview applies a review inside a single transaction. A
// transition into Accepted claims one slot on the owning internship and flips
// it to Filled when capacity is reached; accepting with no slot left fails
// with ErrSlotsExhausted and leaves every row unchanged.
func (s *Store) UpdateApplicationReview(ctx context.Context, id string, review storage.ApplicationReview, reviewedAt time.Time) (storage.Application, error) {
	if err := ctx.Err(); err != nil {
		return storage.Application{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Application{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Application{}, fmt.Errorf("begin update application review: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var internshipID, previousStatus string
	err = tx.QueryRowContext(
		ctx,
		`SELECT internship_id, status FROM applications WHERE id = ?`,
		id,
	).Scan(&internshipID, &previousStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Application{}, storage.ErrNotFound
		}
		return storage.Application{}, fmt.Errorf("load application: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE applications
		    SET status = ?, feedback = ?, score = ?, interview_date = ?,
		        reviewed_by = ?, reviewed_date = ?, updated_at = ?
		  WHERE id = ?`,
		string(review.Status),
		review.Feedback,
		review.Score,
		toNullMillis(review.InterviewDate),
		review.ReviewedBy,
		toMillis(reviewedAt),
		toMillis(reviewedAt),
		id,
	); err != nil {
		return storage.Application{}, fmt.Errorf("update application review: %w", err)
	}

	// Only a transition into Accepted claims a slot; re-reviewing an already
	// accepted application must not double count.
	if review.Status == storage.ApplicationAccepted &&
		storage.ApplicationStatus(previousStatus) != storage.ApplicationAccepted {
		if err := s.claimSlot(ctx, tx, internshipID, reviewedAt); err != nil {
			return storage.Application{}, err
		}
	}

	row := tx.QueryRowContext(
		ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`,
		id,
	)
	application, err := scanApplication(row)
	if err != nil {
		return storage.Application{}, fmt.Errorf("reload application: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Application{}, fmt.Errorf("commit update application review: %w", err)
	}
	return application, nil
}

func (s *Store) claimSlot(ctx context.Context, tx *sql.Tx, internshipID string, at time.Time) error {
	var slots, filled int
	err := tx.QueryRowContext(
		ctx,
		`SELECT slots, filled_slots FROM internships WHERE id = ?`,
		internshipID,
	).Scan(&slots, &filled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrDanglingReference
		}
		return fmt.Errorf("load internship slots: %w", err)
	}
	if filled >= slots {
		return storage.ErrSlotsExhausted
	}
	filled++
	status := storage.InternshipOpen
	if filled >= slots {
		status = storage.InternshipFilled
	}
	query := `UPDATE internships SET filled_slots = ?, updated_at = ? WHERE id = ?`
	args := []any{filled, toMillis(at), internshipID}
	if status == storage.InternshipFilled {
		query = `UPDATE internships SET filled_slots = ?, status = ?, updated_at = ? WHERE id = ?`
		args = []any{filled, string(status), toMillis(at), internshipID}
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("claim internship slot: %w", err)
	}
	return nil
}

func scanApplication(scanner rowScanner) (storage.Application, error) {
	var application storage.Application
	var status string
	var score sql.NullInt64
	var interviewDate, reviewedDate sql.NullInt64
	var appliedDate, createdAt, updatedAt int64
	err := scanner.Scan(
		&application.ID,
		&application.StudentID,
		&application.InternshipID,
		&status,
		&appliedDate,
		&application.CoverLetter,
		&application.Resume,
		&application.Portfolio,
		&application.Feedback,
		&score,
		&interviewDate,
		&application.ReviewedBy,
		&reviewedDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Application{}, err
	}
	application.Status = storage.ApplicationStatus(status)
	application.AppliedDate = fromMillis(appliedDate)
	if score.Valid {
		value := int(score.Int64)
		application.Score = &value
	}
	application.InterviewDate = fromNullMillis(interviewDate)
	application.ReviewedDate = fromNullMillis(reviewedDate)
	application.CreatedAt = fromMillis(createdAt)
	application.UpdatedAt = fromMillis(updatedAt)
	return application, nil
}
