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

const internshipColumns = `id, company_id, title, description, location, slots,
       filled_slots, status, application_count, application_deadline, posted_date,
       is_active, created_at, updated_at`

// CreateInternship inserts one internship posting. The owning company must
// exist at write time.
func (s *Store) CreateInternship(ctx context.Context, internship storage.Internship) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(internship.ID) == "" {
		return fmt.Errorf("internship id is required")
	}
	if strings.TrimSpace(internship.Title) == "" {
		return fmt.Errorf("internship title is required")
	}
	if internship.Slots < 1 {
		return fmt.Errorf("internship slots must be at least one")
	}
	if internship.FilledSlots < 0 || internship.FilledSlots > internship.Slots {
		return fmt.Errorf("filled slots must be between zero and slots")
	}
	if err := requireRef(ctx, s.sqlDB, "companies", &internship.CompanyID); err != nil {
		return err
	}
	createdAt := internship.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	postedDate := internship.PostedDate
	if postedDate.IsZero() {
		postedDate = createdAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO internships (`+internshipColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		internship.ID,
		internship.CompanyID,
		internship.Title,
		internship.Description,
		internship.Location,
		internship.Slots,
		internship.FilledSlots,
		string(internship.Status),
		internship.ApplicationCount,
		toNullMillis(internship.ApplicationDeadline),
		toMillis(postedDate),
		boolToInt(internship.IsActive),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "internships.id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create internship: %w", err)
	}
	return nil
}

// GetInternship returns one internship by id.
func (s *Store) GetInternship(ctx context.Context, id string) (storage.Internship, error) {
	if err := ctx.Err(); err != nil {
		return storage.Internship{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Internship{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE id = ?`,
		id,
	)
	internship, err := scanInternship(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Internship{}, storage.ErrNotFound
		}
		return storage.Internship{}, fmt.Errorf("get internship: %w", err)
	}
	return internship, nil
}

// ListInternships returns all internships, most recently posted first.
func (s *Store) ListInternships(ctx context.Context) ([]storage.Internship, error) {
	return s.queryInternships(
		ctx,
		`SELECT `+internshipColumns+` FROM internships ORDER BY posted_date DESC, id ASC`,
	)
}

// ListOpenInternships returns active postings still accepting applications at
// the given time, soonest deadline first.
func (s *Store) ListOpenInternships(ctx context.Context, now time.Time) ([]storage.Internship, error) {
	return s.queryInternships(
		ctx,
		`SELECT `+internshipColumns+`
		   FROM internships
		  WHERE is_active = 1
		    AND status IN (?, ?)
		    AND (application_deadline IS NULL OR application_deadline >= ?)
		  ORDER BY application_deadline ASC, id ASC`,
		string(storage.InternshipOpen),
		string(storage.InternshipPendingReview),
		toMillis(now),
	)
}

func (s *Store) queryInternships(ctx context.Context, query string, args ...any) ([]storage.Internship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	defer rows.Close()

	var internships []storage.Internship
	for rows.Next() {
		internship, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("list internships: %w", err)
		}
		internships = append(internships, internship)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	return internships, nil
}

// UpdateInternship replaces the mutable fields of one internship.
func (s *Store) UpdateInternship(ctx context.Context, internship storage.Internship) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if internship.Slots < 1 {
		return fmt.Errorf("internship slots must be at least one")
	}
	if internship.FilledSlots < 0 || internship.FilledSlots > internship.Slots {
		return fmt.Errorf("filled slots must be between zero and slots")
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE internships
		    SET title = ?, description = ?, location = ?, slots = ?, filled_slots = ?,
		        status = ?, application_deadline = ?, is_active = ?, updated_at = ?
		  WHERE id = ?`,
		internship.Title,
		internship.Description,
		internship.Location,
		internship.Slots,
		internship.FilledSlots,
		string(internship.Status),
		toNullMillis(internship.ApplicationDeadline),
		boolToInt(internship.IsActive),
		toMillis(time.Now().UTC()),
		internship.ID,
	)
	if err != nil {
		return fmt.Errorf("update internship: %w", err)
	}
	return requireAffected(result, "update internship")
}

// DeleteInternship removes one internship row. Applications are left in place.
func (s *Store) DeleteInternship(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "internships", id)
}

func scanInternship(scanner rowScanner) (storage.Internship, error) {
	var internship storage.Internship
	var status string
	var deadline sql.NullInt64
	var isActive int
	var postedDate, createdAt, updatedAt int64
	err := scanner.Scan(
		&internship.ID,
		&internship.CompanyID,
		&internship.Title,
		&internship.Description,
		&internship.Location,
		&internship.Slots,
		&internship.FilledSlots,
		&status,
		&internship.ApplicationCount,
		&deadline,
		&postedDate,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Internship{}, err
	}
	internship.Status = storage.InternshipStatus(status)
	internship.ApplicationDeadline = fromNullMillis(deadline)
	internship.PostedDate = fromMillis(postedDate)
	internship.IsActive = isActive != 0
	internship.CreatedAt = fromMillis(createdAt)
	internship.UpdatedAt = fromMillis(updatedAt)
	return internship, nil
}
