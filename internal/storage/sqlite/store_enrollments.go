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

const enrollmentColumns = `id, student_id, course_id, progress, status, enrollment_date,
       completion_date, last_accessed_date, created_at, updated_at`

// CreateEnrollment inserts one enrollment. The student and course must exist
// at write time; the unique (student_id, course_id) index rejects duplicate
// pairs regardless of the existing enrollment's status.
func (s *Store) CreateEnrollment(ctx context.Context, enrollment storage.Enrollment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(enrollment.ID) == "" {
		return fmt.Errorf("enrollment id is required")
	}
	if err := requireRef(ctx, s.sqlDB, "students", &enrollment.StudentID); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "courses", &enrollment.CourseID); err != nil {
		return err
	}
	createdAt := enrollment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	enrollmentDate := enrollment.EnrollmentDate
	if enrollmentDate.IsZero() {
		enrollmentDate = createdAt
	}
	lastAccessed := enrollment.LastAccessedDate
	if lastAccessed.IsZero() {
		lastAccessed = enrollmentDate
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO enrollments (`+enrollmentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		enrollment.ID,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.Progress,
		string(enrollment.Status),
		toMillis(enrollmentDate),
		toNullMillis(enrollment.CompletionDate),
		toMillis(lastAccessed),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "enrollments.student_id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// GetEnrollment returns the enrollment for a (student, course) pair.
func (s *Store) GetEnrollment(ctx context.Context, studentID, courseID string) (storage.Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return storage.Enrollment{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Enrollment{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+enrollmentColumns+`
		   FROM enrollments
		  WHERE student_id = ? AND course_id = ?`,
		studentID,
		courseID,
	)
	enrollment, err := scanEnrollment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Enrollment{}, storage.ErrNotFound
		}
		return storage.Enrollment{}, fmt.Errorf("get enrollment: %w", err)
	}
	return enrollment, nil
}

// ListEnrollmentsByStudent returns a student's enrollments, most recent first.
func (s *Store) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]storage.Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+enrollmentColumns+`
		   FROM enrollments
		  WHERE student_id = ?
		  ORDER BY enrollment_date DESC, id ASC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []storage.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("list enrollments: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// UpdateEnrollmentProgress sets progress, status, and last-accessed time on
// the (student, course) enrollment and returns the updated record.
func (s *Store) UpdateEnrollmentProgress(ctx context.Context, studentID, courseID string, progress int, status storage.EnrollmentStatus, accessedAt time.Time) (storage.Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return storage.Enrollment{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Enrollment{}, err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE enrollments
		    SET progress = ?, status = ?, last_accessed_date = ?, updated_at = ?
		  WHERE student_id = ? AND course_id = ?`,
		progress,
		string(status),
		toMillis(accessedAt),
		toMillis(accessedAt),
		studentID,
		courseID,
	)
	if err != nil {
		return storage.Enrollment{}, fmt.Errorf("update enrollment progress: %w", err)
	}
	if err := requireAffected(result, "update enrollment progress"); err != nil {
		return storage.Enrollment{}, err
	}
	return s.GetEnrollment(ctx, studentID, courseID)
}

func scanEnrollment(scanner rowScanner) (storage.Enrollment, error) {
	var enrollment storage.Enrollment
	var status string
	var completionDate sql.NullInt64
	var enrollmentDate, lastAccessed, createdAt, updatedAt int64
	err := scanner.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&status,
		&enrollmentDate,
		&completionDate,
		&lastAccessed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Enrollment{}, err
	}
	enrollment.Status = storage.EnrollmentStatus(status)
	enrollment.EnrollmentDate = fromMillis(enrollmentDate)
	enrollment.CompletionDate = fromNullMillis(completionDate)
	enrollment.LastAccessedDate = fromMillis(lastAccessed)
	enrollment.CreatedAt = fromMillis(createdAt)
	enrollment.UpdatedAt = fromMillis(updatedAt)
	return enrollment, nil
}
