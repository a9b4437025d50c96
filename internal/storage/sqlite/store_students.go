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

const studentColumns = `id, name, email, password_hash, phone, university, degree,
       graduation_year, status, overall_progress, join_date, created_at, updated_at`

// CreateStudent inserts one student record.
func (s *Store) CreateStudent(ctx context.Context, student storage.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(student.ID) == "" {
		return fmt.Errorf("student id is required")
	}
	if strings.TrimSpace(student.Name) == "" {
		return fmt.Errorf("student name is required")
	}
	if strings.TrimSpace(student.Email) == "" {
		return fmt.Errorf("student email is required")
	}

	now := time.Now().UTC()
	createdAt := student.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	joinDate := student.JoinDate
	if joinDate.IsZero() {
		joinDate = createdAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO students (`+studentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		student.ID,
		student.Name,
		student.Email,
		student.PasswordHash,
		student.Phone,
		student.University,
		student.Degree,
		student.GraduationYear,
		string(student.Status),
		student.OverallProgress,
		toMillis(joinDate),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "students.email") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// GetStudent returns one student by id.
func (s *Store) GetStudent(ctx context.Context, id string) (storage.Student, error) {
	if err := ctx.Err(); err != nil {
		return storage.Student{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Student{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`,
		id,
	)
	return scanStudent(row)
}

// GetStudentByEmail returns one student by unique email.
func (s *Store) GetStudentByEmail(ctx context.Context, email string) (storage.Student, error) {
	if err := ctx.Err(); err != nil {
		return storage.Student{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Student{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = ?`,
		email,
	)
	return scanStudent(row)
}

// ListStudents returns all students, most recently created first.
func (s *Store) ListStudents(ctx context.Context) ([]storage.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY created_at DESC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []storage.Student
	for rows.Next() {
		student, err := scanStudentRows(rows)
		if err != nil {
			return nil, fmt.Errorf("list students: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// UpdateStudent replaces the mutable fields of one student.
func (s *Store) UpdateStudent(ctx context.Context, student storage.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE students
		    SET name = ?, email = ?, password_hash = ?, phone = ?, university = ?,
		        degree = ?, graduation_year = ?, status = ?, overall_progress = ?,
		        updated_at = ?
		  WHERE id = ?`,
		student.Name,
		student.Email,
		student.PasswordHash,
		student.Phone,
		student.University,
		student.Degree,
		student.GraduationYear,
		string(student.Status),
		student.OverallProgress,
		toMillis(time.Now().UTC()),
		student.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "students.email") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("update student: %w", err)
	}
	return requireAffected(result, "update student")
}

// DeleteStudent removes one student row. Dependent rows are left in place.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "students", id)
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return requireAffected(result, "delete from "+table)
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row *sql.Row) (storage.Student, error) {
	student, err := scanStudentRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Student{}, storage.ErrNotFound
		}
		return storage.Student{}, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

func scanStudentRows(scanner rowScanner) (storage.Student, error) {
	var student storage.Student
	var status string
	var joinDate, createdAt, updatedAt int64
	err := scanner.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.PasswordHash,
		&student.Phone,
		&student.University,
		&student.Degree,
		&student.GraduationYear,
		&status,
		&student.OverallProgress,
		&joinDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Student{}, err
	}
	student.Status = storage.StudentStatus(status)
	student.JoinDate = fromMillis(joinDate)
	student.CreatedAt = fromMillis(createdAt)
	student.UpdatedAt = fromMillis(updatedAt)
	return student, nil
}
