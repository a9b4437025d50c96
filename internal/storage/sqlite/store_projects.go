package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/talentbridge/internhub/internal/storage"
)

const projectColumns = `id, student_id, course_id, internship_id, title,
       description, progress, status, due_date, created_at, updated_at`

func (s *Store) CreateProject(ctx context.Context, project storage.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if project.Progress < 0 || project.Progress > 100 {
		return fmt.Errorf("project progress %d out of range", project.Progress)
	}
	if err := requireRef(ctx, s.sqlDB, "students", &project.StudentID); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "courses", project.CourseID); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "internships", project.InternshipID); err != nil {
		return err
	}

	createdAt := project.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.StudentID,
		toNullString(project.CourseID),
		toNullString(project.InternshipID),
		project.Title,
		project.Description,
		project.Progress,
		string(project.Status),
		toNullMillis(project.DueDate),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "projects.id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, id string) (storage.Project, error) {
	if err := ctx.Err(); err != nil {
		return storage.Project{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Project{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`,
		id,
	)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Project{}, storage.ErrNotFound
		}
		return storage.Project{}, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]storage.Project, error) {
	return s.queryProjects(
		ctx,
		`SELECT `+projectColumns+`
		   FROM projects
		  ORDER BY created_at DESC, id ASC`,
	)
}

func (s *Store) ListProjectsByStudent(ctx context.Context, studentID string) ([]storage.Project, error) {
	return s.queryProjects(
		ctx,
		`SELECT `+projectColumns+`
		   FROM projects
		  WHERE student_id = ?
		  ORDER BY created_at DESC, id ASC`,
		studentID,
	)
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]storage.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []storage.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *Store) UpdateProject(ctx context.Context, project storage.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if project.Progress < 0 || project.Progress > 100 {
		return fmt.Errorf("project progress %d out of range", project.Progress)
	}
	if err := requireRef(ctx, s.sqlDB, "courses", project.CourseID); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "internships", project.InternshipID); err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE projects
		    SET course_id = ?, internship_id = ?, title = ?, description = ?,
		        progress = ?, status = ?, due_date = ?, updated_at = ?
		  WHERE id = ?`,
		toNullString(project.CourseID),
		toNullString(project.InternshipID),
		project.Title,
		project.Description,
		project.Progress,
		string(project.Status),
		toNullMillis(project.DueDate),
		toMillis(time.Now().UTC()),
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireAffected(result, "update project")
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "projects", id)
}

func scanProject(scanner rowScanner) (storage.Project, error) {
	var project storage.Project
	var status string
	var courseID, internshipID sql.NullString
	var dueDate sql.NullInt64
	var createdAt, updatedAt int64
	err := scanner.Scan(
		&project.ID,
		&project.StudentID,
		&courseID,
		&internshipID,
		&project.Title,
		&project.Description,
		&project.Progress,
		&status,
		&dueDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Project{}, err
	}
	project.CourseID = fromNullString(courseID)
	project.InternshipID = fromNullString(internshipID)
	project.Status = storage.ProjectStatus(status)
	project.DueDate = fromNullMillis(dueDate)
	project.CreatedAt = fromMillis(createdAt)
	project.UpdatedAt = fromMillis(updatedAt)
	return project, nil
}
