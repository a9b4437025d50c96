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

const courseColumns = `id, title, instructor, price, is_active, created_at, updated_at`

const companyColumns = `id, name, industry, size, location, contact_email, rating,
       total_hired, status, created_at, updated_at`

// CreateCourse inserts one course record.
func (s *Store) CreateCourse(ctx context.Context, course storage.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(course.ID) == "" {
		return fmt.Errorf("course id is required")
	}
	if strings.TrimSpace(course.Title) == "" {
		return fmt.Errorf("course title is required")
	}
	createdAt := course.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO courses (`+courseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		course.ID,
		course.Title,
		course.Instructor,
		course.Price,
		boolToInt(course.IsActive),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "courses.id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// GetCourse returns one course by id.
func (s *Store) GetCourse(ctx context.Context, id string) (storage.Course, error) {
	if err := ctx.Err(); err != nil {
		return storage.Course{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Course{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ?`,
		id,
	)
	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Course{}, storage.ErrNotFound
		}
		return storage.Course{}, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

// ListCourses returns all courses, most recently created first.
func (s *Store) ListCourses(ctx context.Context) ([]storage.Course, error) {
	return s.queryCourses(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC, id ASC`)
}

// ListAvailableCourses returns active courses the student has not enrolled in.
func (s *Store) ListAvailableCourses(ctx context.Context, studentID string) ([]storage.Course, error) {
	return s.queryCourses(
		ctx,
		`SELECT `+courseColumns+`
		   FROM courses
		  WHERE is_active = 1
		    AND id NOT IN (SELECT course_id FROM enrollments WHERE student_id = ?)
		  ORDER BY created_at DESC, id ASC`,
		studentID,
	)
}

func (s *Store) queryCourses(ctx context.Context, query string, args ...any) ([]storage.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []storage.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse replaces the mutable fields of one course.
func (s *Store) UpdateCourse(ctx context.Context, course storage.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE courses
		    SET title = ?, instructor = ?, price = ?, is_active = ?, updated_at = ?
		  WHERE id = ?`,
		course.Title,
		course.Instructor,
		course.Price,
		boolToInt(course.IsActive),
		toMillis(time.Now().UTC()),
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireAffected(result, "update course")
}

// DeleteCourse removes one course row. Dependent rows are left in place.
func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "courses", id)
}

func scanCourse(scanner rowScanner) (storage.Course, error) {
	var course storage.Course
	var isActive int
	var createdAt, updatedAt int64
	err := scanner.Scan(
		&course.ID,
		&course.Title,
		&course.Instructor,
		&course.Price,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Course{}, err
	}
	course.IsActive = isActive != 0
	course.CreatedAt = fromMillis(createdAt)
	course.UpdatedAt = fromMillis(updatedAt)
	return course, nil
}

// CreateCompany inserts one company record.
func (s *Store) CreateCompany(ctx context.Context, company storage.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(company.ID) == "" {
		return fmt.Errorf("company id is required")
	}
	if strings.TrimSpace(company.Name) == "" {
		return fmt.Errorf("company name is required")
	}
	createdAt := company.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO companies (`+companyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		company.ID,
		company.Name,
		company.Industry,
		company.Size,
		company.Location,
		company.ContactEmail,
		company.Rating,
		company.TotalHired,
		string(company.Status),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "companies.id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// GetCompany returns one company by id.
func (s *Store) GetCompany(ctx context.Context, id string) (storage.Company, error) {
	if err := ctx.Err(); err != nil {
		return storage.Company{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Company{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = ?`,
		id,
	)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Company{}, storage.ErrNotFound
		}
		return storage.Company{}, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

// ListCompanies returns all companies, most recently created first.
func (s *Store) ListCompanies(ctx context.Context) ([]storage.Company, error) {
	return s.queryCompanies(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC, id ASC`)
}

// ListTopCompanies returns Active companies, highest rated first, hires
// breaking rating ties.
func (s *Store) ListTopCompanies(ctx context.Context, limit int) ([]storage.Company, error) {
	query := `SELECT ` + companyColumns + `
	            FROM companies
	           WHERE status = ?
	           ORDER BY rating DESC, total_hired DESC, id ASC`
	args := []any{string(storage.CompanyActive)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryCompanies(ctx, query, args...)
}

// CountCompaniesByIndustry buckets Active companies by industry, largest
// bucket first.
func (s *Store) CountCompaniesByIndustry(ctx context.Context) ([]storage.CompanyGroupCount, error) {
	return s.countCompanyGroups(ctx, "industry")
}

// CountCompaniesBySize buckets Active companies by size, largest bucket first.
func (s *Store) CountCompaniesBySize(ctx context.Context) ([]storage.CompanyGroupCount, error) {
	return s.countCompanyGroups(ctx, "size")
}

// countCompanyGroups groups Active companies on one column. The column name is
// fixed by the two exported callers, never caller input.
func (s *Store) countCompanyGroups(ctx context.Context, column string) ([]storage.CompanyGroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+column+`, COUNT(*)
		   FROM companies
		  WHERE status = ?
		  GROUP BY `+column+`
		  ORDER BY COUNT(*) DESC, `+column+` ASC`,
		string(storage.CompanyActive),
	)
	if err != nil {
		return nil, fmt.Errorf("count companies by %s: %w", column, err)
	}
	defer rows.Close()

	var groups []storage.CompanyGroupCount
	for rows.Next() {
		var group storage.CompanyGroupCount
		if err := rows.Scan(&group.Key, &group.Count); err != nil {
			return nil, fmt.Errorf("count companies by %s: %w", column, err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count companies by %s: %w", column, err)
	}
	return groups, nil
}

func (s *Store) queryCompanies(ctx context.Context, query string, args ...any) ([]storage.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []storage.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("list companies: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// UpdateCompany replaces the mutable fields of one company.
func (s *Store) UpdateCompany(ctx context.Context, company storage.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE companies
		    SET name = ?, industry = ?, size = ?, location = ?, contact_email = ?,
		        rating = ?, total_hired = ?, status = ?, updated_at = ?
		  WHERE id = ?`,
		company.Name,
		company.Industry,
		company.Size,
		company.Location,
		company.ContactEmail,
		company.Rating,
		company.TotalHired,
		string(company.Status),
		toMillis(time.Now().UTC()),
		company.ID,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return requireAffected(result, "update company")
}

// DeleteCompany removes one company row. Its internships are left in place.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "companies", id)
}

func scanCompany(scanner rowScanner) (storage.Company, error) {
	var company storage.Company
	var status string
	var createdAt, updatedAt int64
	err := scanner.Scan(
		&company.ID,
		&company.Name,
		&company.Industry,
		&company.Size,
		&company.Location,
		&company.ContactEmail,
		&company.Rating,
		&company.TotalHired,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Company{}, err
	}
	company.Status = storage.CompanyStatus(status)
	company.CreatedAt = fromMillis(createdAt)
	company.UpdatedAt = fromMillis(updatedAt)
	return company, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
