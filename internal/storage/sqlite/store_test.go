package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/talentbridge/internhub/internal/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetStudentRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	input := storage.Student{
		ID:              "stu-1",
		Name:            "Priya Sharma",
		Email:           "priya@example.com",
		PasswordHash:    "x",
		University:      "IIT Delhi",
		Degree:          "B.Tech CSE",
		GraduationYear:  2027,
		Status:          storage.StudentActive,
		OverallProgress: 40,
		JoinDate:        now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := store.CreateStudent(context.Background(), input); err != nil {
		t.Fatalf("create student: %v", err)
	}

	got, err := store.GetStudent(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	if got.Email != input.Email {
		t.Fatalf("email = %q, want %q", got.Email, input.Email)
	}
	if got.Status != storage.StudentActive {
		t.Fatalf("status = %q, want %q", got.Status, storage.StudentActive)
	}
	if !got.JoinDate.Equal(now) {
		t.Fatalf("join date = %v, want %v", got.JoinDate, now)
	}
}

func TestCreateStudentReturnsAlreadyExistsOnDuplicateEmail(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "same@example.com")

	err := store.CreateStudent(context.Background(), storage.Student{
		ID:           "stu-2",
		Name:         "Other",
		Email:        "same@example.com",
		PasswordHash: "x",
		Status:       storage.StudentActive,
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate email error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetStudentByEmailMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetStudentByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing email error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestDeleteStudentDoesNotCascade(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCourse(t, store, "course-1", true)
	seedEnrollment(t, store, "enr-1", "stu-1", "course-1")

	if err := store.DeleteStudent(context.Background(), "stu-1"); err != nil {
		t.Fatalf("delete student: %v", err)
	}

	// The enrollment row stays behind with a dangling student reference.
	got, err := store.GetEnrollment(context.Background(), "stu-1", "course-1")
	if err != nil {
		t.Fatalf("get enrollment after delete: %v", err)
	}
	if got.StudentID != "stu-1" {
		t.Fatalf("student id = %q, want stu-1", got.StudentID)
	}
}

func TestCreateInternshipRejectsMissingCompany(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.CreateInternship(context.Background(), storage.Internship{
		ID:        "int-1",
		CompanyID: "ghost",
		Title:     "Backend Intern",
		Slots:     2,
		Status:    storage.InternshipOpen,
		IsActive:  true,
	})
	if !errors.Is(err, storage.ErrDanglingReference) {
		t.Fatalf("missing company error = %v, want %v", err, storage.ErrDanglingReference)
	}
}

func TestListOpenInternshipsFiltersStatusAndDeadline(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedCompany(t, store, "comp-1")
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	create := func(id string, status storage.InternshipStatus, deadline *time.Time, active bool) {
		t.Helper()
		if err := store.CreateInternship(context.Background(), storage.Internship{
			ID:                  id,
			CompanyID:           "comp-1",
			Title:               "Intern " + id,
			Slots:               2,
			Status:              status,
			ApplicationDeadline: deadline,
			PostedDate:          past,
			IsActive:            active,
		}); err != nil {
			t.Fatalf("create internship %s: %v", id, err)
		}
	}
	create("int-open", storage.InternshipOpen, &future, true)
	create("int-pending", storage.InternshipPendingReview, nil, true)
	create("int-expired", storage.InternshipOpen, &past, true)
	create("int-closed", storage.InternshipClosed, &future, true)
	create("int-inactive", storage.InternshipOpen, &future, false)

	got, err := store.ListOpenInternships(context.Background(), now)
	if err != nil {
		t.Fatalf("list open internships: %v", err)
	}
	ids := make(map[string]bool, len(got))
	for _, internship := range got {
		ids[internship.ID] = true
	}
	if len(got) != 2 || !ids["int-open"] || !ids["int-pending"] {
		t.Fatalf("open internships = %v, want int-open and int-pending", ids)
	}
}

func TestListAvailableCoursesExcludesEnrolled(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCourse(t, store, "course-enrolled", true)
	seedCourse(t, store, "course-open", true)
	seedCourse(t, store, "course-inactive", false)
	seedEnrollment(t, store, "enr-1", "stu-1", "course-enrolled")

	got, err := store.ListAvailableCourses(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("list available courses: %v", err)
	}
	if len(got) != 1 || got[0].ID != "course-open" {
		t.Fatalf("available courses = %v, want only course-open", got)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "internhub.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func seedStudent(t *testing.T, store *Store, id, email string) {
	t.Helper()

	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	if err := store.CreateStudent(context.Background(), storage.Student{
		ID:           id,
		Name:         "Student " + id,
		Email:        email,
		PasswordHash: "x",
		Status:       storage.StudentActive,
		JoinDate:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("seed student %s: %v", id, err)
	}
}

func seedCourse(t *testing.T, store *Store, id string, active bool) {
	t.Helper()

	if err := store.CreateCourse(context.Background(), storage.Course{
		ID:       id,
		Title:    "Course " + id,
		Price:    4999,
		IsActive: active,
	}); err != nil {
		t.Fatalf("seed course %s: %v", id, err)
	}
}

func seedCompany(t *testing.T, store *Store, id string) {
	t.Helper()

	if err := store.CreateCompany(context.Background(), storage.Company{
		ID:     id,
		Name:   "Company " + id,
		Status: storage.CompanyActive,
	}); err != nil {
		t.Fatalf("seed company %s: %v", id, err)
	}
}

func seedInternship(t *testing.T, store *Store, id, companyID string, slots, filled int, status storage.InternshipStatus) {
	t.Helper()

	if err := store.CreateInternship(context.Background(), storage.Internship{
		ID:          id,
		CompanyID:   companyID,
		Title:       "Internship " + id,
		Slots:       slots,
		FilledSlots: filled,
		Status:      status,
		IsActive:    true,
	}); err != nil {
		t.Fatalf("seed internship %s: %v", id, err)
	}
}

func seedEnrollment(t *testing.T, store *Store, id, studentID, courseID string) {
	t.Helper()

	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	if err := store.CreateEnrollment(context.Background(), storage.Enrollment{
		ID:               id,
		StudentID:        studentID,
		CourseID:         courseID,
		Status:           storage.EnrollmentEnrolled,
		EnrollmentDate:   now,
		LastAccessedDate: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}); err != nil {
		t.Fatalf("seed enrollment %s: %v", id, err)
	}
}
