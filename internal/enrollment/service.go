// Package enrollment implements the student-course enrollment workflow.
package enrollment

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/id"
	"github.com/talentbridge/internhub/internal/storage"
)

// Store is the persistence surface the enrollment workflow needs.
type Store interface {
	storage.EnrollmentStore
	storage.CourseStore
}

// Service runs enrollment operations against the store.
type Service struct {
	store Store
	clock func() time.Time
	newID func() string
}

// NewService creates an enrollment service backed by the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		clock: time.Now,
		newID: id.New,
	}
}

func (s *Service) now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

// Enroll creates an enrollment for the pair. An existing enrollment blocks
// re-enrollment regardless of its status, a previously dropped one included.
func (s *Service) Enroll(ctx context.Context, studentID, courseID string) (storage.Enrollment, error) {
	studentID = strings.TrimSpace(studentID)
	courseID = strings.TrimSpace(courseID)
	if studentID == "" {
		return storage.Enrollment{}, errors.New(errors.CodeValidation, "student id is required")
	}
	if courseID == "" {
		return storage.Enrollment{}, errors.New(errors.CodeValidation, "course id is required")
	}

	if _, err := s.store.GetEnrollment(ctx, studentID, courseID); err == nil {
		return storage.Enrollment{}, errors.WithMetadata(
			errors.CodeDuplicateEnrollment,
			"student is already enrolled in this course",
			map[string]string{"student_id": studentID, "course_id": courseID},
		)
	} else if !stderrors.Is(err, storage.ErrNotFound) {
		return storage.Enrollment{}, errors.Wrap(errors.CodeUnknown, "check enrollment", err)
	}

	now := s.now()
	record := storage.Enrollment{
		ID:               s.newID(),
		StudentID:        studentID,
		CourseID:         courseID,
		Progress:         0,
		Status:           storage.EnrollmentEnrolled,
		EnrollmentDate:   now,
		LastAccessedDate: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreateEnrollment(ctx, record); err != nil {
		switch {
		case stderrors.Is(err, storage.ErrAlreadyExists):
			return storage.Enrollment{}, errors.WithMetadata(
				errors.CodeDuplicateEnrollment,
				"student is already enrolled in this course",
				map[string]string{"student_id": studentID, "course_id": courseID},
			)
		case stderrors.Is(err, storage.ErrDanglingReference):
			return storage.Enrollment{}, errors.New(errors.CodeNotFound, "student or course does not exist")
		}
		return storage.Enrollment{}, errors.Wrap(errors.CodeUnknown, "create enrollment", err)
	}
	return record, nil
}

// UpdateProgress sets progress and status on the pair's enrollment and stamps
// the last-accessed time.
func (s *Service) UpdateProgress(ctx context.Context, studentID, courseID string, progress int, status storage.EnrollmentStatus) (storage.Enrollment, error) {
	studentID = strings.TrimSpace(studentID)
	courseID = strings.TrimSpace(courseID)
	if studentID == "" {
		return storage.Enrollment{}, errors.New(errors.CodeValidation, "student id is required")
	}
	if courseID == "" {
		return storage.Enrollment{}, errors.New(errors.CodeValidation, "course id is required")
	}
	if progress < 0 || progress > 100 {
		return storage.Enrollment{}, errors.WithMetadata(
			errors.CodeProgressOutOfRange,
			"progress must be between 0 and 100",
			map[string]string{"progress": strconv.Itoa(progress)},
		)
	}
	if !validEnrollmentStatus(status) {
		return storage.Enrollment{}, errors.New(errors.CodeInvalidStatus, "unknown enrollment status")
	}

	record, err := s.store.UpdateEnrollmentProgress(ctx, studentID, courseID, progress, status, s.now())
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return storage.Enrollment{}, errors.WithMetadata(
				errors.CodeNotFound,
				"enrollment does not exist",
				map[string]string{"student_id": studentID, "course_id": courseID},
			)
		}
		return storage.Enrollment{}, errors.Wrap(errors.CodeUnknown, "update enrollment progress", err)
	}
	return record, nil
}

// ListByStudent returns the student's enrollments, most recent first.
func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]storage.Enrollment, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, errors.New(errors.CodeValidation, "student id is required")
	}
	records, err := s.store.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "list enrollments", err)
	}
	return records, nil
}

// AvailableCourses returns active courses the student has not enrolled in.
func (s *Service) AvailableCourses(ctx context.Context, studentID string) ([]storage.Course, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, errors.New(errors.CodeValidation, "student id is required")
	}
	courses, err := s.store.ListAvailableCourses(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "list available courses", err)
	}
	return courses, nil
}

func validEnrollmentStatus(status storage.EnrollmentStatus) bool {
	switch status {
	case storage.EnrollmentEnrolled, storage.EnrollmentInProgress,
		storage.EnrollmentCompleted, storage.EnrollmentDropped:
		return true
	}
	return false
}
