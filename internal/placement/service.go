// Package placement implements the internship application workflow and its
// slot accounting.
package placement

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

// Store is the persistence surface the placement workflow needs.
type Store interface {
	storage.ApplicationStore
	storage.InternshipStore
}

// Service runs application operations against the store.
type Service struct {
	store Store
	clock func() time.Time
	newID func() string
}

// NewService creates a placement service backed by the given store.
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

// ApplyInput carries the optional fields of an application.
type ApplyInput struct {
	CoverLetter string
	Resume      string
	Portfolio   string
}

// Apply creates an application for the pair and bumps the internship's
// application count. The internship must exist and be Open.
func (s *Service) Apply(ctx context.Context, studentID, internshipID string, input ApplyInput) (storage.Application, error) {
	studentID = strings.TrimSpace(studentID)
	internshipID = strings.TrimSpace(internshipID)
	if studentID == "" {
		return storage.Application{}, errors.New(errors.CodeValidation, "student id is required")
	}
	if internshipID == "" {
		return storage.Application{}, errors.New(errors.CodeValidation, "internship id is required")
	}

	now := s.now()
	record := storage.Application{
		ID:           s.newID(),
		StudentID:    studentID,
		InternshipID: internshipID,
		Status:       storage.ApplicationApplied,
		AppliedDate:  now,
		CoverLetter:  strings.TrimSpace(input.CoverLetter),
		Resume:       strings.TrimSpace(input.Resume),
		Portfolio:    strings.TrimSpace(input.Portfolio),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateApplication(ctx, record); err != nil {
		switch {
		case stderrors.Is(err, storage.ErrAlreadyExists):
			return storage.Application{}, errors.WithMetadata(
				errors.CodeDuplicateApplication,
				"student has already applied to this internship",
				map[string]string{"student_id": studentID, "internship_id": internshipID},
			)
		case stderrors.Is(err, storage.ErrInternshipNotOpen):
			return storage.Application{}, errors.WithMetadata(
				errors.CodeInternshipUnavailable,
				"internship is not open for applications",
				map[string]string{"internship_id": internshipID},
			)
		case stderrors.Is(err, storage.ErrDanglingReference):
			return storage.Application{}, errors.New(errors.CodeNotFound, "student does not exist")
		}
		return storage.Application{}, errors.Wrap(errors.CodeUnknown, "create application", err)
	}
	return record, nil
}

// ReviewInput carries the fields an admin sets when reviewing an application.
type ReviewInput struct {
	Status        storage.ApplicationStatus
	Feedback      string
	Score         *int
	InterviewDate *time.Time
	ReviewedBy    string
}

// UpdateStatus applies a review to the application. A transition into
// Accepted claims a slot on the owning internship; when no slot is left the
// whole update is rejected with SlotsExhausted.
func (s *Service) UpdateStatus(ctx context.Context, applicationID string, input ReviewInput) (storage.Application, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return storage.Application{}, errors.New(errors.CodeValidation, "application id is required")
	}
	if !validApplicationStatus(input.Status) {
		return storage.Application{}, errors.New(errors.CodeInvalidStatus, "unknown application status")
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		return storage.Application{}, errors.WithMetadata(
			errors.CodeScoreOutOfRange,
			"score must be between 0 and 100",
			map[string]string{"score": strconv.Itoa(*input.Score)},
		)
	}

	review := storage.ApplicationReview{
		Status:        input.Status,
		Feedback:      strings.TrimSpace(input.Feedback),
		Score:         input.Score,
		InterviewDate: input.InterviewDate,
		ReviewedBy:    strings.TrimSpace(input.ReviewedBy),
	}
	record, err := s.store.UpdateApplicationReview(ctx, applicationID, review, s.now())
	if err != nil {
		switch {
		case stderrors.Is(err, storage.ErrNotFound):
			return storage.Application{}, errors.WithMetadata(
				errors.CodeNotFound,
				"application does not exist",
				map[string]string{"application_id": applicationID},
			)
		case stderrors.Is(err, storage.ErrSlotsExhausted):
			return storage.Application{}, errors.New(
				errors.CodeSlotsExhausted,
				"internship has no remaining slots",
			)
		case stderrors.Is(err, storage.ErrDanglingReference):
			return storage.Application{}, errors.New(
				errors.CodeDanglingReference,
				"application references a deleted internship",
			)
		}
		return storage.Application{}, errors.Wrap(errors.CodeUnknown, "update application status", err)
	}
	return record, nil
}

// ListByInternship returns an internship's applications, most recent first.
func (s *Service) ListByInternship(ctx context.Context, internshipID string) ([]storage.Application, error) {
	internshipID = strings.TrimSpace(internshipID)
	if internshipID == "" {
		return nil, errors.New(errors.CodeValidation, "internship id is required")
	}
	records, err := s.store.ListApplicationsByInternship(ctx, internshipID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "list applications", err)
	}
	return records, nil
}

// ListByStudent returns a student's applications, most recent first.
func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]storage.Application, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, errors.New(errors.CodeValidation, "student id is required")
	}
	records, err := s.store.ListApplicationsByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "list applications", err)
	}
	return records, nil
}

// OpenInternships returns internships students can currently apply to.
func (s *Service) OpenInternships(ctx context.Context) ([]storage.Internship, error) {
	records, err := s.store.ListOpenInternships(ctx, s.now())
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "list open internships", err)
	}
	return records, nil
}

func validApplicationStatus(status storage.ApplicationStatus) bool {
	switch status {
	case storage.ApplicationApplied, storage.ApplicationUnderReview,
		storage.ApplicationInterviewScheduled, storage.ApplicationAccepted,
		storage.ApplicationRejected, storage.ApplicationWithdrawn:
		return true
	}
	return false
}
