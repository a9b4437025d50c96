package placement

import (
	"context"
	"testing"
	"time"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

func TestApplyCreatesAppliedRecord(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)

	got, err := svc.Apply(context.Background(), "stu-1", "int-1", ApplyInput{
		CoverLetter: "  Dear team  ",
		Resume:      "resume.pdf",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Status != storage.ApplicationApplied {
		t.Fatalf("status = %q, want %q", got.Status, storage.ApplicationApplied)
	}
	if got.CoverLetter != "Dear team" {
		t.Fatalf("cover letter = %q, want trimmed", got.CoverLetter)
	}
	if !got.AppliedDate.Equal(testNow) {
		t.Fatalf("applied date = %v, want %v", got.AppliedDate, testNow)
	}
	if len(store.created) != 1 {
		t.Fatalf("created len = %d, want 1", len(store.created))
	}
}

func TestApplyMapsDuplicatePair(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.createErr = storage.ErrAlreadyExists
	svc := newTestService(store)

	_, err := svc.Apply(context.Background(), "stu-1", "int-1", ApplyInput{})
	if !errors.IsCode(err, errors.CodeDuplicateApplication) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeDuplicateApplication)
	}
}

func TestApplyMapsUnavailableInternship(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.createErr = storage.ErrInternshipNotOpen
	svc := newTestService(store)

	_, err := svc.Apply(context.Background(), "stu-1", "int-closed", ApplyInput{})
	if !errors.IsCode(err, errors.CodeInternshipUnavailable) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeInternshipUnavailable)
	}
}

func TestApplyRequiresIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	if _, err := svc.Apply(context.Background(), "", "int-1", ApplyInput{}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("missing student code = %v, want %v", errors.GetCode(err), errors.CodeValidation)
	}
	if _, err := svc.Apply(context.Background(), "stu-1", " ", ApplyInput{}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("missing internship code = %v, want %v", errors.GetCode(err), errors.CodeValidation)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	_, err := svc.UpdateStatus(context.Background(), "app-1", ReviewInput{Status: "Ghosted"})
	if !errors.IsCode(err, errors.CodeInvalidStatus) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeInvalidStatus)
	}
}

func TestUpdateStatusRejectsScoreOutOfRange(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	for _, score := range []int{-1, 101} {
		s := score
		_, err := svc.UpdateStatus(context.Background(), "app-1", ReviewInput{
			Status: storage.ApplicationUnderReview,
			Score:  &s,
		})
		if !errors.IsCode(err, errors.CodeScoreOutOfRange) {
			t.Fatalf("score %d code = %v, want %v", score, errors.GetCode(err), errors.CodeScoreOutOfRange)
		}
	}
}

func TestUpdateStatusMapsNotFound(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.reviewErr = storage.ErrNotFound
	svc := newTestService(store)

	_, err := svc.UpdateStatus(context.Background(), "ghost", ReviewInput{Status: storage.ApplicationRejected})
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeNotFound)
	}
}

func TestUpdateStatusMapsSlotsExhausted(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.reviewErr = storage.ErrSlotsExhausted
	svc := newTestService(store)

	_, err := svc.UpdateStatus(context.Background(), "app-1", ReviewInput{Status: storage.ApplicationAccepted})
	if !errors.IsCode(err, errors.CodeSlotsExhausted) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeSlotsExhausted)
	}
}

func TestUpdateStatusPassesReviewThrough(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)

	score := 92
	got, err := svc.UpdateStatus(context.Background(), "app-1", ReviewInput{
		Status:     storage.ApplicationAccepted,
		Feedback:   " Great fit ",
		Score:      &score,
		ReviewedBy: "admin-1",
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != storage.ApplicationAccepted {
		t.Fatalf("status = %q, want %q", got.Status, storage.ApplicationAccepted)
	}
	if store.lastReview.Feedback != "Great fit" {
		t.Fatalf("feedback = %q, want trimmed", store.lastReview.Feedback)
	}
	if !store.lastReviewedAt.Equal(testNow) {
		t.Fatalf("reviewed at = %v, want %v", store.lastReviewedAt, testNow)
	}
}

var testNow = time.Date(2026, time.April, 12, 9, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.clock = func() time.Time { return testNow }
	svc.newID = func() string { return "app-test" }
	return svc
}

type fakeStore struct {
	created        []storage.Application
	createErr      error
	reviewErr      error
	lastReview     storage.ApplicationReview
	lastReviewedAt time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) CreateApplication(_ context.Context, application storage.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, application)
	return nil
}

func (f *fakeStore) GetApplication(_ context.Context, id string) (storage.Application, error) {
	return storage.Application{}, storage.ErrNotFound
}

func (f *fakeStore) ListApplicationsByInternship(_ context.Context, internshipID string) ([]storage.Application, error) {
	return nil, nil
}

func (f *fakeStore) ListApplicationsByStudent(_ context.Context, studentID string) ([]storage.Application, error) {
	return nil, nil
}

func (f *fakeStore) UpdateApplicationReview(_ context.Context, id string, review storage.ApplicationReview, reviewedAt time.Time) (storage.Application, error) {
	if f.reviewErr != nil {
		return storage.Application{}, f.reviewErr
	}
	f.lastReview = review
	f.lastReviewedAt = reviewedAt
	return storage.Application{
		ID:           id,
		Status:       review.Status,
		Feedback:     review.Feedback,
		Score:        review.Score,
		ReviewedBy:   review.ReviewedBy,
		ReviewedDate: &reviewedAt,
	}, nil
}

func (f *fakeStore) CreateInternship(_ context.Context, internship storage.Internship) error {
	return nil
}

func (f *fakeStore) GetInternship(_ context.Context, id string) (storage.Internship, error) {
	return storage.Internship{}, storage.ErrNotFound
}

func (f *fakeStore) ListInternships(_ context.Context) ([]storage.Internship, error) {
	return nil, nil
}

func (f *fakeStore) ListOpenInternships(_ context.Context, now time.Time) ([]storage.Internship, error) {
	return nil, nil
}

func (f *fakeStore) UpdateInternship(_ context.Context, internship storage.Internship) error {
	return nil
}

func (f *fakeStore) DeleteInternship(_ context.Context, id string) error { return nil }
