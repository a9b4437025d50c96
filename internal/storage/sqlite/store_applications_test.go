package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/talentbridge/internhub/internal/storage"
)

func TestCreateApplicationIncrementsApplicationCount(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 2, 0, storage.InternshipOpen)

	if err := store.CreateApplication(context.Background(), storage.Application{
		ID:           "app-1",
		StudentID:    "stu-1",
		InternshipID: "int-1",
		Status:       storage.ApplicationApplied,
	}); err != nil {
		t.Fatalf("create application: %v", err)
	}

	internship, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	if internship.ApplicationCount != 1 {
		t.Fatalf("application count = %d, want 1", internship.ApplicationCount)
	}
}

func TestCreateApplicationRejectsDuplicatePair(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 2, 0, storage.InternshipOpen)

	first := storage.Application{
		ID:           "app-1",
		StudentID:    "stu-1",
		InternshipID: "int-1",
		Status:       storage.ApplicationApplied,
	}
	if err := store.CreateApplication(context.Background(), first); err != nil {
		t.Fatalf("create first application: %v", err)
	}

	second := first
	second.ID = "app-2"
	err := store.CreateApplication(context.Background(), second)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate application error = %v, want %v", err, storage.ErrAlreadyExists)
	}

	// The failed attempt must not bump the count.
	internship, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	if internship.ApplicationCount != 1 {
		t.Fatalf("application count = %d, want 1", internship.ApplicationCount)
	}
}

func TestCreateApplicationRejectsNonOpenInternship(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-filled", "comp-1", 2, 2, storage.InternshipFilled)

	err := store.CreateApplication(context.Background(), storage.Application{
		ID:           "app-1",
		StudentID:    "stu-1",
		InternshipID: "int-filled",
		Status:       storage.ApplicationApplied,
	})
	if !errors.Is(err, storage.ErrInternshipNotOpen) {
		t.Fatalf("non-open internship error = %v, want %v", err, storage.ErrInternshipNotOpen)
	}

	err = store.CreateApplication(context.Background(), storage.Application{
		ID:           "app-2",
		StudentID:    "stu-1",
		InternshipID: "int-ghost",
		Status:       storage.ApplicationApplied,
	})
	if !errors.Is(err, storage.ErrInternshipNotOpen) {
		t.Fatalf("missing internship error = %v, want %v", err, storage.ErrInternshipNotOpen)
	}
}

func TestUpdateApplicationReviewAcceptClaimsSlot(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 3, 0, storage.InternshipOpen)
	seedApplication(t, store, "app-1", "stu-1", "int-1")

	reviewedAt := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	score := 88
	got, err := store.UpdateApplicationReview(context.Background(), "app-1", storage.ApplicationReview{
		Status:     storage.ApplicationAccepted,
		Feedback:   "Strong showing",
		Score:      &score,
		ReviewedBy: "admin-1",
	}, reviewedAt)
	if err != nil {
		t.Fatalf("accept application: %v", err)
	}
	if got.Status != storage.ApplicationAccepted {
		t.Fatalf("status = %q, want %q", got.Status, storage.ApplicationAccepted)
	}
	if got.Score == nil || *got.Score != 88 {
		t.Fatalf("score = %v, want 88", got.Score)
	}
	if got.ReviewedDate == nil || !got.ReviewedDate.Equal(reviewedAt) {
		t.Fatalf("reviewed date = %v, want %v", got.ReviewedDate, reviewedAt)
	}

	internship, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	if internship.FilledSlots != 1 {
		t.Fatalf("filled slots = %d, want 1", internship.FilledSlots)
	}
	if internship.Status != storage.InternshipOpen {
		t.Fatalf("internship status = %q, want %q", internship.Status, storage.InternshipOpen)
	}
}

func TestUpdateApplicationReviewAcceptFillsLastSlot(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 2, 1, storage.InternshipOpen)
	seedApplication(t, store, "app-1", "stu-1", "int-1")

	reviewedAt := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	if _, err := store.UpdateApplicationReview(context.Background(), "app-1", storage.ApplicationReview{
		Status:     storage.ApplicationAccepted,
		ReviewedBy: "admin-1",
	}, reviewedAt); err != nil {
		t.Fatalf("accept application: %v", err)
	}

	internship, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	if internship.FilledSlots != 2 {
		t.Fatalf("filled slots = %d, want 2", internship.FilledSlots)
	}
	if internship.Status != storage.InternshipFilled {
		t.Fatalf("internship status = %q, want %q", internship.Status, storage.InternshipFilled)
	}
}

func TestUpdateApplicationReviewAcceptExhaustedLeavesRowsUnchanged(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 1, 0, storage.InternshipOpen)
	seedApplication(t, store, "app-1", "stu-1", "int-1")

	// Fill the only slot out of band so the accept below finds no capacity.
	full, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	full.FilledSlots = 1
	full.Status = storage.InternshipFilled
	if err := store.UpdateInternship(context.Background(), full); err != nil {
		t.Fatalf("fill internship: %v", err)
	}

	reviewedAt := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	_, err = store.UpdateApplicationReview(context.Background(), "app-1", storage.ApplicationReview{
		Status:     storage.ApplicationAccepted,
		ReviewedBy: "admin-1",
	}, reviewedAt)
	if !errors.Is(err, storage.ErrSlotsExhausted) {
		t.Fatalf("exhausted accept error = %v, want %v", err, storage.ErrSlotsExhausted)
	}

	// The rejected transaction must leave the application untouched too.
	application, err := store.GetApplication(context.Background(), "app-1")
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if application.Status != storage.ApplicationApplied {
		t.Fatalf("application status = %q, want %q", application.Status, storage.ApplicationApplied)
	}
	if application.ReviewedDate != nil {
		t.Fatalf("reviewed date = %v, want nil", application.ReviewedDate)
	}
}

func TestUpdateApplicationReviewConcurrentAcceptsLastSlot(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedStudent(t, store, "stu-2", "stu2@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 1, 0, storage.InternshipOpen)
	seedApplication(t, store, "app-1", "stu-1", "int-1")
	seedApplication(t, store, "app-2", "stu-2", "int-1")

	reviewedAt := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	review := storage.ApplicationReview{Status: storage.ApplicationAccepted, ReviewedBy: "admin-1"}

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []string{"app-1", "app-2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := store.UpdateApplicationReview(context.Background(), id, review, reviewedAt)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	// Exactly one accept wins; the other serializes behind it and finds no
	// slot left.
	var accepted, exhausted int
	for err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, storage.ErrSlotsExhausted):
			exhausted++
		default:
			t.Fatalf("concurrent accept error = %v", err)
		}
	}
	if accepted != 1 || exhausted != 1 {
		t.Fatalf("accepted = %d, exhausted = %d, want 1 and 1", accepted, exhausted)
	}

	internship, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	if internship.FilledSlots != 1 {
		t.Fatalf("filled slots = %d, want 1", internship.FilledSlots)
	}
	if internship.Status != storage.InternshipFilled {
		t.Fatalf("internship status = %q, want %q", internship.Status, storage.InternshipFilled)
	}
}

func TestUpdateApplicationReviewReacceptDoesNotDoubleCount(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 3, 0, storage.InternshipOpen)
	seedApplication(t, store, "app-1", "stu-1", "int-1")

	reviewedAt := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	review := storage.ApplicationReview{Status: storage.ApplicationAccepted, ReviewedBy: "admin-1"}
	if _, err := store.UpdateApplicationReview(context.Background(), "app-1", review, reviewedAt); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	review.Feedback = "Updated feedback"
	if _, err := store.UpdateApplicationReview(context.Background(), "app-1", review, reviewedAt.Add(time.Hour)); err != nil {
		t.Fatalf("second accept: %v", err)
	}

	internship, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	if internship.FilledSlots != 1 {
		t.Fatalf("filled slots = %d, want 1", internship.FilledSlots)
	}
}

func TestUpdateApplicationReviewRejectLeavesSlots(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedStudent(t, store, "stu-1", "stu1@example.com")
	seedCompany(t, store, "comp-1")
	seedInternship(t, store, "int-1", "comp-1", 2, 0, storage.InternshipOpen)
	seedApplication(t, store, "app-1", "stu-1", "int-1")

	reviewedAt := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	got, err := store.UpdateApplicationReview(context.Background(), "app-1", storage.ApplicationReview{
		Status:     storage.ApplicationRejected,
		Feedback:   "Not this cycle",
		ReviewedBy: "admin-1",
	}, reviewedAt)
	if err != nil {
		t.Fatalf("reject application: %v", err)
	}
	if got.Status != storage.ApplicationRejected {
		t.Fatalf("status = %q, want %q", got.Status, storage.ApplicationRejected)
	}

	internship, err := store.GetInternship(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("get internship: %v", err)
	}
	if internship.FilledSlots != 0 {
		t.Fatalf("filled slots = %d, want 0", internship.FilledSlots)
	}
}

func TestUpdateApplicationReviewMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.UpdateApplicationReview(context.Background(), "ghost", storage.ApplicationReview{
		Status: storage.ApplicationUnderReview,
	}, time.Now().UTC())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing application error = %v, want %v", err, storage.ErrNotFound)
	}
}

func seedApplication(t *testing.T, store *Store, id, studentID, internshipID string) {
	t.Helper()

	if err := store.CreateApplication(context.Background(), storage.Application{
		ID:           id,
		StudentID:    studentID,
		InternshipID: internshipID,
		Status:       storage.ApplicationApplied,
	}); err != nil {
		t.Fatalf("seed application %s: %v", id, err)
	}
}
