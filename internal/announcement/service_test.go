package announcement

import (
	"context"
	"testing"
	"time"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

func TestPublishDefaultsPublishDateToNow(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)

	got, err := svc.Publish(context.Background(), PublishInput{
		Title:          "Placement drive",
		Content:        "Week of April 20",
		TargetAudience: storage.AudienceStudents,
		Priority:       storage.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !got.PublishDate.Equal(testNow) {
		t.Fatalf("publish date = %v, want %v", got.PublishDate, testNow)
	}
	if !got.IsActive {
		t.Fatal("expected new announcement to be active")
	}
	if len(store.created) != 1 {
		t.Fatalf("created len = %d, want 1", len(store.created))
	}
}

func TestPublishValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	testCases := []struct {
		name  string
		input PublishInput
		code  errors.Code
	}{
		{
			name:  "missing title",
			input: PublishInput{Title: " ", TargetAudience: storage.AudienceAll, Priority: storage.PriorityLow},
			code:  errors.CodeValidation,
		},
		{
			name:  "unknown audience",
			input: PublishInput{Title: "Hello", TargetAudience: "Everyone", Priority: storage.PriorityLow},
			code:  errors.CodeInvalidAudience,
		},
		{
			name:  "unknown priority",
			input: PublishInput{Title: "Hello", TargetAudience: storage.AudienceAll, Priority: "Urgent"},
			code:  errors.CodeInvalidPriority,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Publish(context.Background(), tc.input)
			if !errors.IsCode(err, tc.code) {
				t.Fatalf("code = %v, want %v", errors.GetCode(err), tc.code)
			}
		})
	}
}

func TestListVisibleRejectsUnknownAudience(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	_, err := svc.ListVisible(context.Background(), "Everyone", 0)
	if !errors.IsCode(err, errors.CodeInvalidAudience) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeInvalidAudience)
	}
}

func TestListVisiblePassesClockAndLimit(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.ListVisible(context.Background(), storage.AudienceStudents, 5); err != nil {
		t.Fatalf("list visible: %v", err)
	}
	if !store.lastAtTime.Equal(testNow) {
		t.Fatalf("at time = %v, want %v", store.lastAtTime, testNow)
	}
	if store.lastLimit != 5 {
		t.Fatalf("limit = %d, want 5", store.lastLimit)
	}
}

func TestListUsesClockAndSkipsAudienceFilter(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.listed = []storage.Announcement{
		{ID: "ann-1", TargetAudience: storage.AudienceStudents},
		{ID: "ann-2", TargetAudience: storage.AudienceCompanies},
	}
	svc := newTestService(store)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !store.lastAtTime.Equal(testNow) {
		t.Fatalf("at time = %v, want %v", store.lastAtTime, testNow)
	}
}

func TestMarkReadMapsNotFound(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.markErr = storage.ErrNotFound
	svc := newTestService(store)

	err := svc.MarkRead(context.Background(), "ghost", "user-1")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeNotFound)
	}
}

func TestMarkReadRequiresIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	if err := svc.MarkRead(context.Background(), "", "user-1"); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("missing announcement code = %v, want %v", errors.GetCode(err), errors.CodeValidation)
	}
	if err := svc.MarkRead(context.Background(), "ann-1", " "); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("missing user code = %v, want %v", errors.GetCode(err), errors.CodeValidation)
	}
}

var testNow = time.Date(2026, time.April, 15, 10, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.clock = func() time.Time { return testNow }
	svc.newID = func() string { return "ann-test" }
	return svc
}

type fakeStore struct {
	created    []storage.Announcement
	listed     []storage.Announcement
	markErr    error
	lastAtTime time.Time
	lastLimit  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) CreateAnnouncement(_ context.Context, announcement storage.Announcement) error {
	f.created = append(f.created, announcement)
	return nil
}

func (f *fakeStore) GetAnnouncement(_ context.Context, id string) (storage.Announcement, error) {
	return storage.Announcement{}, storage.ErrNotFound
}

func (f *fakeStore) ListVisibleAnnouncements(_ context.Context, audience storage.Audience, atTime time.Time, limit int) ([]storage.Announcement, error) {
	f.lastAtTime = atTime
	f.lastLimit = limit
	return nil, nil
}

func (f *fakeStore) ListAnnouncements(_ context.Context, atTime time.Time) ([]storage.Announcement, error) {
	f.lastAtTime = atTime
	return f.listed, nil
}

func (f *fakeStore) MarkAnnouncementRead(_ context.Context, announcementID, userID string) error {
	return f.markErr
}

func (f *fakeStore) UpdateAnnouncement(_ context.Context, announcement storage.Announcement) error {
	return nil
}

func (f *fakeStore) DeleteAnnouncement(_ context.Context, id string) error { return nil }
