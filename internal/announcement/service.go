// Package announcement implements targeted announcement publishing, the
// visibility filter, and read receipts.
package announcement

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/id"
	"github.com/talentbridge/internhub/internal/storage"
)

// Service runs announcement operations against the store.
type Service struct {
	store storage.AnnouncementStore
	clock func() time.Time
	newID func() string
}

// NewService creates an announcement service backed by the given store.
func NewService(store storage.AnnouncementStore) *Service {
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

// PublishInput carries the fields of a new announcement.
type PublishInput struct {
	Title          string
	Content        string
	TargetAudience storage.Audience
	Priority       storage.Priority
	PublishDate    *time.Time
	ExpiryDate     *time.Time
}

// Publish creates an active announcement. An absent publish date means
// publish now.
func (s *Service) Publish(ctx context.Context, input PublishInput) (storage.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return storage.Announcement{}, errors.New(errors.CodeValidation, "title is required")
	}
	if !validAudience(input.TargetAudience) {
		return storage.Announcement{}, errors.New(errors.CodeInvalidAudience, "unknown target audience")
	}
	if input.Priority.Rank() == 0 {
		return storage.Announcement{}, errors.New(errors.CodeInvalidPriority, "unknown priority")
	}

	now := s.now()
	publishDate := now
	if input.PublishDate != nil {
		publishDate = input.PublishDate.UTC()
	}
	record := storage.Announcement{
		ID:             s.newID(),
		Title:          title,
		Content:        strings.TrimSpace(input.Content),
		TargetAudience: input.TargetAudience,
		Priority:       input.Priority,
		IsActive:       true,
		PublishDate:    publishDate,
		ExpiryDate:     input.ExpiryDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateAnnouncement(ctx, record); err != nil {
		return storage.Announcement{}, errors.Wrap(errors.CodeUnknown, "create announcement", err)
	}
	return record, nil
}

// ListVisible returns announcements the audience can see right now, urgent
// first. A positive limit truncates the result after ordering.
func (s *Service) ListVisible(ctx context.Context, audience storage.Audience, limit int) ([]storage.Announcement, error) {
	if !validAudience(audience) {
		return nil, errors.New(errors.CodeInvalidAudience, "unknown target audience")
	}
	if limit < 0 {
		return nil, errors.New(errors.CodeValidation, "limit must not be negative")
	}
	records, err := s.store.ListVisibleAnnouncements(ctx, audience, s.now(), limit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "list visible announcements", err)
	}
	return records, nil
}

// List returns every published, active announcement regardless of audience,
// urgent first.
func (s *Service) List(ctx context.Context) ([]storage.Announcement, error) {
	records, err := s.store.ListAnnouncements(ctx, s.now())
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "list announcements", err)
	}
	return records, nil
}

// MarkRead records that the user has seen the announcement. Marking twice
// succeeds without effect.
func (s *Service) MarkRead(ctx context.Context, announcementID, userID string) error {
	announcementID = strings.TrimSpace(announcementID)
	userID = strings.TrimSpace(userID)
	if announcementID == "" {
		return errors.New(errors.CodeValidation, "announcement id is required")
	}
	if userID == "" {
		return errors.New(errors.CodeValidation, "user id is required")
	}
	if err := s.store.MarkAnnouncementRead(ctx, announcementID, userID); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.WithMetadata(
				errors.CodeNotFound,
				"announcement does not exist",
				map[string]string{"announcement_id": announcementID},
			)
		}
		return errors.Wrap(errors.CodeUnknown, "mark announcement read", err)
	}
	return nil
}

func validAudience(audience storage.Audience) bool {
	switch audience {
	case storage.AudienceAll, storage.AudienceStudents,
		storage.AudienceAdmins, storage.AudienceCompanies:
		return true
	}
	return false
}
