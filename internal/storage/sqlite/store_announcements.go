package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/talentbridge/internhub/internal/storage"
)

const announcementColumns = `id, title, content, target_audience, priority,
       priority_rank, is_active, publish_date, expiry_date, created_at, updated_at`

func (s *Store) CreateAnnouncement(ctx context.Context, announcement storage.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	createdAt := announcement.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	publishDate := announcement.PublishDate
	if publishDate.IsZero() {
		publishDate = createdAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO announcements (`+announcementColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		announcement.ID,
		announcement.Title,
		announcement.Content,
		string(announcement.TargetAudience),
		string(announcement.Priority),
		announcement.Priority.Rank(),
		boolToInt(announcement.IsActive),
		toMillis(publishDate),
		toNullMillis(announcement.ExpiryDate),
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err, "announcements.id") {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

func (s *Store) GetAnnouncement(ctx context.Context, id string) (storage.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return storage.Announcement{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Announcement{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = ?`,
		id,
	)
	announcement, err := scanAnnouncement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Announcement{}, storage.ErrNotFound
		}
		return storage.Announcement{}, fmt.Errorf("get announcement: %w", err)
	}
	if err := s.loadReadBy(ctx, &announcement); err != nil {
		return storage.Announcement{}, err
	}
	return announcement, nil
}

// ListVisibleAnnouncements returns active announcements already published at
// atTime whose audience is the given one or All, urgent first and newest
// first within the same priority. Expiry does not filter here; expired
// announcements stay listed until deactivated.
func (s *Store) ListVisibleAnnouncements(ctx context.Context, audience storage.Audience, atTime time.Time, limit int) ([]storage.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + announcementColumns + `
	            FROM announcements
	           WHERE is_active = 1
	             AND publish_date <= ?
	             AND target_audience IN (?, ?)
	           ORDER BY priority_rank DESC, publish_date DESC, id ASC`
	args := []any{toMillis(atTime), string(storage.AudienceAll), string(audience)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryAnnouncements(ctx, query, args...)
}

// ListAnnouncements returns every active announcement already published at
// atTime, across all audiences, ordered like ListVisibleAnnouncements.
func (s *Store) ListAnnouncements(ctx context.Context, atTime time.Time) ([]storage.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryAnnouncements(
		ctx,
		`SELECT `+announcementColumns+`
		   FROM announcements
		  WHERE is_active = 1
		    AND publish_date <= ?
		  ORDER BY priority_rank DESC, publish_date DESC, id ASC`,
		toMillis(atTime),
	)
}

func (s *Store) queryAnnouncements(ctx context.Context, query string, args ...any) ([]storage.Announcement, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []storage.Announcement
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("list announcements: %w", err)
		}
		announcements = append(announcements, announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	for i := range announcements {
		if err := s.loadReadBy(ctx, &announcements[i]); err != nil {
			return nil, err
		}
	}
	return announcements, nil
}

// MarkAnnouncementRead records the read receipt. Marking an already read
// announcement succeeds without changing anything.
func (s *Store) MarkAnnouncementRead(ctx context.Context, announcementID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if err := requireRef(ctx, s.sqlDB, "announcements", &announcementID); err != nil {
		if errors.Is(err, storage.ErrDanglingReference) {
			return storage.ErrNotFound
		}
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO announcement_reads (announcement_id, user_id, read_at)
		 VALUES (?, ?, ?)`,
		announcementID,
		userID,
		toMillis(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("mark announcement read: %w", err)
	}
	return nil
}

func (s *Store) UpdateAnnouncement(ctx context.Context, announcement storage.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE announcements
		    SET title = ?, content = ?, target_audience = ?, priority = ?,
		        priority_rank = ?, is_active = ?, publish_date = ?,
		        expiry_date = ?, updated_at = ?
		  WHERE id = ?`,
		announcement.Title,
		announcement.Content,
		string(announcement.TargetAudience),
		string(announcement.Priority),
		announcement.Priority.Rank(),
		boolToInt(announcement.IsActive),
		toMillis(announcement.PublishDate),
		toNullMillis(announcement.ExpiryDate),
		toMillis(time.Now().UTC()),
		announcement.ID,
	)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return requireAffected(result, "update announcement")
}

// DeleteAnnouncement removes the announcement and its read receipts.
func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete announcement: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if err := requireAffected(result, "delete announcement"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM announcement_reads WHERE announcement_id = ?`, id); err != nil {
		return fmt.Errorf("delete announcement reads: %w", err)
	}
	return tx.Commit()
}

func (s *Store) loadReadBy(ctx context.Context, announcement *storage.Announcement) error {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT user_id FROM announcement_reads WHERE announcement_id = ? ORDER BY read_at ASC, user_id ASC`,
		announcement.ID,
	)
	if err != nil {
		return fmt.Errorf("load announcement reads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("load announcement reads: %w", err)
		}
		announcement.ReadBy = append(announcement.ReadBy, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load announcement reads: %w", err)
	}
	return nil
}

func scanAnnouncement(scanner rowScanner) (storage.Announcement, error) {
	var announcement storage.Announcement
	var audience, priority string
	var priorityRank, isActive int
	var expiryDate sql.NullInt64
	var publishDate, createdAt, updatedAt int64
	err := scanner.Scan(
		&announcement.ID,
		&announcement.Title,
		&announcement.Content,
		&audience,
		&priority,
		&priorityRank,
		&isActive,
		&publishDate,
		&expiryDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Announcement{}, err
	}
	announcement.TargetAudience = storage.Audience(audience)
	announcement.Priority = storage.Priority(priority)
	announcement.IsActive = isActive != 0
	announcement.PublishDate = fromMillis(publishDate)
	announcement.ExpiryDate = fromNullMillis(expiryDate)
	announcement.CreatedAt = fromMillis(createdAt)
	announcement.UpdatedAt = fromMillis(updatedAt)
	return announcement, nil
}
