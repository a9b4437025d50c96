// Package seed populates a development database with demo data.
package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/talentbridge/internhub/internal/auth"
	"github.com/talentbridge/internhub/internal/enrollment"
	"github.com/talentbridge/internhub/internal/id"
	"github.com/talentbridge/internhub/internal/placement"
	"github.com/talentbridge/internhub/internal/storage"
)

// Config holds seeder configuration.
type Config struct {
	Password string
	Verbose  bool
}

// DefaultConfig returns configuration with common defaults.
func DefaultConfig() Config {
	return Config{Password: "changeme123"}
}

// Run writes demo students, courses, companies, internships, and the join
// records between them. Writes go through the same workflow services the API
// uses, so counters and slot accounting stay consistent.
func Run(ctx context.Context, store storage.Store, cfg Config, out io.Writer) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	if out == nil {
		out = io.Discard
	}
	logf := func(format string, args ...any) {
		if cfg.Verbose {
			fmt.Fprintf(out, format+"\n", args...)
		}
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	now := time.Now().UTC()
	students := []storage.Student{
		{ID: id.New(), Name: "Ada Okonkwo", Email: "ada@demo.internhub.dev", University: "State University", Degree: "Computer Science", GraduationYear: 2027},
		{ID: id.New(), Name: "Marco Ruiz", Email: "marco@demo.internhub.dev", University: "Tech Institute", Degree: "Data Science", GraduationYear: 2026},
		{ID: id.New(), Name: "Yuki Tanaka", Email: "yuki@demo.internhub.dev", University: "City College", Degree: "Software Engineering", GraduationYear: 2027},
	}
	for i := range students {
		students[i].PasswordHash = hash
		students[i].Status = storage.StudentActive
		students[i].JoinDate = now
		students[i].CreatedAt = now
		students[i].UpdatedAt = now
		if err := store.CreateStudent(ctx, students[i]); err != nil {
			return fmt.Errorf("seed student %s: %w", students[i].Email, err)
		}
		logf("student %s (%s)", students[i].Name, students[i].Email)
	}

	courses := []storage.Course{
		{ID: id.New(), Title: "Backend Development with Go", Instructor: "R. Feldman", Price: 499},
		{ID: id.New(), Title: "Data Engineering Foundations", Instructor: "P. Desai", Price: 599},
		{ID: id.New(), Title: "Interview Preparation", Instructor: "L. Moreau", Price: 0},
	}
	for i := range courses {
		courses[i].IsActive = true
		courses[i].CreatedAt = now
		courses[i].UpdatedAt = now
		if err := store.CreateCourse(ctx, courses[i]); err != nil {
			return fmt.Errorf("seed course %s: %w", courses[i].Title, err)
		}
		logf("course %s", courses[i].Title)
	}

	companies := []storage.Company{
		{ID: id.New(), Name: "Northwind Labs", Industry: "Software", Size: "51-200", Location: "Berlin", ContactEmail: "talent@northwind.example", Rating: 4.5},
		{ID: id.New(), Name: "Harbor Analytics", Industry: "Data", Size: "11-50", Location: "Lisbon", ContactEmail: "hr@harbor.example", Rating: 4.1},
	}
	for i := range companies {
		companies[i].Status = storage.CompanyActive
		companies[i].CreatedAt = now
		companies[i].UpdatedAt = now
		if err := store.CreateCompany(ctx, companies[i]); err != nil {
			return fmt.Errorf("seed company %s: %w", companies[i].Name, err)
		}
		logf("company %s", companies[i].Name)
	}

	deadline := now.AddDate(0, 1, 0)
	internships := []storage.Internship{
		{ID: id.New(), CompanyID: companies[0].ID, Title: "Backend Intern", Description: "Go services and storage.", Location: "Berlin", Slots: 2},
		{ID: id.New(), CompanyID: companies[1].ID, Title: "Data Intern", Description: "Pipelines and reporting.", Location: "Remote", Slots: 1},
	}
	for i := range internships {
		internships[i].Status = storage.InternshipOpen
		internships[i].ApplicationDeadline = &deadline
		internships[i].PostedDate = now
		internships[i].IsActive = true
		internships[i].CreatedAt = now
		internships[i].UpdatedAt = now
		if err := store.CreateInternship(ctx, internships[i]); err != nil {
			return fmt.Errorf("seed internship %s: %w", internships[i].Title, err)
		}
		logf("internship %s at %s", internships[i].Title, companies[i].Name)
	}

	enrollments := enrollment.NewService(store)
	for _, pair := range []struct{ student, course int }{{0, 0}, {0, 2}, {1, 1}, {2, 0}} {
		if _, err := enrollments.Enroll(ctx, students[pair.student].ID, courses[pair.course].ID); err != nil {
			return fmt.Errorf("seed enrollment: %w", err)
		}
		logf("enrolled %s in %s", students[pair.student].Name, courses[pair.course].Title)
	}

	placements := placement.NewService(store)
	for _, pair := range []struct{ student, internship int }{{0, 0}, {1, 0}, {1, 1}} {
		if _, err := placements.Apply(ctx, students[pair.student].ID, internships[pair.internship].ID, placement.ApplyInput{
			CoverLetter: "I would love to join for the summer.",
		}); err != nil {
			return fmt.Errorf("seed application: %w", err)
		}
		logf("%s applied to %s", students[pair.student].Name, internships[pair.internship].Title)
	}

	announcement := storage.Announcement{
		ID:             id.New(),
		Title:          "Welcome to the internship program",
		Content:        "Browse open internships and enroll in preparation courses.",
		TargetAudience: storage.AudienceAll,
		Priority:       storage.PriorityMedium,
		IsActive:       true,
		PublishDate:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := store.CreateAnnouncement(ctx, announcement); err != nil {
		return fmt.Errorf("seed announcement: %w", err)
	}
	logf("announcement %s", announcement.Title)

	logf("seeding complete")
	return nil
}
