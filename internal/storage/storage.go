// Package storage defines persistence contracts for internship-management
// state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInternshipNotOpen indicates the target internship is not accepting applications.
	ErrInternshipNotOpen = errors.New("internship is not open")
	// ErrSlotsExhausted indicates an accept would push filled slots past capacity.
	ErrSlotsExhausted = errors.New("internship slots are exhausted")
	// ErrDanglingReference indicates a write referenced a row that does not exist.
	ErrDanglingReference = errors.New("referenced record does not exist")
)

// StudentStatus is the lifecycle state of a student account.
type StudentStatus string

const (
	StudentActive     StudentStatus = "Active"
	StudentInactive   StudentStatus = "Inactive"
	StudentCompleted  StudentStatus = "Completed"
	StudentDroppedOut StudentStatus = "Dropped Out"
)

// CompanyStatus is the partnership state of a company.
type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "Active"
	CompanyInactive  CompanyStatus = "Inactive"
	CompanySuspended CompanyStatus = "Suspended"
)

// InternshipStatus is the posting state of an internship.
type InternshipStatus string

const (
	InternshipOpen          InternshipStatus = "Open"
	InternshipFilled        InternshipStatus = "Filled"
	InternshipPendingReview InternshipStatus = "Pending Review"
	InternshipClosed        InternshipStatus = "Closed"
)

// EnrollmentStatus is the state of a student-course enrollment.
type EnrollmentStatus string

const (
	EnrollmentEnrolled   EnrollmentStatus = "Enrolled"
	EnrollmentInProgress EnrollmentStatus = "In Progress"
	EnrollmentCompleted  EnrollmentStatus = "Completed"
	EnrollmentDropped    EnrollmentStatus = "Dropped"
)

// ApplicationStatus is the review state of an internship application.
type ApplicationStatus string

const (
	ApplicationApplied            ApplicationStatus = "Applied"
	ApplicationUnderReview        ApplicationStatus = "Under Review"
	ApplicationInterviewScheduled ApplicationStatus = "Interview Scheduled"
	ApplicationAccepted           ApplicationStatus = "Accepted"
	ApplicationRejected           ApplicationStatus = "Rejected"
	ApplicationWithdrawn          ApplicationStatus = "Withdrawn"
)

// ProjectStatus is the state of a student project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "Not Started"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentPaid      PaymentStatus = "Paid"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentCancelled PaymentStatus = "Cancelled"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// Audience is the targeting dimension for announcements.
type Audience string

const (
	AudienceAll       Audience = "All"
	AudienceStudents  Audience = "Students"
	AudienceAdmins    Audience = "Admins"
	AudienceCompanies Audience = "Companies"
)

// Priority orders announcements from least to most urgent.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Rank returns the sort weight of a priority. Critical sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Student stores one student account with profile fields.
type Student struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Phone           string
	University      string
	Degree          string
	GraduationYear  int
	Status          StudentStatus
	OverallProgress int
	JoinDate        time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Course stores one catalog entry.
type Course struct {
	ID         string
	Title      string
	Instructor string
	Price      float64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Company stores one partner organization.
type Company struct {
	ID           string
	Name         string
	Industry     string
	Size         string
	Location     string
	ContactEmail string
	Rating       float64
	TotalHired   int
	Status       CompanyStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Internship stores one posting owned by a company.
type Internship struct {
	ID                  string
	CompanyID           string
	Title               string
	Description         string
	Location            string
	Slots               int
	FilledSlots         int
	Status              InternshipStatus
	ApplicationCount    int
	ApplicationDeadline *time.Time
	PostedDate          time.Time
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Enrollment stores one student-course join record. The (StudentID, CourseID)
// pair is unique.
type Enrollment struct {
	ID               string
	StudentID        string
	CourseID         string
	Progress         int
	Status           EnrollmentStatus
	EnrollmentDate   time.Time
	CompletionDate   *time.Time
	LastAccessedDate time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Application stores one student-internship join record. The (StudentID,
// InternshipID) pair is unique.
type Application struct {
	ID            string
	StudentID     string
	InternshipID  string
	Status        ApplicationStatus
	AppliedDate   time.Time
	CoverLetter   string
	Resume        string
	Portfolio     string
	Feedback      string
	Score         *int
	InterviewDate *time.Time
	ReviewedBy    string
	ReviewedDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Project stores one student project, optionally linked to a course and/or
// internship.
type Project struct {
	ID           string
	StudentID    string
	CourseID     *string
	InternshipID *string
	Title        string
	Description  string
	Progress     int
	Status       ProjectStatus
	DueDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payment stores one simulated payment record. InvoiceID is unique.
type Payment struct {
	ID            string
	StudentID     string
	CourseID      *string
	InternshipID  *string
	InvoiceID     string
	Description   string
	Amount        float64
	Currency      string
	Status        PaymentStatus
	PaymentMethod string
	TransactionID string
	PaymentDate   *time.Time
	DueDate       *time.Time
	PaidAmount    float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Announcement stores one targeted announcement. ReadBy is an append-only set
// of user identifiers.
type Announcement struct {
	ID             string
	Title          string
	Content        string
	TargetAudience Audience
	Priority       Priority
	IsActive       bool
	PublishDate    time.Time
	ExpiryDate     *time.Time
	ReadBy         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplicationReview carries the reviewable fields of an application status
// update.
type ApplicationReview struct {
	Status        ApplicationStatus
	Feedback      string
	Score         *int
	InterviewDate *time.Time
	ReviewedBy    string
}

// CompanyGroupCount is one bucket of an active-company breakdown, keyed by
// industry or size.
type CompanyGroupCount struct {
	Key   string
	Count int
}

// StudentAggregates holds raw student counts for the stats reader.
type StudentAggregates struct {
	Total       int
	ByStatus    map[StudentStatus]int
	ProgressSum int
}

// CompanyAggregates holds raw company counts and sums for the stats reader.
// The rating sum and count cover every Active company, rated or not, so the
// dashboard average divides by the full active head count.
type CompanyAggregates struct {
	Total           int
	ByStatus        map[CompanyStatus]int
	TotalHired      int
	ActiveRatingSum float64
	ActiveCount     int
}

// InternshipAggregates holds raw internship counts and slot sums.
type InternshipAggregates struct {
	Total             int
	ByStatus          map[InternshipStatus]int
	TotalApplications int
	TotalSlots        int
	FilledSlots       int
}

// PaymentAggregates holds raw payment counts and sums.
type PaymentAggregates struct {
	Total      int
	ByStatus   map[PaymentStatus]int
	PaidSum    float64
	PendingSum float64
}

// StudentStore persists student records.
type StudentStore interface {
	CreateStudent(ctx context.Context, student Student) error
	GetStudent(ctx context.Context, id string) (Student, error)
	GetStudentByEmail(ctx context.Context, email string) (Student, error)
	ListStudents(ctx context.Context) ([]Student, error)
	UpdateStudent(ctx context.Context, student Student) error
	DeleteStudent(ctx context.Context, id string) error
}

// CourseStore persists course catalog records.
type CourseStore interface {
	CreateCourse(ctx context.Context, course Course) error
	GetCourse(ctx context.Context, id string) (Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	ListAvailableCourses(ctx context.Context, studentID string) ([]Course, error)
	UpdateCourse(ctx context.Context, course Course) error
	DeleteCourse(ctx context.Context, id string) error
}

// CompanyStore persists company records.
type CompanyStore interface {
	CreateCompany(ctx context.Context, company Company) error
	GetCompany(ctx context.Context, id string) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	// ListTopCompanies returns Active companies ordered by rating then total
	// hires, both descending, truncated to limit when limit is positive.
	ListTopCompanies(ctx context.Context, limit int) ([]Company, error)
	// CountCompaniesByIndustry buckets Active companies by industry, most
	// populous bucket first.
	CountCompaniesByIndustry(ctx context.Context) ([]CompanyGroupCount, error)
	// CountCompaniesBySize buckets Active companies by size, most populous
	// bucket first.
	CountCompaniesBySize(ctx context.Context) ([]CompanyGroupCount, error)
	UpdateCompany(ctx context.Context, company Company) error
	DeleteCompany(ctx context.Context, id string) error
}

// InternshipStore persists internship postings.
type InternshipStore interface {
	CreateInternship(ctx context.Context, internship Internship) error
	GetInternship(ctx context.Context, id string) (Internship, error)
	ListInternships(ctx context.Context) ([]Internship, error)
	ListOpenInternships(ctx context.Context, now time.Time) ([]Internship, error)
	UpdateInternship(ctx context.Context, internship Internship) error
	DeleteInternship(ctx context.Context, id string) error
}

// EnrollmentStore persists student-course enrollments.
type EnrollmentStore interface {
	// CreateEnrollment inserts one enrollment. It returns ErrAlreadyExists
	// when the (student, course) pair is already enrolled, regardless of the
	// existing enrollment's status.
	CreateEnrollment(ctx context.Context, enrollment Enrollment) error
	GetEnrollment(ctx context.Context, studentID, courseID string) (Enrollment, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]Enrollment, error)
	// UpdateEnrollmentProgress sets progress, status, and last-accessed time
	// on the (student, course) enrollment.
	UpdateEnrollmentProgress(ctx context.Context, studentID, courseID string, progress int, status EnrollmentStatus, accessedAt time.Time) (Enrollment, error)
}

// ApplicationStore persists internship applications and maintains the
// internship slot accounting.
type ApplicationStore interface {
	// CreateApplication inserts the application and increments the target
	// internship's application count as one transaction. It returns
	// ErrAlreadyExists for a duplicate (student, internship) pair and
	// ErrInternshipNotOpen when the internship is missing or not Open.
	CreateApplication(ctx context.Context, application Application) error
	GetApplication(ctx context.Context, id string) (Application, error)
	ListApplicationsByInternship(ctx context.Context, internshipID string) ([]Application, error)
	ListApplicationsByStudent(ctx context.Context, studentID string) ([]Application, error)
	// UpdateApplicationReview applies a review to the application. When the
	// new status is Accepted it also increments the owning internship's
	// filled slots and flips the internship to Filled once capacity is
	// reached, all within one transaction. Accepting with no slot left
	// returns ErrSlotsExhausted and leaves every row unchanged.
	UpdateApplicationReview(ctx context.Context, id string, review ApplicationReview, reviewedAt time.Time) (Application, error)
}

// ProjectStore persists student projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, project Project) error
	GetProject(ctx context.Context, id string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	ListProjectsByStudent(ctx context.Context, studentID string) ([]Project, error)
	UpdateProject(ctx context.Context, project Project) error
	DeleteProject(ctx context.Context, id string) error
}

// PaymentStore persists payment records.
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment Payment) error
	GetPayment(ctx context.Context, id string) (Payment, error)
	ListPayments(ctx context.Context) ([]Payment, error)
	ListPaymentsByStudent(ctx context.Context, studentID string) ([]Payment, error)
	UpdatePayment(ctx context.Context, payment Payment) error
	DeletePayment(ctx context.Context, id string) error
}

// AnnouncementStore persists announcements and their read receipts.
type AnnouncementStore interface {
	CreateAnnouncement(ctx context.Context, announcement Announcement) error
	GetAnnouncement(ctx context.Context, id string) (Announcement, error)
	// ListVisibleAnnouncements returns active announcements published at or
	// before atTime targeting the audience or All, ordered by priority rank
	// descending then publish date descending. A positive limit truncates
	// the result after ordering.
	ListVisibleAnnouncements(ctx context.Context, audience Audience, atTime time.Time, limit int) ([]Announcement, error)
	// ListAnnouncements returns every active announcement published at or
	// before atTime across all audiences, ordered the same way as
	// ListVisibleAnnouncements.
	ListAnnouncements(ctx context.Context, atTime time.Time) ([]Announcement, error)
	// MarkAnnouncementRead records userID in the announcement's read set.
	// Marking twice is a no-op that still succeeds.
	MarkAnnouncementRead(ctx context.Context, announcementID, userID string) error
	UpdateAnnouncement(ctx context.Context, announcement Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error
}

// StatsStore reads aggregate figures straight from persisted rows.
type StatsStore interface {
	StudentAggregates(ctx context.Context) (StudentAggregates, error)
	CompanyAggregates(ctx context.Context) (CompanyAggregates, error)
	InternshipAggregates(ctx context.Context) (InternshipAggregates, error)
	PaymentAggregates(ctx context.Context) (PaymentAggregates, error)
}

// Store combines every persistence contract the workflows need.
type Store interface {
	StudentStore
	CourseStore
	CompanyStore
	InternshipStore
	EnrollmentStore
	ApplicationStore
	ProjectStore
	PaymentStore
	AnnouncementStore
	StatsStore
}
