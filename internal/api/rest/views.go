package rest

import (
	"time"

	"github.com/talentbridge/internhub/internal/storage"
)

// View types shape the JSON the API returns. Password hashes never leave the
// storage layer.

type studentView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	University      string    `json:"university,omitempty"`
	Degree          string    `json:"degree,omitempty"`
	GraduationYear  int       `json:"graduationYear,omitempty"`
	Status          string    `json:"status"`
	OverallProgress int       `json:"overallProgress"`
	JoinDate        time.Time `json:"joinDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toStudentView(record storage.Student) studentView {
	return studentView{
		ID:              record.ID,
		Name:            record.Name,
		Email:           record.Email,
		Phone:           record.Phone,
		University:      record.University,
		Degree:          record.Degree,
		GraduationYear:  record.GraduationYear,
		Status:          string(record.Status),
		OverallProgress: record.OverallProgress,
		JoinDate:        record.JoinDate,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func toStudentViews(records []storage.Student) []studentView {
	views := make([]studentView, 0, len(records))
	for _, record := range records {
		views = append(views, toStudentView(record))
	}
	return views
}

type courseView struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor,omitempty"`
	Price      float64   `json:"price"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toCourseView(record storage.Course) courseView {
	return courseView{
		ID:         record.ID,
		Title:      record.Title,
		Instructor: record.Instructor,
		Price:      record.Price,
		IsActive:   record.IsActive,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func toCourseViews(records []storage.Course) []courseView {
	views := make([]courseView, 0, len(records))
	for _, record := range records {
		views = append(views, toCourseView(record))
	}
	return views
}

type companyView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry,omitempty"`
	Size         string    `json:"size,omitempty"`
	Location     string    `json:"location,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	Rating       float64   `json:"rating"`
	TotalHired   int       `json:"totalHired"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toCompanyView(record storage.Company) companyView {
	return companyView{
		ID:           record.ID,
		Name:         record.Name,
		Industry:     record.Industry,
		Size:         record.Size,
		Location:     record.Location,
		ContactEmail: record.ContactEmail,
		Rating:       record.Rating,
		TotalHired:   record.TotalHired,
		Status:       string(record.Status),
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func toCompanyViews(records []storage.Company) []companyView {
	views := make([]companyView, 0, len(records))
	for _, record := range records {
		views = append(views, toCompanyView(record))
	}
	return views
}

// toCompanyGroupViews shapes one analytics bucket list; dimension names the
// JSON key carrying the bucket label (industry or size).
func toCompanyGroupViews(dimension string, groups []storage.CompanyGroupCount) []map[string]any {
	views := make([]map[string]any, 0, len(groups))
	for _, group := range groups {
		views = append(views, map[string]any{dimension: group.Key, "count": group.Count})
	}
	return views
}

type internshipView struct {
	ID                  string     `json:"id"`
	CompanyID           string     `json:"companyId"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Location            string     `json:"location,omitempty"`
	Slots               int        `json:"slots"`
	FilledSlots         int        `json:"filledSlots"`
	Status              string     `json:"status"`
	ApplicationCount    int        `json:"applicationCount"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	PostedDate          time.Time  `json:"postedDate"`
	IsActive            bool       `json:"isActive"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func toInternshipView(record storage.Internship) internshipView {
	return internshipView{
		ID:                  record.ID,
		CompanyID:           record.CompanyID,
		Title:               record.Title,
		Description:         record.Description,
		Location:            record.Location,
		Slots:               record.Slots,
		FilledSlots:         record.FilledSlots,
		Status:              string(record.Status),
		ApplicationCount:    record.ApplicationCount,
		ApplicationDeadline: record.ApplicationDeadline,
		PostedDate:          record.PostedDate,
		IsActive:            record.IsActive,
		CreatedAt:           record.CreatedAt,
		UpdatedAt:           record.UpdatedAt,
	}
}

func toInternshipViews(records []storage.Internship) []internshipView {
	views := make([]internshipView, 0, len(records))
	for _, record := range records {
		views = append(views, toInternshipView(record))
	}
	return views
}

type enrollmentView struct {
	ID               string     `json:"id"`
	StudentID        string     `json:"studentId"`
	CourseID         string     `json:"courseId"`
	Progress         int        `json:"progress"`
	Status           string     `json:"status"`
	EnrollmentDate   time.Time  `json:"enrollmentDate"`
	CompletionDate   *time.Time `json:"completionDate,omitempty"`
	LastAccessedDate time.Time  `json:"lastAccessedDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func toEnrollmentView(record storage.Enrollment) enrollmentView {
	return enrollmentView{
		ID:               record.ID,
		StudentID:        record.StudentID,
		CourseID:         record.CourseID,
		Progress:         record.Progress,
		Status:           string(record.Status),
		EnrollmentDate:   record.EnrollmentDate,
		CompletionDate:   record.CompletionDate,
		LastAccessedDate: record.LastAccessedDate,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

func toEnrollmentViews(records []storage.Enrollment) []enrollmentView {
	views := make([]enrollmentView, 0, len(records))
	for _, record := range records {
		views = append(views, toEnrollmentView(record))
	}
	return views
}

type applicationView struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"studentId"`
	InternshipID  string     `json:"internshipId"`
	Status        string     `json:"status"`
	AppliedDate   time.Time  `json:"appliedDate"`
	CoverLetter   string     `json:"coverLetter,omitempty"`
	Resume        string     `json:"resume,omitempty"`
	Portfolio     string     `json:"portfolio,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	Score         *int       `json:"score,omitempty"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	ReviewedBy    string     `json:"reviewedBy,omitempty"`
	ReviewedDate  *time.Time `json:"reviewedDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toApplicationView(record storage.Application) applicationView {
	return applicationView{
		ID:            record.ID,
		StudentID:     record.StudentID,
		InternshipID:  record.InternshipID,
		Status:        string(record.Status),
		AppliedDate:   record.AppliedDate,
		CoverLetter:   record.CoverLetter,
		Resume:        record.Resume,
		Portfolio:     record.Portfolio,
		Feedback:      record.Feedback,
		Score:         record.Score,
		InterviewDate: record.InterviewDate,
		ReviewedBy:    record.ReviewedBy,
		ReviewedDate:  record.ReviewedDate,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func toApplicationViews(records []storage.Application) []applicationView {
	views := make([]applicationView, 0, len(records))
	for _, record := range records {
		views = append(views, toApplicationView(record))
	}
	return views
}

type projectView struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"studentId"`
	CourseID     *string    `json:"courseId,omitempty"`
	InternshipID *string    `json:"internshipId,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Progress     int        `json:"progress"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toProjectView(record storage.Project) projectView {
	return projectView{
		ID:           record.ID,
		StudentID:    record.StudentID,
		CourseID:     record.CourseID,
		InternshipID: record.InternshipID,
		Title:        record.Title,
		Description:  record.Description,
		Progress:     record.Progress,
		Status:       string(record.Status),
		DueDate:      record.DueDate,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func toProjectViews(records []storage.Project) []projectView {
	views := make([]projectView, 0, len(records))
	for _, record := range records {
		views = append(views, toProjectView(record))
	}
	return views
}

type paymentView struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"studentId"`
	CourseID      *string    `json:"courseId,omitempty"`
	InternshipID  *string    `json:"internshipId,omitempty"`
	InvoiceID     string     `json:"invoiceId"`
	Description   string     `json:"description,omitempty"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	PaidAmount    float64    `json:"paidAmount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toPaymentView(record storage.Payment) paymentView {
	return paymentView{
		ID:            record.ID,
		StudentID:     record.StudentID,
		CourseID:      record.CourseID,
		InternshipID:  record.InternshipID,
		InvoiceID:     record.InvoiceID,
		Description:   record.Description,
		Amount:        record.Amount,
		Currency:      record.Currency,
		Status:        string(record.Status),
		PaymentMethod: record.PaymentMethod,
		TransactionID: record.TransactionID,
		PaymentDate:   record.PaymentDate,
		DueDate:       record.DueDate,
		PaidAmount:    record.PaidAmount,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func toPaymentViews(records []storage.Payment) []paymentView {
	views := make([]paymentView, 0, len(records))
	for _, record := range records {
		views = append(views, toPaymentView(record))
	}
	return views
}

type dashboardStatsView struct {
	TotalCourses  int `json:"totalCourses"`
	TotalProjects int `json:"totalProjects"`
	AvgProgress   int `json:"avgProgress"`
}

type studentDashboardView struct {
	Student           studentView        `json:"student"`
	RecentEnrollments []enrollmentView   `json:"recentEnrollments"`
	RecentProjects    []projectView      `json:"recentProjects"`
	UpcomingDeadlines []projectView      `json:"upcomingDeadlines"`
	Stats             dashboardStatsView `json:"stats"`
}

type announcementView struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content,omitempty"`
	TargetAudience string     `json:"targetAudience"`
	Priority       string     `json:"priority"`
	IsActive       bool       `json:"isActive"`
	PublishDate    time.Time  `json:"publishDate"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	ReadBy         []string   `json:"readBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toAnnouncementView(record storage.Announcement) announcementView {
	readBy := record.ReadBy
	if readBy == nil {
		readBy = []string{}
	}
	return announcementView{
		ID:             record.ID,
		Title:          record.Title,
		Content:        record.Content,
		TargetAudience: string(record.TargetAudience),
		Priority:       string(record.Priority),
		IsActive:       record.IsActive,
		PublishDate:    record.PublishDate,
		ExpiryDate:     record.ExpiryDate,
		ReadBy:         readBy,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

func toAnnouncementViews(records []storage.Announcement) []announcementView {
	views := make([]announcementView, 0, len(records))
	for _, record := range records {
		views = append(views, toAnnouncementView(record))
	}
	return views
}
