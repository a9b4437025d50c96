package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Routes builds the gin engine with every API route registered.
func (h *Handler) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(h.logger), tracing("internhub"))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.POST("/auth/signup", h.signup)
	api.POST("/auth/login", h.login)

	protected := api.Group("", h.requireAuth())

	students := protected.Group("/students")
	students.POST("", h.createStudent)
	students.GET("", h.listStudents)
	students.GET("/stats/overview", h.studentStats)
	students.GET("/:id", h.getStudent)
	students.PUT("/:id", h.updateStudent)
	students.DELETE("/:id", h.deleteStudent)
	students.GET("/:id/enrollments", h.listStudentEnrollments)
	students.GET("/:id/available-courses", h.listAvailableCourses)
	students.GET("/:id/applications", h.listStudentApplications)
	students.GET("/:id/projects", h.listStudentProjects)
	students.GET("/:id/payments", h.listStudentPayments)
	students.GET("/:id/dashboard", h.studentDashboard)

	courses := protected.Group("/courses")
	courses.POST("", h.createCourse)
	courses.GET("", h.listCourses)
	courses.GET("/:id", h.getCourse)
	courses.PUT("/:id", h.updateCourse)
	courses.DELETE("/:id", h.deleteCourse)

	companies := protected.Group("/companies")
	companies.POST("", h.createCompany)
	companies.GET("", h.listCompanies)
	companies.GET("/stats/overview", h.companyStats)
	companies.GET("/top-performers", h.topCompanies)
	companies.GET("/by-industry", h.companiesByIndustry)
	companies.GET("/by-size", h.companiesBySize)
	companies.GET("/:id", h.getCompany)
	companies.PUT("/:id", h.updateCompany)
	companies.DELETE("/:id", h.deleteCompany)

	internships := protected.Group("/internships")
	internships.POST("", h.createInternship)
	internships.GET("", h.listInternships)
	internships.GET("/open", h.listOpenInternships)
	internships.GET("/stats/overview", h.internshipStats)
	internships.GET("/:id", h.getInternship)
	internships.PUT("/:id", h.updateInternship)
	internships.DELETE("/:id", h.deleteInternship)
	internships.GET("/:id/applications", h.listInternshipApplications)

	enrollments := protected.Group("/enrollments")
	enrollments.POST("", h.enroll)
	enrollments.PUT("/progress", h.updateEnrollmentProgress)

	applications := protected.Group("/applications")
	applications.POST("", h.apply)
	applications.GET("/:id", h.getApplication)
	applications.PUT("/:id/status", h.updateApplicationStatus)

	projects := protected.Group("/projects")
	projects.POST("", h.createProject)
	projects.GET("", h.listProjects)
	projects.GET("/:id", h.getProject)
	projects.PUT("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)

	payments := protected.Group("/payments")
	payments.POST("", h.createPayment)
	payments.GET("", h.listPayments)
	payments.GET("/stats/overview", h.paymentStats)
	payments.GET("/:id", h.getPayment)
	payments.POST("/:id/pay", h.markPaymentPaid)
	payments.DELETE("/:id", h.deletePayment)

	announcements := protected.Group("/announcements")
	announcements.POST("", h.publishAnnouncement)
	announcements.GET("", h.listAnnouncements)
	announcements.GET("/visible", h.listVisibleAnnouncements)
	announcements.GET("/:id", h.getAnnouncement)
	announcements.PUT("/:id", h.updateAnnouncement)
	announcements.POST("/:id/read", h.markAnnouncementRead)
	announcements.DELETE("/:id", h.deleteAnnouncement)

	protected.GET("/stats/overview", h.statsOverview)

	return engine
}
