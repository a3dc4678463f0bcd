package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/middleware"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
)

// AdminHandler handles the institute admin dashboard. Every action is
// scoped to the institute in the admin's token.
type AdminHandler struct {
	studentService   *service.StudentService
	recruiterService *service.RecruiterService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(studentService *service.StudentService, recruiterService *service.RecruiterService) *AdminHandler {
	return &AdminHandler{studentService: studentService, recruiterService: recruiterService}
}

// ListStudents godoc
// GET /api/v1/admin/students?page_size=&cursor=
func (h *AdminHandler) ListStudents(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	students, next, err := h.studentService.ListByInstitute(c.Request.Context(), claims.InstituteID, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "students", views(students, (*model.Student).View), next)
}

// VerifyStudent godoc
// POST /api/v1/admin/students/:email/verify
func (h *AdminHandler) VerifyStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.studentService.Verify(c.Request.Context(), claims.InstituteID, c.Param("email")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "student verified"})
}

// RemoveStudent godoc
// DELETE /api/v1/admin/students/:email
func (h *AdminHandler) RemoveStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.studentService.Remove(c.Request.Context(), claims.InstituteID, c.Param("email")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "student removed"})
}

// ListVerificationRequests godoc
// GET /api/v1/admin/verification-requests?page_size=&cursor=
func (h *AdminHandler) ListVerificationRequests(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	requests, next, err := h.studentService.ListVerificationRequests(c.Request.Context(), claims.InstituteID, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "requests", views(requests, (*model.VerificationRequest).View), next)
}

// ListRecruiters godoc
// GET /api/v1/admin/recruiters?page_size=&cursor=
// Recruiters that list this institute among those they recruit from.
func (h *AdminHandler) ListRecruiters(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	recruiters, next, err := h.recruiterService.ListByInstitute(c.Request.Context(), claims.InstituteID, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "recruiters", views(recruiters, (*model.Recruiter).View), next)
}

// ApproveRecruiter godoc
// POST /api/v1/admin/recruiters/:email/approve
func (h *AdminHandler) ApproveRecruiter(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.recruiterService.Approve(c.Request.Context(), claims.InstituteID, c.Param("email")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "recruiter approved"})
}
