package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/middleware"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stemsi/placement-backend/internal/validator"
)

// StudentPortalHandler handles student-facing job browsing and applications.
type StudentPortalHandler struct {
	jobService         *service.JobService
	applicationService *service.ApplicationService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(jobService *service.JobService, applicationService *service.ApplicationService) *StudentPortalHandler {
	return &StudentPortalHandler{jobService: jobService, applicationService: applicationService}
}

// ListJobs godoc
// GET /api/v1/student/jobs?page_size=&cursor=
// Jobs posted to the student's own institute.
func (h *StudentPortalHandler) ListJobs(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	jobs, next, err := h.jobService.ListByInstitute(c.Request.Context(), claims.InstituteID, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "jobs", views(jobs, (*model.Job).View), next)
}

// ListJobPosts godoc
// GET /api/v1/student/job-posts?order=asc|desc&page_size=&cursor=
// The whole job board ordered by posting date, newest first by default.
func (h *StudentPortalHandler) ListJobPosts(c *gin.Context) {
	var pq model.JobPostsQuery
	if fields := validator.BindQuery(c, &pq); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}

	dir := docstore.Desc
	if pq.Order == "asc" {
		dir = docstore.Asc
	}

	jobs, next, err := h.jobService.ListPosts(c.Request.Context(), dir, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "jobs", views(jobs, (*model.Job).View), next)
}

// Apply godoc
// POST /api/v1/student/jobs/:id/apply
func (h *StudentPortalHandler) Apply(c *gin.Context) {
	var req model.ApplyRequest
	if c.Request.ContentLength != 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	claims := middleware.GetClaims(c)
	app, err := h.applicationService.Apply(c.Request.Context(), claims.Email, claims.InstituteID, c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, app.View())
}

// ListApplications godoc
// GET /api/v1/student/applications?page_size=&cursor=
func (h *StudentPortalHandler) ListApplications(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	apps, next, err := h.applicationService.ListByStudent(c.Request.Context(), claims.Email, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "applications", views(apps, (*model.Application).View), next)
}
