package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/middleware"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stemsi/placement-backend/internal/validator"
)

// RecruiterHandler handles the recruiter dashboard.
type RecruiterHandler struct {
	jobService         *service.JobService
	applicationService *service.ApplicationService
}

// NewRecruiterHandler creates a new RecruiterHandler.
func NewRecruiterHandler(jobService *service.JobService, applicationService *service.ApplicationService) *RecruiterHandler {
	return &RecruiterHandler{jobService: jobService, applicationService: applicationService}
}

// CreateJob godoc
// POST /api/v1/recruiter/jobs
func (h *RecruiterHandler) CreateJob(c *gin.Context) {
	var req model.CreateJobRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	job, err := h.jobService.Create(c.Request.Context(), claims.Email, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, job.View())
}

// ListJobs godoc
// GET /api/v1/recruiter/jobs?institute_id=&page_size=&cursor=
func (h *RecruiterHandler) ListJobs(c *gin.Context) {
	scope, q, ok := bindScopedPage(c)
	if !ok {
		return
	}

	jobs, next, err := h.jobService.ListByInstitute(c.Request.Context(), scope.InstituteID, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "jobs", views(jobs, (*model.Job).View), next)
}

// ListApplications godoc
// GET /api/v1/recruiter/applications?institute_id=&page_size=&cursor=
func (h *RecruiterHandler) ListApplications(c *gin.Context) {
	scope, q, ok := bindScopedPage(c)
	if !ok {
		return
	}

	apps, next, err := h.applicationService.ListByInstitute(c.Request.Context(), scope.InstituteID, q)
	if err != nil {
		fail(c, err)
		return
	}

	listed(c, "applications", views(apps, (*model.Application).View), next)
}

// UpdateApplicationStatus godoc
// PATCH /api/v1/recruiter/applications/:id
func (h *RecruiterHandler) UpdateApplicationStatus(c *gin.Context) {
	var req model.UpdateApplicationStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	app, err := h.applicationService.UpdateStatus(c.Request.Context(), claims.Email, c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, app.View())
}

func bindScopedPage(c *gin.Context) (model.InstituteScopeQuery, model.PageQuery, bool) {
	var scope model.InstituteScopeQuery
	if fields := validator.BindQuery(c, &scope); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return scope, model.PageQuery{}, false
	}
	q, ok := bindPage(c)
	return scope, q, ok
}
