package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stemsi/placement-backend/internal/validator"
)

// InstituteHandler serves public institute lookups used by the sign-up forms.
type InstituteHandler struct {
	instituteService *service.InstituteService
}

// NewInstituteHandler creates a new InstituteHandler.
func NewInstituteHandler(instituteService *service.InstituteService) *InstituteHandler {
	return &InstituteHandler{instituteService: instituteService}
}

// Lookup godoc
// GET /api/v1/public/institutes?name=... or ?institute_id=...
// Finds an existing institute. It never creates one.
func (h *InstituteHandler) Lookup(c *gin.Context) {
	var q model.InstituteLookupQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if q.Name == "" && q.InstituteID == 0 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"name": "name or institute_id is required",
		})
		return
	}

	var (
		inst *model.Institute
		err  error
	)
	if q.InstituteID != 0 {
		inst, err = h.instituteService.GetByID(c.Request.Context(), q.InstituteID)
	} else {
		inst, err = h.instituteService.Lookup(c.Request.Context(), q.Name)
	}
	if err != nil {
		c.Header("Cache-Control", "no-store")
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"name":         inst.Name,
		"institute_id": inst.InstituteID,
	})
}
