package model

import "time"

// ApplicationStatus tracks a student's application through recruitment.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// Application links a student to a job. InstituteID is copied from the job so
// recruiters can page applications per institute.
type Application struct {
	ID                string            `json:"id"`
	StudentEmail      string            `json:"studentEmail"`
	JobID             string            `json:"jobId"`
	InstituteID       int               `json:"instituteId"`
	Status            ApplicationStatus `json:"status"`
	ApplicationFields map[string]string `json:"applicationFields"`
	DateApplied       time.Time         `json:"dateApplied"`
}

// ApplyRequest carries optional free-form answers for the job's form.
type ApplyRequest struct {
	ApplicationFields map[string]string `json:"application_fields" binding:"omitempty,max=50"`
}

// UpdateApplicationStatusRequest is the payload for moving an application.
type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" binding:"required,oneof=pending shortlisted accepted rejected"`
}

// ApplicationView is the API shape of an application.
type ApplicationView struct {
	ID                string            `json:"id"`
	StudentEmail      string            `json:"student_email"`
	JobID             string            `json:"job_id"`
	InstituteID       int               `json:"institute_id"`
	Status            ApplicationStatus `json:"status"`
	ApplicationFields map[string]string `json:"application_fields"`
	DateApplied       time.Time         `json:"date_applied"`
}

// View converts to the API shape.
func (a *Application) View() ApplicationView {
	fields := a.ApplicationFields
	if fields == nil {
		fields = map[string]string{}
	}
	return ApplicationView{
		ID:                a.ID,
		StudentEmail:      a.StudentEmail,
		JobID:             a.JobID,
		InstituteID:       a.InstituteID,
		Status:            a.Status,
		ApplicationFields: fields,
		DateApplied:       a.DateApplied,
	}
}
