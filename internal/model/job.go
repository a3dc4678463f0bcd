package model

import "time"

// Job is a posting a recruiter publishes to one institute.
type Job struct {
	ID             string    `json:"id"`
	JobTitle       string    `json:"jobTitle"`
	Description    string    `json:"description"`
	Eligibility    string    `json:"eligibility"`
	Location       string    `json:"location"`
	Salary         string    `json:"salary"`
	InstituteID    int       `json:"instituteId"`
	RecruiterEmail string    `json:"recruiterEmail"`
	DatePosted     time.Time `json:"datePosted"`
}

// CreateJobRequest is the payload for posting a job.
type CreateJobRequest struct {
	JobTitle    string `json:"job_title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Eligibility string `json:"eligibility" binding:"max=1000"`
	Location    string `json:"location" binding:"max=200"`
	Salary      string `json:"salary" binding:"max=100"`
	InstituteID int    `json:"institute_id" binding:"required,min=10000,max=99999"`
}

// JobView is the API shape of a job.
type JobView struct {
	ID             string    `json:"id"`
	JobTitle       string    `json:"job_title"`
	Description    string    `json:"description"`
	Eligibility    string    `json:"eligibility"`
	Location       string    `json:"location"`
	Salary         string    `json:"salary"`
	InstituteID    int       `json:"institute_id"`
	RecruiterEmail string    `json:"recruiter_email"`
	DatePosted     time.Time `json:"date_posted"`
}

// View converts to the API shape.
func (j *Job) View() JobView {
	return JobView{
		ID:             j.ID,
		JobTitle:       j.JobTitle,
		Description:    j.Description,
		Eligibility:    j.Eligibility,
		Location:       j.Location,
		Salary:         j.Salary,
		InstituteID:    j.InstituteID,
		RecruiterEmail: j.RecruiterEmail,
		DatePosted:     j.DatePosted,
	}
}
