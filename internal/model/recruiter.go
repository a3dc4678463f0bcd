package model

import "time"

// Recruiter is a company account, keyed by email in the recruiters partition.
// It is not bound to an institute at registration; InstituteIDs lists the
// institutes it recruits from.
type Recruiter struct {
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	CompanyName  string    `json:"companyName"`
	InstituteIDs []int     `json:"instituteIds"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecruiterView is the recruiter as shown on dashboards.
type RecruiterView struct {
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CompanyName  string `json:"company_name"`
	InstituteIDs []int  `json:"institute_ids"`
	Approved     bool   `json:"approved"`
}

// View strips credentials.
func (r *Recruiter) View() RecruiterView {
	ids := r.InstituteIDs
	if ids == nil {
		ids = []int{}
	}
	return RecruiterView{
		Email:        r.Email,
		Phone:        r.Phone,
		CompanyName:  r.CompanyName,
		InstituteIDs: ids,
		Approved:     r.Approved,
	}
}
