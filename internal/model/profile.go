package model

// Profile is the signed-in account as returned by /auth/me.
type Profile struct {
	Role        Role   `json:"role"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Name        string `json:"name,omitempty"`
	InstituteID int    `json:"institute_id,omitempty"`
	CollegeName string `json:"college_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Verified    *bool  `json:"verified,omitempty"` // Student only
	Approved    *bool  `json:"approved,omitempty"` // Recruiter only
	Dashboard   string `json:"dashboard"`
}
