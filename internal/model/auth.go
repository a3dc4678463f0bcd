package model

// RegisterRequest is the sign-up form for every role. Which optional fields
// matter depends on Role; the registrar enforces them in a fixed order, so
// binding only checks shape.
type RegisterRequest struct {
	Role            Role   `json:"role" binding:"required,oneof=Admin Recruiter Student"`
	Email           string `json:"email" binding:"required,max=255"`
	Phone           string `json:"phone" binding:"max=20"`
	Password        string `json:"password" binding:"required,max=256"`
	ConfirmPassword string `json:"confirm_password" binding:"max=256"`

	// Admin
	CollegeName string `json:"college_name" binding:"max=200"`
	Address     string `json:"address" binding:"max=500"`
	AdminName   string `json:"admin_name" binding:"max=100"`

	// Recruiter
	CompanyName  string `json:"company_name" binding:"max=200"`
	InstituteIDs []int  `json:"institute_ids" binding:"omitempty,dive,min=10000,max=99999"`

	// Student. InstituteID is the canonical institute reference; CampusName
	// is the legacy name-based form and is resolved to an id.
	InstituteID int    `json:"institute_id"`
	CampusName  string `json:"campus_name" binding:"max=200"`
	Age         int    `json:"age" binding:"omitempty,min=0,max=150"`
	StudentName string `json:"student_name" binding:"max=100"`
}

// Registration is the outcome of a successful sign-up.
type Registration struct {
	AccountID   string `json:"account_id"`
	Role        Role   `json:"role"`
	InstituteID int    `json:"institute_id,omitempty"`
	CollegeName string `json:"college_name,omitempty"`
	// Dashboard is where the client should navigate next.
	Dashboard string `json:"dashboard"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Role     Role   `json:"role" binding:"required,oneof=Admin Recruiter Student"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResponse is returned after a successful sign-in.
type LoginResponse struct {
	Token       string `json:"token"`
	Role        Role   `json:"role"`
	Email       string `json:"email"`
	InstituteID int    `json:"institute_id,omitempty"`
	Dashboard   string `json:"dashboard"`
}
