package model

import "time"

// Student is a student account, keyed by email in the students partition.
// CollegeName is denormalized from the institute at registration.
type Student struct {
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	InstituteID  int       `json:"instituteId"`
	CollegeName  string    `json:"collegeName"`
	Age          int       `json:"age"`
	StudentName  string    `json:"studentName"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
}

// StudentView is the student as shown on dashboards.
type StudentView struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	StudentName string `json:"student_name"`
	Age         int    `json:"age"`
	InstituteID int    `json:"institute_id"`
	CollegeName string `json:"college_name"`
	Verified    bool   `json:"verified"`
}

// View strips credentials.
func (s *Student) View() StudentView {
	return StudentView{
		Email:       s.Email,
		Phone:       s.Phone,
		StudentName: s.StudentName,
		Age:         s.Age,
		InstituteID: s.InstituteID,
		CollegeName: s.CollegeName,
		Verified:    s.Verified,
	}
}
