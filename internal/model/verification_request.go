package model

import "time"

// VerificationRequestType is the kind of request an admin has to act on.
type VerificationRequestType string

const VerificationStudent VerificationRequestType = "StudentVerification"

// VerificationRequest is filed for the institute admin when a student signs up.
type VerificationRequest struct {
	ID           string                  `json:"id"`
	Type         VerificationRequestType `json:"type"`
	StudentEmail string                  `json:"studentEmail"`
	InstituteID  int                     `json:"instituteId"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// VerificationRequestView is the API shape of a request.
type VerificationRequestView struct {
	ID           string                  `json:"id"`
	Type         VerificationRequestType `json:"type"`
	StudentEmail string                  `json:"student_email"`
	InstituteID  int                     `json:"institute_id"`
	CreatedAt    time.Time               `json:"created_at"`
}

// View converts to the API shape.
func (r *VerificationRequest) View() VerificationRequestView {
	return VerificationRequestView{
		ID:           r.ID,
		Type:         r.Type,
		StudentEmail: r.StudentEmail,
		InstituteID:  r.InstituteID,
		CreatedAt:    r.CreatedAt,
	}
}
