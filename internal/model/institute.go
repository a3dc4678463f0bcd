package model

import "time"

// Institute is a college tenant. The name is the document key and the
// mapping name → InstituteID never changes once written.
type Institute struct {
	Name        string    `json:"name"`
	InstituteID int       `json:"instituteId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InstituteLookupQuery is the public lookup by name or id. One of the two
// must be set; InstituteID wins when both are.
type InstituteLookupQuery struct {
	Name        string `form:"name" binding:"omitempty,max=200"`
	InstituteID int    `form:"institute_id" binding:"omitempty,min=10000,max=99999"`
}
