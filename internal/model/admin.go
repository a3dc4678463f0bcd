package model

import "time"

// Admin is the institute owner account, keyed by email in the admins partition.
type Admin struct {
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	InstituteID  int       `json:"instituteId"`
	CollegeName  string    `json:"collegeName"`
	Address      string    `json:"address"`
	AdminName    string    `json:"adminName"`
	CreatedAt    time.Time `json:"createdAt"`
}
