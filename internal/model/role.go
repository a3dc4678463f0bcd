package model

import "fmt"

// Role is the account partition a user registers into.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleRecruiter Role = "Recruiter"
	RoleStudent   Role = "Student"
)

// Collection names of the account partitions and related documents.
const (
	CollectionInstitutes      = "institutes"
	CollectionAdmins          = "admins"
	CollectionRecruiters      = "recruiters"
	CollectionStudents        = "students"
	CollectionJobs            = "jobs"
	CollectionApplications    = "applications"
	CollectionAdminRequests   = "adminRequests"
	CollectionCollegeSettings = "collegeSettings"
)

// ParseRole accepts the exact role tag.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleRecruiter, RoleStudent:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Collection returns the partition storing accounts of this role.
func (r Role) Collection() string {
	switch r {
	case RoleAdmin:
		return CollectionAdmins
	case RoleRecruiter:
		return CollectionRecruiters
	case RoleStudent:
		return CollectionStudents
	}
	return ""
}

// Dashboard is the page a freshly registered or signed-in user lands on.
func (r Role) Dashboard() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleRecruiter:
		return "/recruiter"
	case RoleStudent:
		return "/student"
	}
	return "/"
}
