package model

// PageQuery is the cursor pagination input of list endpoints.
type PageQuery struct {
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
	Cursor   string `form:"cursor" binding:"max=2048"`
}

// InstituteScopeQuery selects the institute a recruiter is viewing.
type InstituteScopeQuery struct {
	InstituteID int `form:"institute_id" binding:"required,min=10000,max=99999"`
}

// JobPostsQuery orders the job board by posting date.
type JobPostsQuery struct {
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
}
