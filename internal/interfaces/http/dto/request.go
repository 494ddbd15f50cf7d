package dto

// ListRequest holds the pagination and sorting query parameters shared by
// every list endpoint
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	SortBy   string `form:"sortBy"`
	SortDir  string `form:"sortDir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// Normalize applies defaults to unset pagination fields
func (r *ListRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
	if r.SortDir == "" {
		r.SortDir = "desc"
	}
}

// IDRequest binds an entity ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
