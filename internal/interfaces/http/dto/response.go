package dto

// Response is the envelope returned by every endpoint
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorInfo  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorInfo carries the machine-readable error code
type ErrorInfo struct {
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// Pagination is the page descriptor attached to list responses
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page descriptor for a result set
func NewPagination(page, pageSize int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(message string, data interface{}) Response {
	if message == "" {
		message = "OK"
	}
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewPaginatedResponse creates a success envelope with pagination
func NewPaginatedResponse(message string, data interface{}, page, pageSize int, total int64) Response {
	resp := NewSuccessResponse(message, data)
	resp.Pagination = NewPagination(page, pageSize, total)
	return resp
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Message: message,
		Error:   &ErrorInfo{Code: code},
	}
}

// NewErrorResponseWithRequestID creates an error envelope carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Message: message,
		Error:   &ErrorInfo{Code: code, RequestID: requestID},
	}
}

// ValidationDetail describes one field that failed request validation
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrorResponse creates a VALIDATION_ERROR envelope with
// per-field details in the data payload
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	if len(details) > 0 {
		resp.Data = details
	}
	return resp
}
