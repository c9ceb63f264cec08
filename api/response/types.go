/*
Package response JSON envelope shared by every endpoint

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }

Internal errors are answered with "internal server error"; the real cause only goes to the log.
*/
package response

// RequestIDKey gin context key holding the request id
const RequestIDKey = "request_id"

// Response common envelope
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // error code, never details
	Code      int         `json:"code"`            // HTTP status
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// PaginatedResponse envelope of offset paged lists
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Count  int `json:"count"`
}
