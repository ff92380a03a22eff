// Package objects contains the wire objects shared by api and biz.
// To avoid circular dependencies, we put them here.
package objects

// Error is the error payload returned by the API.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorResponse wraps an Error for JSON responses.
type ErrorResponse struct {
	Error Error `json:"error"`
}
