// Package utils holds the response envelope and small string helpers shared
// by every CropPilot HTTP handler.
package utils

import "time"

// SuccessResponse is the envelope for every 2xx CropPilot API reply. Data
// carries the endpoint payload (ranked schemes, logbook entries, a risk
// assessment); Meta stamps when the reply was produced.
type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Meta    *Meta `json:"meta,omitempty"`
}

// ErrorResponse is the envelope for every non-2xx reply. Code is a stable
// machine-readable identifier (e.g. INVALID_CREDENTIALS, VALIDATION_ERROR);
// Message is safe to show to the farmer-facing client.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    code,
			Message: message,
		},
	}
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
		},
	}
}
