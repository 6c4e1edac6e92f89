// Package http implements the JSON feed of Funding Pulse.
// Handlers stay thin: they bind and validate query parameters, call the
// service layer and render the result. They hold no business logic.
//
// # Response Format
//
// Collection endpoints answer with a success envelope:
//
//	{"status": "success", "data": [...], "count": 3}
//
// Single-object endpoints (metrics, boxplot) answer with the object itself.
//
// # Error Handling
//
// Every error is rendered as RFC 7807 problem details by the shared
// errors.ErrorHandler. Invalid query parameters produce a 400 with
// error_code VALIDATION_FAILED and one entry per offending field:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Request validation failed",
//	    "error_code": "VALIDATION_FAILED",
//	    "details": {"errors": [{"field": "k", "message": "k must be at most 20"}]}
//	}
//
// # Testing
//
// Handlers are tested with httptest against a testify mock of
// FundingServiceInterface.
package http
