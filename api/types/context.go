package types

// Context keys set by middleware
const (
	RequestIDKey = "request_id"
	PrincipalKey = "principal"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"
