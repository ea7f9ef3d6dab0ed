package contextkeys

// RequestId keys the per-request ID set by the logging middleware.
type RequestId struct{}
