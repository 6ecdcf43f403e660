package trends

import "fmt"

// QuotaExceededError is returned when google rate limits the session.
type QuotaExceededError struct {
	// Url is the url of the request that was rejected.
	Url      string
	Response Response
}

func (e *QuotaExceededError) Error() string {
	return "trends: You have reached your quota limit. Please try again later."
}

// ServiceError is returned when google answers a query with a structured error.
type ServiceError struct {
	Url      string
	Message  string
	Response Response
	// Err is set when the error payload itself could not be decoded.
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trends: service error: %s: %s", e.Message, e.Err.Error())
	}
	return fmt.Sprintf("trends: service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a response body cannot be turned into a Table,
// or when a Table does not have the shape a projection needs.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trends: decode: %s: %s", e.Reason, e.Err.Error())
	}
	return fmt.Sprintf("trends: decode: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusError is returned when google answers a step with a 4xx or 5xx status.
type StatusError struct {
	Method     string
	Url        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("trends: %s %s: %s", e.Method, e.Url, e.Status)
}
