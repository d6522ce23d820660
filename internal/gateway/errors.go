package gateway

import "fmt"

// HTTPError is a non-2xx response from the backend. Message carries the
// server-supplied error text when the body had one.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError means no usable response was received at all.
type NetworkError struct {
	Err     error
	Timeout bool
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return "timeout"
	}
	return "network error"
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is a 2xx response whose body was not valid JSON for the
// expected shape.
type ParseError struct {
	StatusCode int
	Err        error
}

func (e *ParseError) Error() string { return "parse error" }

func (e *ParseError) Unwrap() error { return e.Err }
