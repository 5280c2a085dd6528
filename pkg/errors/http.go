package errors

import "fmt"

// HTTPError is an error that carries the HTTP status and a stable reason code
// to be returned to the client.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// NewHTTPError returns a new HTTPError.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
