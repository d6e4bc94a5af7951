package directory

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/json-iterator/go"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("directory unavailable")
)

// ServiceError is a non-2xx response from the directory API.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
	InnerError string
	RequestID  string

	// ClientRequestID is the correlation id sent with the failed request.
	ClientRequestID string
}

func (e *ServiceError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("directory: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("directory: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is maps the response onto the package sentinels.
func (e *ServiceError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound || e.Code == "Request_ResourceNotFound"
	case ErrConflict:
		if e.Code == "ObjectConflict" || e.StatusCode == http.StatusConflict {
			return true
		}
		return e.StatusCode == http.StatusBadRequest &&
			strings.Contains(strings.ToLower(e.Message), "already exist")
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrUnavailable:
		return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

type errorEnvelope struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		InnerError *struct {
			Code      string `json:"code"`
			Date      string `json:"date"`
			RequestID string `json:"request-id"`
		} `json:"innerError"`
	} `json:"error"`
}

// decodeServiceError builds a ServiceError from a response body. Bodies that
// are not the standard error envelope are kept as the message.
func decodeServiceError(status int, body []byte, clientRequestID string) *ServiceError {
	se := &ServiceError{StatusCode: status, ClientRequestID: clientRequestID}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error.Code == "" {
		se.Message = strings.TrimSpace(string(body))
		if se.Message == "" {
			se.Message = http.StatusText(status)
		}
		return se
	}

	se.Code = env.Error.Code
	se.Message = env.Error.Message
	if in := env.Error.InnerError; in != nil {
		se.RequestID = in.RequestID
		se.InnerError = strings.TrimSpace(strings.Join([]string{in.Code, in.Date}, " "))
	}
	return se
}
