package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind labels the reason a page request failed.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindConnection  ErrorKind = "connection"
	KindForbidden   ErrorKind = "forbidden"
	KindNotFound    ErrorKind = "not_found"
	KindRateLimited ErrorKind = "rate_limited"
	KindStatus      ErrorKind = "http_status"
	KindDecode      ErrorKind = "decode"
	KindOther       ErrorKind = "other"
)

// RequestError is returned by Fetch when the page could not be retrieved.
type RequestError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf reports the ErrorKind carried by err, or KindOther.
func KindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return KindOther
}

func classifyError(err error, statusCode int) *RequestError {
	if err == nil && statusCode == 0 {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("http status %d", statusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &RequestError{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RequestError{Kind: KindTimeout, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &RequestError{Kind: KindConnection, Err: err}
	}

	switch {
	case statusCode == http.StatusForbidden:
		return &RequestError{Kind: KindForbidden, Status: statusCode, Err: err}
	case statusCode == http.StatusNotFound:
		return &RequestError{Kind: KindNotFound, Status: statusCode, Err: err}
	case statusCode == http.StatusTooManyRequests:
		return &RequestError{Kind: KindRateLimited, Status: statusCode, Err: err}
	case statusCode != 0:
		return &RequestError{Kind: KindStatus, Status: statusCode, Err: err}
	}
	return &RequestError{Kind: KindOther, Err: err}
}
