package api

import "fmt"

// FetchError covers every way a candidate fetch can fail: network-level
// errors, non-2xx statuses, and malformed bodies. Callers treat all three
// the same ("no candidate available this attempt"), so the error carries
// detail for logs only.
type FetchError struct {
	Op     string // endpoint shorthand, e.g. "get_outfit_data"
	Status int    // 0 when the request never completed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// InvalidResponseError means the server answered but the payload could not
// be decoded into the expected shape (including a failed unwrap of a
// double-encoded body).
type InvalidResponseError struct {
	Op  string
	Err error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }
