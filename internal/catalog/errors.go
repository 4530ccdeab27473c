package catalog

import (
	"fmt"
	"strings"
)

// FetchError reports a failed provider request: either the transport
// failed (StatusCode == 0) or the endpoint answered with a non-2xx status.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	target := strings.TrimSpace(e.Endpoint)
	if target == "" {
		target = "job provider"
	}
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("fetch jobs from %s: unexpected status %d: %v", target, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("fetch jobs from %s: unexpected status %d", target, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch jobs from %s: %v", target, e.Err)
	}
	return "fetch jobs from " + target + ": failed"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
