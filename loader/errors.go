// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedScheme = errors.New("no fetcher for URL scheme")
	ErrEmptyURL          = errors.New("empty URL")
	ErrBodyTooLarge      = errors.New("response body exceeds size limit")
)

// Stage names the step of a load that failed.
type Stage int

const (
	StageFetch Stage = iota
	StageDecode
)

func (s Stage) String() string {
	switch s {
	case StageFetch:
		return "fetch"
	case StageDecode:
		return "decode"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// LoadFailure reports a load that gave up. Loads are never retried.
type LoadFailure struct {
	URL   string
	Stage Stage
	Err   error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("load %s: %s failed: %v", e.URL, e.Stage, e.Err)
}

func (e *LoadFailure) Unwrap() error { return e.Err }

// StatusError is a fetch answered with a non-2xx HTTP status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}
