package platform

import "fmt"

// Error wraps any failure from an external automation session. Jobs catch it
// at their boundary, log it and move on; one platform's outage must never
// cascade into another's cycle.
type Error struct {
	Platform string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("platform %s: %s: %v", e.Platform, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func opError(platform, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Platform: platform, Op: op, Err: err}
}
