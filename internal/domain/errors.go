package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when an owned record (experience, credential) does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrProfileNotFound covers both an unknown slug and a private profile.
	ErrProfileNotFound = errors.New("profile not available")
	// ErrSlugTaken is returned when a generated slug collides with an existing one.
	ErrSlugTaken = errors.New("profile slug already taken")
	// ErrStoreUnavailable marks failures of reads the caller cannot do without.
	ErrStoreUnavailable = errors.New("profile store unavailable")
)

// SoftWriteError reports a best-effort write that failed while the primary
// result of the operation is still valid.
type SoftWriteError struct {
	Op  string
	Err error
}

func (e *SoftWriteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *SoftWriteError) Unwrap() error {
	return e.Err
}

// IsSoftWriteFailure reports whether err only carries a best-effort write failure.
func IsSoftWriteFailure(err error) bool {
	var swe *SoftWriteError
	return errors.As(err, &swe)
}
