package errors

import (
	"fmt"
)

// PathNotFound creates a path not found error. This is the one error code the
// watcher treats as domain information (a deleted file) rather than a fault.
func PathNotFound(path string) *FswatchError {
	return New(ErrCodePathNotFound, fmt.Sprintf("path not found: %s", path)).
		WithDetail("path", path)
}

// StatFailed creates a stat failure error for a path that exists but could not
// be queried (permissions, I/O).
func StatFailed(path string, err error) *FswatchError {
	return Wrap(err, ErrCodeStatFailed, fmt.Sprintf("failed to stat: %s", path)).
		WithDetail("path", path)
}

// ReadFailed creates a read failure error
func ReadFailed(path string, err error) *FswatchError {
	return Wrap(err, ErrCodeReadFailed, fmt.Sprintf("failed to read: %s", path)).
		WithDetail("path", path)
}

// HashFailed creates a content hashing failure error
func HashFailed(path string, err error) *FswatchError {
	return Wrap(err, ErrCodeHashFailed, fmt.Sprintf("failed to hash content: %s", path)).
		WithDetail("path", path)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *FswatchError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *FswatchError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// StateInvalid creates an invalid state file error
func StateInvalid(path string, err error) *FswatchError {
	return Wrap(err, ErrCodeStateInvalid, fmt.Sprintf("invalid state file: %s", path)).
		WithDetail("path", path)
}
