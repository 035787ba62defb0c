package errors

import (
	"errors"
	"fmt"
)

// Common error values shared by the client packages
var (
	// Transport errors
	ErrInvalidResponse = errors.New("invalid response body")
	ErrEncodeRequest   = errors.New("failed to encode request")
	ErrRequestFailed   = errors.New("request failed")

	// Configuration errors
	ErrInvalidServerURL = errors.New("invalid server url")
	ErrMissingEnv       = errors.New("missing environment variable")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
