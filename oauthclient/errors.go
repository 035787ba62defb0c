package oauthclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-fxa-oauth/scope"
)

var (
	// ErrOutOfProtocol matches any *OutOfProtocolError.
	ErrOutOfProtocol = errors.New("out of protocol response")

	// ErrScopeMismatch matches any *ScopeMismatchError.
	ErrScopeMismatch = errors.New("scope mismatch")

	// ErrMissingClientID is returned before any request is made when neither the
	// configuration nor the call supplies a client id.
	ErrMissingClientID = errors.New("client_id is required")
)

// OutOfProtocolError means the server answered with a well-formed response
// that does not honour the expected field contract.
type OutOfProtocolError struct {
	Message string
}

func (e *OutOfProtocolError) Error() string {
	return e.Message
}

func (e *OutOfProtocolError) Is(target error) bool {
	return target == ErrOutOfProtocol
}

func missingFieldsError(fields ...string) *OutOfProtocolError {
	return &OutOfProtocolError{
		Message: fmt.Sprintf("%s missing in OAuth response", strings.Join(fields, ", ")),
	}
}

// ScopeMismatchError means a verified token does not grant every requested scope.
type ScopeMismatchError struct {
	Granted   scope.Set
	Requested scope.Set
}

func (e *ScopeMismatchError) Error() string {
	return fmt.Sprintf("scope %q does not match %q", e.Granted.String(), e.Requested.String())
}

func (e *ScopeMismatchError) Is(target error) bool {
	return target == ErrScopeMismatch
}
