package crypto

import (
	"errors"
	"fmt"
)

var (
	ErrCannotRestoreKey          = errors.New("cannot restore key")
	ErrIncompatibleKeyConversion = errors.New("incompatible key conversion")
	ErrFailedToSign              = errors.New("failed to sign")
	ErrUnsupportedAlgorithm      = errors.New("unsupported algorithm")
)

// RestoreKeyError is returned when a byte blob doesn't decode as a private key
type RestoreKeyError struct {
	Algorithm string
	Err       error
}

func (e *RestoreKeyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: cannot restore key pair: %v", e.Algorithm, e.Err)
	}
	return fmt.Sprintf("%s: cannot restore key pair", e.Algorithm)
}

func (e *RestoreKeyError) Unwrap() error        { return e.Err }
func (e *RestoreKeyError) Is(target error) bool { return target == ErrCannotRestoreKey }

// IncompatibleKeyError covers public keys which don't decode and signatures of the wrong shape
type IncompatibleKeyError struct {
	Algorithm string
	Reason    string
}

func (e *IncompatibleKeyError) Error() string {
	return fmt.Sprintf("%s: incompatible key conversion: %s", e.Algorithm, e.Reason)
}

func (e *IncompatibleKeyError) Is(target error) bool { return target == ErrIncompatibleKeyConversion }

type SignError struct {
	Algorithm string
	Err       error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("%s: failed to sign: %v", e.Algorithm, e.Err)
}

func (e *SignError) Unwrap() error        { return e.Err }
func (e *SignError) Is(target error) bool { return target == ErrFailedToSign }

type UnsupportedAlgorithmError struct {
	ID string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm: %q", e.ID)
}

func (e *UnsupportedAlgorithmError) Is(target error) bool { return target == ErrUnsupportedAlgorithm }

// NewRestoreKeyError is a shortcut for plugins
func NewRestoreKeyError(alg string, format string, args ...any) error {
	return &RestoreKeyError{Algorithm: alg, Err: fmt.Errorf(format, args...)}
}
