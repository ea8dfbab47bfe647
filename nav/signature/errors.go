package signature

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinels for errors.Is; each typed error below matches exactly one of them.
var (
	ErrConfiguration     = errors.New("nav signature: configuration error")
	ErrKeyFormat         = errors.New("nav signature: key format error")
	ErrSigning           = errors.New("nav signature: signing error")
	ErrIncompleteHeader  = errors.New("nav signature: incomplete header set")
	ErrSignatureMismatch = errors.New("nav signature: signature does not match")
)

// ConfigurationError reports a missing or empty credential field.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("nav signature: credential %q is missing or empty", e.Field)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// KeyFormatError reports signing key material that is not a usable RSA private key.
type KeyFormatError struct {
	Err error
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("nav signature: signing key is not a valid RSA private key: %v", e.Err)
}

func (e *KeyFormatError) Unwrap() error { return e.Err }

func (e *KeyFormatError) Is(target error) bool { return target == ErrKeyFormat }

// SigningError reports a failure of the RSA signing operation itself.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("nav signature: signing failed: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

func (e *SigningError) Is(target error) bool { return target == ErrSigning }

// IncompleteHeaderError lists header fields that ended up empty.
type IncompleteHeaderError struct {
	Missing []string
}

func (e *IncompleteHeaderError) Error() string {
	return fmt.Sprintf("nav signature: header set incomplete, empty fields: %v", e.Missing)
}

func (e *IncompleteHeaderError) Is(target error) bool { return target == ErrIncompleteHeader }
