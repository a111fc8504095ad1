package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrMissingToken       = errors.New("missing token")
	ErrFreshTokenRequired = errors.New("fresh token required")

	// Both satisfy IsInvalidToken.
	ErrMalformedToken   = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrInvalidSignature = fmt.Errorf("%w: signature verification failed", ErrInvalidToken)
	ErrWrongTokenType   = fmt.Errorf("%w: wrong token type", ErrInvalidToken)
)

// ValidationError carries per-field messages for a rejected request body.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidArgument, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// Add appends msg to the messages recorded for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// WrongTokenTypeError names the token type a route expected.
type WrongTokenTypeError struct {
	Want string
}

func (e *WrongTokenTypeError) Error() string {
	return fmt.Sprintf("%s: want %s", ErrWrongTokenType, e.Want)
}

func (e *WrongTokenTypeError) Unwrap() error { return ErrWrongTokenType }

func NewWrongTokenType(want string) error {
	return &WrongTokenTypeError{Want: want}
}

// AsWrongTokenType extracts the expected token type from err, if any.
func AsWrongTokenType(err error) (*WrongTokenTypeError, bool) {
	var w *WrongTokenTypeError
	if errors.As(err, &w) {
		return w, true
	}
	return nil, false
}

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// AsValidation extracts the field messages from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

func IsTokenRevoked(err error) bool {
	return errors.Is(err, ErrTokenRevoked)
}

func IsMissingToken(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsWrongTokenType(err error) bool {
	return errors.Is(err, ErrWrongTokenType)
}

func IsFreshTokenRequired(err error) bool {
	return errors.Is(err, ErrFreshTokenRequired)
}
