package validate

import (
	"errors"
	"fmt"
)

// Errors reported by parameter validation.
var (
	// ErrInvalidParameters matches every validation failure.
	ErrInvalidParameters = errors.New("speaker: invalid parameters")

	// ErrInvalidDriverParameters matches failures to derive a consistent
	// Thiele-Small set. It is a subcase of ErrInvalidParameters.
	ErrInvalidDriverParameters = errors.New("speaker: invalid driver parameters")

	// ErrInternal indicates a bug: validated input produced a result the
	// model cannot represent.
	ErrInternal = errors.New("speaker: internal error")
)

// Kind names the parameter group a validation failure belongs to.
type Kind string

// Parameter groups.
const (
	KindDriver      Kind = "driver"
	KindEnclosure   Kind = "enclosure"
	KindGrid        Kind = "grid"
	KindEnvironment Kind = "environment"
	KindDrive       Kind = "drive"
)

// ParameterError is the structured payload of a validation failure.
type ParameterError struct {
	Kind    Kind
	Field   string
	Message string

	driver bool
}

func (e *ParameterError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s parameters: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("invalid %s parameter %s: %s", e.Kind, e.Field, e.Message)
}

// Is reports whether target is one of the validation sentinels.
func (e *ParameterError) Is(target error) bool {
	switch target {
	case ErrInvalidParameters:
		return true
	case ErrInvalidDriverParameters:
		return e.driver
	}
	return false
}

// Errorf returns a ParameterError for the given group and field.
func Errorf(kind Kind, field, format string, args ...any) *ParameterError {
	return &ParameterError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// DriverErrorf returns a ParameterError that also matches
// ErrInvalidDriverParameters.
func DriverErrorf(field, format string, args ...any) *ParameterError {
	e := Errorf(KindDriver, field, format, args...)
	e.driver = true
	return e
}
