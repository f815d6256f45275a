package tinydi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors that are wrapped in typed errors when returned.
// Match them with errors.Is.

var (
	// Key errors.
	ErrKeyNil        = errors.New("key cannot be nil")
	ErrNotRegistered = errors.New("key is not registered")

	// Registration errors.
	ErrDuplicateBinding    = errors.New("binding already registered")
	ErrBindingModeConflict = errors.New("binding mode conflict")
	ErrEmptyName           = errors.New("binding name cannot be empty")

	// Provider errors.
	ErrInvalidFactory   = errors.New("factory must take no arguments and return (T) or (T, error)")
	ErrNotConstructible = errors.New("type cannot be constructed")
)

var (
	_ error = (*UnregisteredKeyError)(nil)
	_ error = (*DuplicateBindingError)(nil)
	_ error = (*RegistrationError)(nil)
	_ error = (*ResolutionError)(nil)
	_ error = (*TypeMismatchError)(nil)
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// UnregisteredKeyError is returned by Resolve when no provider exists for the
// requested key, or for the requested name of a named key.
type UnregisteredKeyError struct {
	Key  Key
	Name string // empty for unnamed lookups
}

func (e *UnregisteredKeyError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s has no provider registered under name %q", formatKey(e.Key), e.Name)
	}
	return fmt.Sprintf("%s is not registered", formatKey(e.Key))
}

func (e *UnregisteredKeyError) Unwrap() error {
	return ErrNotRegistered
}

// DuplicateBindingError is returned by RegisterProvider when a named slot is
// registered twice, or when a single binding is registered twice on a strict
// container.
type DuplicateBindingError struct {
	Key  Key
	Name string // empty for single bindings
}

func (e *DuplicateBindingError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s is already registered with name %q", formatKey(e.Key), e.Name)
	}
	return fmt.Sprintf("%s is already registered (container is strict)", formatKey(e.Key))
}

func (e *DuplicateBindingError) Unwrap() error {
	return ErrDuplicateBinding
}

// RegistrationError wraps errors during provider registration.
type RegistrationError struct {
	Key       Key
	Operation string // "register", "create-descriptor", "export"
	Cause     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, formatKey(e.Key), e.Cause)
}

func (e *RegistrationError) Unwrap() error {
	return e.Cause
}

// ResolutionError wraps container-level errors that occur during resolution.
// Errors returned by providers themselves are never wrapped.
type ResolutionError struct {
	Key   Key
	Name  string
	Cause error
}

func (e *ResolutionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("failed to resolve %s[%s]: %v", formatKey(e.Key), e.Name, e.Cause)
	}
	return fmt.Sprintf("failed to resolve %s: %v", formatKey(e.Key), e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a resolved instance does not have the type the
// caller asked for.
type TypeMismatchError struct {
	Key      Key
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type assertion failed for %s: expected %s, got %s",
		formatKey(e.Key), formatType(e.Expected), formatType(e.Actual))
}

func formatKey(k Key) string {
	if k == nil {
		return "<nil key>"
	}
	return k.String()
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		// *Type instead of *package.Type
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return strings.TrimSpace(t.String())
	}
}
