package tinydi

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorService struct{}

func TestUnregisteredKeyError(t *testing.T) {
	err := &UnregisteredKeyError{Key: NewToken[int]("port")}
	assert.Equal(t, "Token[int](port) is not registered", err.Error())
	assert.ErrorIs(t, err, ErrNotRegistered)

	named := &UnregisteredKeyError{Key: ClassOf[*errorService](), Name: "primary"}
	assert.Equal(t, `*errorService has no provider registered under name "primary"`, named.Error())
}

func TestDuplicateBindingError(t *testing.T) {
	err := &DuplicateBindingError{Key: ClassOf[*errorService]()}
	assert.Equal(t, "*errorService is already registered (container is strict)", err.Error())
	assert.ErrorIs(t, err, ErrDuplicateBinding)

	named := &DuplicateBindingError{Key: NewToken[int]("n"), Name: "first"}
	assert.Equal(t, `Token[int](n) is already registered with name "first"`, named.Error())
	assert.False(t, errors.Is(named, ErrNotRegistered))
}

func TestRegistrationError(t *testing.T) {
	err := &RegistrationError{Key: NewToken[int]("n"), Operation: "register", Cause: ErrEmptyName}
	assert.Equal(t, "failed to register Token[int](n): binding name cannot be empty", err.Error())
	assert.ErrorIs(t, err, ErrEmptyName)

	noKey := &RegistrationError{Operation: "register", Cause: ErrKeyNil}
	assert.Equal(t, "failed to register <nil key>: key cannot be nil", noKey.Error())
}

func TestResolutionError(t *testing.T) {
	err := &ResolutionError{Key: NewToken[int]("n"), Cause: ErrBindingModeConflict}
	assert.Equal(t, "failed to resolve Token[int](n): binding mode conflict", err.Error())
	assert.ErrorIs(t, err, ErrBindingModeConflict)

	named := &ResolutionError{Key: NewToken[int]("n"), Name: "x", Cause: ErrEmptyName}
	assert.Equal(t, "failed to resolve Token[int](n)[x]: binding name cannot be empty", named.Error())

	wrapped := fmt.Errorf("outer: %w", err)
	var target *ResolutionError
	assert.ErrorAs(t, wrapped, &target)
}

func TestTypeMismatchError(t *testing.T) {
	err := &TypeMismatchError{
		Key:      NewToken[string]("shared"),
		Expected: reflect.TypeOf(""),
		Actual:   reflect.TypeOf(0),
	}
	assert.Equal(t, "type assertion failed for Token[string](shared): expected string, got int", err.Error())
}

func TestFormatType(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"nil", nil, "<nil>"},
		{"pointer", reflect.TypeOf(&errorService{}), "*errorService"},
		{"pointer to builtin", reflect.TypeOf(new(int)), "*int"},
		{"slice", reflect.TypeOf([]errorService{}), "[]errorService"},
		{"slice of builtin", reflect.TypeOf([]any{}), "[]interface {}"},
		{"func", reflect.TypeOf(func() int { return 0 }), "func() int"},
		{"struct", reflect.TypeOf(errorService{}), "errorService"},
		{"map", reflect.TypeOf(map[string]int{}), "map[string]int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatType(tt.typ))
		})
	}
}
