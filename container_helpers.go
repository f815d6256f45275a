package tinydi

import (
	"fmt"
	"reflect"
)

// Resolve is a generic helper that resolves key and asserts the instance to T.
//
//	db, err := tinydi.Resolve(c, tinydi.ClassOf[*Database]())
//	port, err := tinydi.Resolve(c, Port)
//
// A nil instance (a Value(nil) binding, or a factory returning nil) yields the
// zero value of T. Multi is rejected with ErrBindingModeConflict; use
// ResolveAll for multi-bound keys.
func Resolve[T any](c *Container, key TypedKey[T], opts ...BindingOption) (T, error) {
	var zero T

	if wantsSequence(opts) {
		return zero, &ResolutionError{Key: key, Cause: fmt.Errorf("%w: use ResolveAll", ErrBindingModeConflict)}
	}

	instance, err := c.Resolve(key, opts...)
	if err != nil {
		return zero, err
	}

	return assertInstance[T](key, instance)
}

// ResolveNamed is a generic helper that resolves the (key, name) slot as T.
func ResolveNamed[T any](c *Container, key TypedKey[T], name string) (T, error) {
	return Resolve(c, key, Name(name))
}

// ResolveAll is a generic helper that resolves a multi-bound key as []T, one
// element per provider in registration order.
func ResolveAll[T any](c *Container, key TypedKey[T]) ([]T, error) {
	instance, err := c.Resolve(key, Multi())
	if err != nil {
		return nil, err
	}

	values, ok := instance.([]any)
	if !ok {
		return nil, &TypeMismatchError{
			Key:      key,
			Expected: reflect.TypeOf((*[]T)(nil)).Elem(),
			Actual:   reflect.TypeOf(instance),
		}
	}

	result := make([]T, 0, len(values))
	for _, v := range values {
		typed, err := assertInstance[T](key, v)
		if err != nil {
			return nil, err
		}
		result = append(result, typed)
	}

	return result, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, key TypedKey[T], opts ...BindingOption) T {
	result, err := Resolve(c, key, opts...)
	if err != nil {
		panic(err)
	}
	return result
}

// Injectable registers T as its own single provider on c and returns its key.
// It is meant for package-level declarations next to the type:
//
//	type UserService struct{}
//
//	var UserServiceKey = tinydi.Injectable[*UserService](container)
//
// It panics when the registration fails.
func Injectable[T any](c *Container) Class[T] {
	key := ClassOf[T]()
	c.Injectable()(key)
	return key
}

func assertInstance[T any](key Key, instance any) (T, error) {
	var zero T
	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Key:      key,
			Expected: reflect.TypeOf((*T)(nil)).Elem(),
			Actual:   reflect.TypeOf(instance),
		}
	}

	return result, nil
}

// wantsSequence reports whether opts select the multi binding. Invalid
// options are left for Resolve to report.
func wantsSequence(opts []BindingOption) bool {
	options, err := newBindingOptions(opts)
	return err == nil && options.mode() == ModeMulti
}
