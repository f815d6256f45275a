package tinydi

import (
	"fmt"
	"reflect"
)

// providerKind says how a registered provider is materialized.
type providerKind int

const (
	// valueKind providers are returned as registered.
	valueKind providerKind = iota

	// factoryKind providers are called with no arguments.
	factoryKind

	// constructKind providers are types instantiated with zero arguments.
	constructKind
)

func (k providerKind) String() string {
	switch k {
	case valueKind:
		return "value"
	case factoryKind:
		return "factory"
	case constructKind:
		return "construct"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Constructor is implemented by types that finish their own initialization
// when the container constructs them. Construct runs once per materialization,
// right after allocation, and may itself call Resolve on the container.
//
//	type Handler struct {
//	    db *Database
//	}
//
//	func (h *Handler) Construct() error {
//	    db, err := tinydi.Resolve(c, tinydi.ClassOf[*Database]())
//	    h.db = db
//	    return err
//	}
type Constructor interface {
	Construct() error
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Provider is an explicitly tagged provider. Passing a Provider to
// RegisterProvider skips kind inference.
type Provider struct {
	kind  providerKind
	value any
	fn    reflect.Value
	typ   reflect.Type
	err   error
}

// Value tags v as a plain value. Use it to register functions or types as
// data, or to register nil.
func Value(v any) Provider {
	return Provider{kind: valueKind, value: v}
}

// Factory tags fn as a factory. fn must take no arguments and return either
// a single value or a value and an error.
func Factory(fn any) Provider {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() || !isFactoryType(rv.Type()) {
		return Provider{kind: factoryKind, err: fmt.Errorf("%w: got %T", ErrInvalidFactory, fn)}
	}
	return Provider{kind: factoryKind, fn: rv}
}

// Construct tags T as a constructible provider. Pointer types are allocated
// with new; other types start from their zero value. For a value type T, a
// Construct method on *T runs before the value is copied out.
func Construct[T any]() Provider {
	return constructProvider(reflect.TypeOf((*T)(nil)).Elem())
}

func constructProvider(t reflect.Type) Provider {
	if err := validateConstructible(t); err != nil {
		return Provider{kind: constructKind, err: err}
	}
	return Provider{kind: constructKind, typ: t}
}

// descriptor is a provider as stored in the container's tables.
type descriptor struct {
	Provider
}

// newDescriptor decides the provider kind once, at registration.
func newDescriptor(provider any) (*descriptor, error) {
	var p Provider

	switch v := provider.(type) {
	case Provider:
		p = v
	case *Provider:
		if v == nil {
			p = Value(nil)
		} else {
			p = *v
		}
	case reflect.Type:
		p = constructProvider(v)
	case classKey:
		p = constructProvider(v.Type())
	default:
		rv := reflect.ValueOf(provider)
		if rv.IsValid() && rv.Kind() == reflect.Func && !rv.IsNil() && isFactoryType(rv.Type()) {
			p = Provider{kind: factoryKind, fn: rv}
		} else {
			p = Value(provider)
		}
	}

	if p.err != nil {
		return nil, p.err
	}

	return &descriptor{Provider: p}, nil
}

// isFactoryType reports whether t is func() T or func() (T, error).
func isFactoryType(t reflect.Type) bool {
	if t.NumIn() != 0 || t.IsVariadic() {
		return false
	}

	switch t.NumOut() {
	case 1:
		return true
	case 2:
		return t.Out(1) == errorType
	default:
		return false
	}
}

func validateConstructible(t reflect.Type) error {
	if t == nil {
		return ErrNotConstructible
	}

	switch t.Kind() {
	case reflect.Interface, reflect.UnsafePointer, reflect.Invalid:
		return fmt.Errorf("%w: %s has no zero-argument constructor", ErrNotConstructible, formatType(t))
	}

	return nil
}

// materialize produces one instance from the descriptor. Errors from
// factories and Construct methods are returned unchanged.
func (d *descriptor) materialize() (any, error) {
	switch d.kind {
	case factoryKind:
		out := d.fn.Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil

	case constructKind:
		var v reflect.Value
		if d.typ.Kind() == reflect.Pointer {
			v = reflect.New(d.typ.Elem())
		} else {
			v = reflect.New(d.typ).Elem()
		}

		// value types run a pointer-receiver Construct on their own storage
		target := v
		if v.CanAddr() {
			target = v.Addr()
		}
		if c, ok := target.Interface().(Constructor); ok {
			if err := c.Construct(); err != nil {
				return nil, err
			}
		}
		return v.Interface(), nil

	default:
		return d.value, nil
	}
}
