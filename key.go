package tinydi

import (
	"fmt"
	"reflect"
)

// Key identifies a bindable slot in a Container.
//
// The two implementations are Class, whose identity is a Go type, and Token,
// whose identity is a plain string.
type Key interface {
	fmt.Stringer

	// id returns the comparable value used as the table key.
	id() any
}

// TypedKey is a Key that also records, at compile time, the type resolving it
// yields. Both Class[T] and Token[T] are TypedKey[T].
type TypedKey[T any] interface {
	Key

	resolvesTo() T
}

// Class is a key identified by the type T itself.
//
// Registering a Class without a provider registers T as its own constructible
// provider:
//
//	c.Register(tinydi.ClassOf[*Database]())
//	db, err := tinydi.Resolve(c, tinydi.ClassOf[*Database]())
type Class[T any] struct{}

// ClassOf returns the key for type T.
func ClassOf[T any]() Class[T] {
	return Class[T]{}
}

// Type returns the reflect.Type of T.
func (Class[T]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (c Class[T]) String() string {
	return formatType(c.Type())
}

func (c Class[T]) id() any {
	return c.Type()
}

func (Class[T]) resolvesTo() T {
	var zero T
	return zero
}

// tokenID is the runtime identity of every Token, whatever its type parameter.
type tokenID string

// Token is an opaque, string-identified key. The type parameter T only states
// what resolving the token yields; it takes no part in the key's identity.
// NewToken[int]("x") and NewToken[string]("x") address the same slot.
type Token[T any] struct {
	name string
}

// NewToken creates a token for values of type T.
//
//	var DSN = tinydi.NewToken[string]("dsn")
//
//	c.RegisterProvider(DSN, "postgres://localhost/app")
//	dsn, err := tinydi.Resolve(c, DSN)
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the token's name.
func (t Token[T]) Name() string {
	return t.name
}

func (t Token[T]) String() string {
	return fmt.Sprintf("Token[%s](%s)", formatType(reflect.TypeOf((*T)(nil)).Elem()), t.name)
}

func (t Token[T]) id() any {
	return tokenID(t.name)
}

func (Token[T]) resolvesTo() T {
	var zero T
	return zero
}

// classKey is satisfied by every Class[T].
type classKey interface {
	Key
	Type() reflect.Type
}

// defaultProvider is what a key registers when no provider is given: a Class
// constructs its own type, anything else registers the key value itself.
func defaultProvider(key Key) any {
	if ck, ok := key.(classKey); ok {
		return ck.Type()
	}
	return Value(key)
}
