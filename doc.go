// Package tinydi provides a small dependency-injection registry for Go
// applications.
//
// # Overview
//
// A Container maps keys to providers and caches the instances those
// providers produce:
//   - Keys are either a type (ClassOf[T]) or a named token (NewToken[T])
//   - Providers are values, zero-argument factories or constructible types
//   - Instances are created lazily on first Resolve and cached
//   - Single, multi and named bindings
//   - Optional strict mode rejecting duplicate registrations
//
// There are no lifetimes beyond the cache, no scopes and no constructor
// parameter injection. Code that needs a dependency asks the container for
// it.
//
// # Basic Usage
//
//	c := tinydi.New()
//
//	c.Register(tinydi.ClassOf[*Logger]())
//	c.RegisterProvider(tinydi.ClassOf[*Database](), NewDatabase)
//
//	db, err := tinydi.Resolve(c, tinydi.ClassOf[*Database]())
//
// # Tokens
//
// Tokens bind values that have no dedicated type. The type parameter only
// documents what the token resolves to; two tokens with the same name are the
// same key.
//
//	var Port = tinydi.NewToken[int]("port")
//
//	c.RegisterProvider(Port, 8080)
//	port, err := tinydi.Resolve(c, Port)
//
// # Providers
//
// The kind of a provider is decided when it is registered:
//
//	c.RegisterProvider(key, tinydi.Value(v))        // returned as is
//	c.RegisterProvider(key, tinydi.Factory(newFn))  // called once per materialization
//	c.RegisterProvider(key, tinydi.Construct[*T]()) // new(T), then T.Construct if defined
//
// Untagged providers are inferred: a Class or reflect.Type is constructible,
// a func() T or func() (T, error) is a factory, anything else is a value.
//
// # Multi and Named Bindings
//
//	c.RegisterProvider(Plugins, NewAuthPlugin, tinydi.Multi())
//	c.RegisterProvider(Plugins, NewCachePlugin, tinydi.Multi())
//	plugins, err := tinydi.ResolveAll(c, Plugins)
//
//	c.RegisterProvider(DB, NewPrimary, tinydi.Name("primary"))
//	c.RegisterProvider(DB, NewReplica, tinydi.Name("replica"))
//	replica, err := tinydi.ResolveNamed(c, DB, "replica")
//
// Named slots can only be registered once. Name takes precedence over Multi.
//
// # Caching
//
// Every Resolve after the first returns the cached instance. Re-registering a
// key does not replace an instance that is already cached; ClearInstances
// drops the cache while keeping every registration.
//
// # Thread Safety
//
// Tables are guarded by locks, but locks are never held while a provider
// runs, so providers may resolve other keys. When goroutines race to
// materialize the same key the first stored instance wins.
//
// # Error Handling
//
//   - UnregisteredKeyError: nothing registered for the key or name
//   - DuplicateBindingError: named slot taken, or strict duplicate
//   - RegistrationError: invalid registration (bad factory, mode conflict)
//   - ResolutionError: invalid resolution request
//   - TypeMismatchError: instance is not of the requested type
//
// Errors returned by factories and Construct methods reach the caller
// unwrapped and nothing is cached for the failed key.
package tinydi
