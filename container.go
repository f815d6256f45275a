package tinydi

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Container is a registry of providers and a cache of the instances they
// produced.
//
// Providers are materialized lazily, on the first Resolve of their key, and
// the result is cached until ClearInstances. Registrations live as long as
// the container.
//
// Example:
//
//	c := tinydi.New()
//	c.Register(tinydi.ClassOf[*Logger]())
//	c.RegisterProvider(Port, 8080)
//
//	logger, err := tinydi.Resolve(c, tinydi.ClassOf[*Logger]())
type Container struct {
	id     string
	strict bool
	logger *zap.Logger

	onResolve  []ResolveHook
	onRegister []RegisterHook

	providers *collection
	instances *instanceCache
}

// New creates an empty Container.
func New(opts ...Option) *Container {
	options := &containerOptions{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyOption(options)
		}
	}

	c := &Container{
		id:         uuid.NewString(),
		strict:     options.strict,
		onResolve:  options.onResolve,
		onRegister: options.onRegister,
		providers:  newCollection(),
		instances:  newInstanceCache(),
	}
	c.logger = options.logger.With(zap.String("container_id", c.id))

	return c
}

// ID returns the unique identifier assigned to the container at creation.
func (c *Container) ID() string {
	return c.id
}

// Strict reports whether single bindings may not be re-registered.
func (c *Container) Strict() bool {
	return c.strict
}

// Register registers key as its own provider. It is RegisterProvider with a
// nil provider.
func (c *Container) Register(key Key, opts ...BindingOption) error {
	return c.RegisterProvider(key, nil, opts...)
}

// RegisterProvider registers provider under key.
//
// A nil provider stands for the key itself: a Class registers its type as a
// constructible provider, a Token registers the token value. Use Value(nil)
// to bind a nil value.
//
// The provider kind is inferred unless provider comes from Value, Factory or
// Construct. A Class or reflect.Type is constructible; a func() T or
// func() (T, error) is a factory; anything else is a value.
//
// With Name the provider fills the (key, name) slot, which must be free. With
// Multi it is appended to the key's ordered providers. Otherwise it replaces
// the key's provider, or fails with a DuplicateBindingError on a strict
// container. Instance caches are not touched.
func (c *Container) RegisterProvider(key Key, provider any, opts ...BindingOption) error {
	if key == nil {
		return &RegistrationError{Operation: "register", Cause: ErrKeyNil}
	}

	options, err := newBindingOptions(opts)
	if err != nil {
		return &RegistrationError{Key: key, Operation: "register", Cause: err}
	}

	if provider == nil {
		provider = defaultProvider(key)
	}

	d, err := newDescriptor(provider)
	if err != nil {
		return &RegistrationError{Key: key, Operation: "create-descriptor", Cause: err}
	}

	mode := options.mode()
	switch mode {
	case ModeNamed:
		err = c.providers.addNamed(key, options.name, d)
	case ModeMulti:
		err = c.providers.addMulti(key, d)
	default:
		err = c.providers.addSingle(key, d, c.strict)
	}

	if err != nil {
		c.logger.Debug("registration rejected",
			zap.Stringer("key", key),
			zap.String("name", options.name),
			zap.Stringer("mode", mode),
			zap.Error(err))
		return err
	}

	c.logger.Debug("provider registered",
		zap.Stringer("key", key),
		zap.String("name", options.name),
		zap.Stringer("mode", mode),
		zap.Stringer("kind", d.kind))

	for _, hook := range c.onRegister {
		hook(key.String(), options.name, mode)
	}

	return nil
}

// Resolve returns the instance bound to key, materializing and caching it on
// first use.
//
// With Name the named slot is resolved. Multi-bound keys resolve to a []any
// holding one instance per provider in registration order; passing Multi
// asserts the key is multi-bound.
//
// Resolve returns an UnregisteredKeyError when nothing is registered. Errors
// from factories and Construct methods are returned unchanged and leave the
// slot uncached, so the next Resolve tries again.
func (c *Container) Resolve(key Key, opts ...BindingOption) (any, error) {
	start := time.Now()

	instance, name, err := c.resolve(key, opts)

	duration := time.Since(start)
	if err != nil {
		c.logger.Debug("resolve failed",
			zap.String("key", formatKey(key)),
			zap.String("name", name),
			zap.Duration("duration", duration),
			zap.Error(err))
	}

	if len(c.onResolve) > 0 {
		keyString := formatKey(key)
		for _, hook := range c.onResolve {
			hook(keyString, name, duration, err)
		}
	}

	return instance, err
}

func (c *Container) resolve(key Key, opts []BindingOption) (any, string, error) {
	if key == nil {
		return nil, "", &ResolutionError{Cause: ErrKeyNil}
	}

	options, err := newBindingOptions(opts)
	if err != nil {
		return nil, "", &ResolutionError{Key: key, Cause: err}
	}

	if options.named {
		instance, err := c.resolveNamed(key, options.name)
		return instance, options.name, err
	}

	instance, err := c.resolveUnnamed(key, options.multi)
	return instance, "", err
}

func (c *Container) resolveNamed(key Key, name string) (any, error) {
	id := key.id()
	if instance, ok := c.instances.getNamed(id, name); ok {
		return instance, nil
	}

	d, ok := c.providers.lookupNamed(key, name)
	if !ok {
		return nil, &UnregisteredKeyError{Key: key, Name: name}
	}

	instance, err := d.materialize()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("instance created",
		zap.Stringer("key", key),
		zap.String("name", name),
		zap.Stringer("kind", d.kind))

	return c.instances.storeNamed(id, name, instance), nil
}

func (c *Container) resolveUnnamed(key Key, wantMulti bool) (any, error) {
	id := key.id()
	if entry, ok := c.instances.get(id); ok {
		if wantMulti && !entry.multi {
			return nil, &ResolutionError{Key: key, Cause: ErrBindingModeConflict}
		}
		return entry.value, nil
	}

	b, ok := c.providers.lookup(key)
	if !ok {
		return nil, &UnregisteredKeyError{Key: key}
	}

	if wantMulti && !b.multi {
		return nil, &ResolutionError{Key: key, Cause: ErrBindingModeConflict}
	}

	var entry cacheEntry
	if b.multi {
		values := make([]any, 0, len(b.descriptors))
		for _, d := range b.descriptors {
			instance, err := d.materialize()
			if err != nil {
				return nil, err
			}
			values = append(values, instance)
		}
		entry = cacheEntry{value: values, multi: true}
	} else {
		instance, err := b.descriptors[0].materialize()
		if err != nil {
			return nil, err
		}
		entry = cacheEntry{value: instance}
	}

	c.logger.Debug("instance created",
		zap.Stringer("key", key),
		zap.Bool("multi", b.multi),
		zap.Int("providers", len(b.descriptors)))

	return c.instances.store(id, entry).value, nil
}

// ClearInstances drops every cached instance, named and unnamed. Providers
// stay registered; the next Resolve of a key materializes it again.
func (c *Container) ClearInstances() {
	cleared := c.instances.len()
	c.instances.clear()
	c.logger.Debug("instances cleared", zap.Int("count", cleared))
}

// Injectable returns a decorator-style function that registers a key as its
// own single provider and hands the key back unchanged. It panics when the
// registration fails, which only happens for duplicates on a strict
// container.
//
//	var inject = c.Injectable()
//	var ServiceKey = inject(tinydi.ClassOf[*Service]())
func (c *Container) Injectable() func(Key) Key {
	return func(key Key) Key {
		if err := c.Register(key); err != nil {
			panic(err)
		}
		return key
	}
}

// Contains checks if key has an unnamed binding.
func (c *Container) Contains(key Key) bool {
	if key == nil {
		return false
	}
	return c.providers.Contains(key)
}

// ContainsNamed checks if key has a provider registered under name.
func (c *Container) ContainsNamed(key Key, name string) bool {
	if key == nil {
		return false
	}
	return c.providers.ContainsNamed(key, name)
}

// Keys returns the sorted string form of every registered key.
func (c *Container) Keys() []string {
	return c.providers.Keys()
}

// Count returns the number of registered providers.
func (c *Container) Count() int {
	return c.providers.Count()
}
