package tinydi

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"
)

// Export makes a binding of c available to a dig container. The exported
// constructor resolves lazily through c, so dig receives the instance cached
// by c. dig keeps its own copy afterwards; ClearInstances does not reach it.
//
// Multi is rejected; multi bindings go through ExportGroup. With Name the
// export is tagged with dig.Name:
//
//	dc := dig.New()
//	tinydi.Export(c, dc, tinydi.ClassOf[*Database]())
//	tinydi.Export(c, dc, ReplicaDB, tinydi.Name("replica"))
//
//	dc.Invoke(func(db *Database) { ... })
func Export[T any](c *Container, dc *dig.Container, key TypedKey[T], opts ...BindingOption) error {
	if key == nil {
		return &RegistrationError{Operation: "export", Cause: ErrKeyNil}
	}

	options, err := newBindingOptions(opts)
	if err != nil {
		return &RegistrationError{Key: key, Operation: "export", Cause: err}
	}
	if options.mode() == ModeMulti {
		return &RegistrationError{
			Key:       key,
			Operation: "export",
			Cause:     fmt.Errorf("%w: use ExportGroup", ErrBindingModeConflict),
		}
	}

	var digOpts []dig.ProvideOption
	if options.named {
		if !c.ContainsNamed(key, options.name) {
			return &UnregisteredKeyError{Key: key, Name: options.name}
		}
		digOpts = append(digOpts, dig.Name(options.name))
	} else if !c.Contains(key) {
		return &UnregisteredKeyError{Key: key}
	}

	constructor := func() (T, error) {
		return Resolve(c, key, opts...)
	}

	if err := dc.Provide(constructor, digOpts...); err != nil {
		return &RegistrationError{Key: key, Operation: "export", Cause: err}
	}

	c.logger.Debug("binding exported to dig",
		zap.Stringer("key", key),
		zap.String("name", options.name))

	return nil
}

// ExportGroup exports every provider of a multi-bound key into the dig value
// group named group. Providers registered after the export are not seen by
// dig.
//
//	type Params struct {
//	    dig.In
//
//	    Handlers []Handler `group:"handlers"`
//	}
func ExportGroup[T any](c *Container, dc *dig.Container, key TypedKey[T], group string) error {
	if key == nil {
		return &RegistrationError{Operation: "export", Cause: ErrKeyNil}
	}
	if group == "" {
		return &RegistrationError{Key: key, Operation: "export", Cause: ErrEmptyName}
	}

	b, ok := c.providers.lookup(key)
	if !ok {
		return &UnregisteredKeyError{Key: key}
	}
	if !b.multi {
		return &RegistrationError{Key: key, Operation: "export", Cause: ErrBindingModeConflict}
	}

	for index := range b.descriptors {
		index := index
		constructor := func() (T, error) {
			var zero T
			values, err := ResolveAll(c, key)
			if err != nil {
				return zero, err
			}
			if index >= len(values) {
				return zero, &ResolutionError{
					Key:   key,
					Cause: fmt.Errorf("%w: provider %d of %d", ErrNotRegistered, index, len(values)),
				}
			}
			return values[index], nil
		}

		if err := dc.Provide(constructor, dig.Group(group)); err != nil {
			return &RegistrationError{Key: key, Operation: "export", Cause: err}
		}
	}

	c.logger.Debug("multi binding exported to dig",
		zap.Stringer("key", key),
		zap.String("group", group),
		zap.Int("providers", len(b.descriptors)))

	return nil
}
