package tinydi

import "sync/atomic"

// defaultContainer holds the default Container.
var defaultContainer atomic.Pointer[Container]

// SetDefaultContainer sets the Container returned by DefaultContainer.
// This is similar to slog.SetDefault. Pass nil to remove it.
//
// Nothing is ever registered into the default container implicitly; it is a
// convenience for applications that want one well-known container.
func SetDefaultContainer(c *Container) {
	defaultContainer.Store(c)
}

// DefaultContainer returns the current default Container, or nil if none has
// been set.
func DefaultContainer() *Container {
	return defaultContainer.Load()
}
