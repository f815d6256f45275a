package tinydi

import (
	"time"

	"go.uber.org/zap"

	"github.com/junioryono/tinydi/config"
)

// Option configures a Container at construction.
type Option interface {
	applyOption(*containerOptions)
}

// containerOptions holds container configuration.
type containerOptions struct {
	strict     bool
	logger     *zap.Logger
	onResolve  []ResolveHook
	onRegister []RegisterHook
}

// optionFunc adapts a function to Option.
type optionFunc func(*containerOptions)

func (f optionFunc) applyOption(opts *containerOptions) {
	f(opts)
}

// ResolveHook observes every Resolve call, cache hits included. name is empty
// for unnamed resolutions.
type ResolveHook func(key, name string, duration time.Duration, err error)

// RegisterHook observes every successful registration.
type RegisterHook func(key, name string, mode BindingMode)

// WithStrict makes re-registering a single binding fail with a
// DuplicateBindingError instead of overwriting it.
func WithStrict(strict bool) Option {
	return optionFunc(func(opts *containerOptions) {
		opts.strict = strict
	})
}

// WithLogger sets the logger used for debug output. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *containerOptions) {
		if logger != nil {
			opts.logger = logger
		}
	})
}

// WithResolveObserver adds a hook called after each Resolve.
func WithResolveObserver(hook ResolveHook) Option {
	return optionFunc(func(opts *containerOptions) {
		if hook != nil {
			opts.onResolve = append(opts.onResolve, hook)
		}
	})
}

// WithRegisterObserver adds a hook called after each successful registration.
func WithRegisterObserver(hook RegisterHook) Option {
	return optionFunc(func(opts *containerOptions) {
		if hook != nil {
			opts.onRegister = append(opts.onRegister, hook)
		}
	})
}

// WithConfig applies loaded configuration. Only Strict is taken from cfg;
// build the logger with cfg.Logger and pass it through WithLogger.
//
//	cfg, err := config.Load(config.WithConfigFile("tinydi.yml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger, err := cfg.Logger()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c := tinydi.New(tinydi.WithConfig(cfg), tinydi.WithLogger(logger))
func WithConfig(cfg config.Container) Option {
	return optionFunc(func(opts *containerOptions) {
		opts.strict = cfg.Strict
	})
}

// BindingOption selects the binding variant for RegisterProvider and Resolve.
type BindingOption interface {
	applyBindingOption(*bindingOptions)
}

// bindingOptions holds the variant requested by the caller.
type bindingOptions struct {
	name  string
	named bool
	multi bool
}

// bindingOptionFunc adapts a function to BindingOption.
type bindingOptionFunc func(*bindingOptions)

func (f bindingOptionFunc) applyBindingOption(opts *bindingOptions) {
	f(opts)
}

// Name selects the named slot name of a key. It takes precedence over Multi.
func Name(name string) BindingOption {
	return bindingOptionFunc(func(opts *bindingOptions) {
		opts.name = name
		opts.named = true
	})
}

// Multi selects the ordered multi binding of a key.
func Multi() BindingOption {
	return bindingOptionFunc(func(opts *bindingOptions) {
		opts.multi = true
	})
}

func newBindingOptions(opts []BindingOption) (*bindingOptions, error) {
	options := &bindingOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyBindingOption(options)
		}
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	return options, nil
}

// Validate checks the options are consistent.
func (o *bindingOptions) Validate() error {
	if o.named && o.name == "" {
		return ErrEmptyName
	}
	return nil
}

// mode reports the effective binding mode, Name winning over Multi.
func (o *bindingOptions) mode() BindingMode {
	switch {
	case o.named:
		return ModeNamed
	case o.multi:
		return ModeMulti
	default:
		return ModeSingle
	}
}
