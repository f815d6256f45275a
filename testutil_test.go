package tinydi_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/junioryono/tinydi"
)

// Common test errors
var (
	errConstruct = errors.New("construct failed")
	errFactory   = errors.New("factory failed")
)

// Valuer is implemented by the small fixture classes below.
type Valuer interface {
	Value() int
}

// ClassA is the equivalent of a class with a field initialized to 5.
type ClassA struct {
	Val int
}

func (a *ClassA) Construct() error {
	a.Val = 5
	return nil
}

func (a *ClassA) Value() int { return a.Val }

// ClassB initializes its field to 6.
type ClassB struct {
	Val int
}

func (b *ClassB) Construct() error {
	b.Val = 6
	return nil
}

func (b *ClassB) Value() int { return b.Val }

// ClassC initializes its field to 7.
type ClassC struct {
	Val int
}

func (cc *ClassC) Construct() error {
	cc.Val = 7
	return nil
}

func (cc *ClassC) Value() int { return cc.Val }

// countedClass counts how many times the container constructed it.
type countedClass struct {
	Seq int32
}

var countedConstructs atomic.Int32

func (c *countedClass) Construct() error {
	c.Seq = countedConstructs.Add(1)
	return nil
}

func resetCounted(t *testing.T) {
	t.Helper()
	countedConstructs.Store(0)
	t.Cleanup(func() { countedConstructs.Store(0) })
}

// flakyClass fails to construct while flakyFailures is positive.
type flakyClass struct {
	Ready bool
}

var flakyFailures atomic.Int32

func (f *flakyClass) Construct() error {
	if flakyFailures.Add(-1) >= 0 {
		return errConstruct
	}
	f.Ready = true
	return nil
}

// Database is a plain dependency.
type Database struct {
	DSN string
}

// UserService pulls its database from the default container while it is
// constructed, the way a field initializer would.
type UserService struct {
	DB *Database
}

func (s *UserService) Construct() error {
	db, err := tinydi.Resolve(tinydi.DefaultContainer(), tinydi.ClassOf[*Database]())
	if err != nil {
		return err
	}
	s.DB = db
	return nil
}

// plainStruct has no Construct method and is constructed by value.
type plainStruct struct {
	Name string
}

// useDefaultContainer installs c as the default container for one test.
func useDefaultContainer(t *testing.T, c *tinydi.Container) {
	t.Helper()
	previous := tinydi.DefaultContainer()
	tinydi.SetDefaultContainer(c)
	t.Cleanup(func() { tinydi.SetDefaultContainer(previous) })
}

// newObservedContainer returns a container logging into an observer.
func newObservedContainer(opts ...tinydi.Option) (*tinydi.Container, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	opts = append(opts, tinydi.WithLogger(zap.New(core)))
	return tinydi.New(opts...), logs
}
