package tinydi

import (
	"sort"
	"sync"
)

// binding is the provider entry of an unnamed key.
type binding struct {
	key         Key
	multi       bool
	descriptors []*descriptor
}

// namedBindings is the secondary table of a named key.
type namedBindings struct {
	key         Key
	descriptors map[string]*descriptor
}

// collection holds the provider tables. Entries are never removed.
type collection struct {
	mu sync.RWMutex

	// bindings stores single and multi providers by key identity
	bindings map[any]*binding

	// named stores named providers by key identity, then by name
	named map[any]*namedBindings
}

func newCollection() *collection {
	return &collection{
		bindings: make(map[any]*binding),
		named:    make(map[any]*namedBindings),
	}
}

// addSingle registers d as the only provider of key. On a strict collection
// an existing binding is a DuplicateBindingError, otherwise it is replaced.
func (r *collection) addSingle(key Key, d *descriptor, strict bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := key.id()
	if _, exists := r.bindings[id]; exists && strict {
		return &DuplicateBindingError{Key: key}
	}

	r.bindings[id] = &binding{key: key, descriptors: []*descriptor{d}}
	return nil
}

// addMulti appends d to the ordered providers of key.
func (r *collection) addMulti(key Key, d *descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := key.id()
	b, exists := r.bindings[id]
	if !exists {
		b = &binding{key: key, multi: true}
		r.bindings[id] = b
	}

	if !b.multi {
		return &RegistrationError{Key: key, Operation: "register", Cause: ErrBindingModeConflict}
	}

	b.descriptors = append(b.descriptors, d)
	return nil
}

// addNamed registers d under (key, name). Named slots are unique whatever the
// container mode.
func (r *collection) addNamed(key Key, name string, d *descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := key.id()
	nb, exists := r.named[id]
	if !exists {
		nb = &namedBindings{key: key, descriptors: make(map[string]*descriptor)}
		r.named[id] = nb
	}

	if _, taken := nb.descriptors[name]; taken {
		return &DuplicateBindingError{Key: key, Name: name}
	}

	nb.descriptors[name] = d
	return nil
}

// lookup returns a snapshot of the unnamed binding of key.
func (r *collection) lookup(key Key) (binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bindings[key.id()]
	if !ok {
		return binding{}, false
	}

	snapshot := *b
	snapshot.descriptors = append([]*descriptor(nil), b.descriptors...)
	return snapshot, true
}

// lookupNamed returns the provider registered under (key, name).
func (r *collection) lookupNamed(key Key, name string) (*descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nb, ok := r.named[key.id()]
	if !ok {
		return nil, false
	}

	d, ok := nb.descriptors[name]
	return d, ok
}

// Contains checks if key has an unnamed binding.
func (r *collection) Contains(key Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.bindings[key.id()]
	return exists
}

// ContainsNamed checks if key has a provider registered under name.
func (r *collection) ContainsNamed(key Key, name string) bool {
	_, ok := r.lookupNamed(key, name)
	return ok
}

// Count returns the number of registered providers, counting every element
// of a multi binding and every named slot.
func (r *collection) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, b := range r.bindings {
		count += len(b.descriptors)
	}
	for _, nb := range r.named {
		count += len(nb.descriptors)
	}
	return count
}

// Keys returns the sorted string form of every registered key.
func (r *collection) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[any]string, len(r.bindings)+len(r.named))
	for id, b := range r.bindings {
		seen[id] = b.key.String()
	}
	for id, nb := range r.named {
		if _, ok := seen[id]; !ok {
			seen[id] = nb.key.String()
		}
	}

	keys := make([]string, 0, len(seen))
	for _, s := range seen {
		keys = append(keys, s)
	}
	sort.Strings(keys)
	return keys
}
