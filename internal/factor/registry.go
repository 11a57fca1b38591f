package factor

// Note: AttackerFactory is not mockable with mockgen because Register() uses
// the unexported coreAttacker type. Use DefaultFactory or manual fakes instead.

import (
	"fmt"
	"sort"
	"sync"
)

// AttackerFactory is an interface for creating Attacker instances.
// It allows for flexible attacker instantiation and registration,
// enabling dependency injection and easier testing.
type AttackerFactory interface {
	// Create creates a new Attacker instance by name.
	// Returns an error if the attacker type is not registered.
	Create(name string) (Attacker, error)

	// Get returns an existing Attacker instance by name.
	// Returns an error if the attacker type is not registered.
	Get(name string) (Attacker, error)

	// List returns a sorted list of registered attacker names.
	List() []string

	// Register adds a new attacker type to the factory.
	Register(name string, creator func() coreAttacker) error

	// GetAll returns a map of all registered attackers.
	GetAll() map[string]Attacker
}

// DefaultFactory is the default implementation of AttackerFactory.
// It maintains a thread-safe registry of attacker creators and caches
// Attacker instances for reuse.
type DefaultFactory struct {
	mu        sync.RWMutex
	creators  map[string]func() coreAttacker
	attackers map[string]Attacker
}

// NewDefaultFactory creates a new DefaultFactory with the standard attack
// implementations pre-registered.
//
// Pre-registered attackers:
//   - "snfs": toy Special Number Field Sieve for n ≈ m^d + 1
//   - "rho": Pollard's rho with Floyd cycle detection
//   - "trial": trial division up to √n
//
// Returns:
//   - *DefaultFactory: A new factory with default attackers registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:  make(map[string]func() coreAttacker),
		attackers: make(map[string]Attacker),
	}

	_ = f.Register("snfs", func() coreAttacker { return &SieveAttacker{} })
	_ = f.Register("rho", func() coreAttacker { return &RhoAttacker{} })
	_ = f.Register("trial", func() coreAttacker { return &TrialDivisionAttacker{} })

	return f
}

// Register adds a new attacker type to the factory.
// The creator function is called lazily when the attacker is first requested.
// If an attacker with the same name already exists, it will be replaced.
//
// Parameters:
//   - name: The unique identifier for the attacker type.
//   - creator: A function that creates a new coreAttacker instance.
func (f *DefaultFactory) Register(name string, creator func() coreAttacker) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	// Drop any cached instance so it is recreated with the new creator.
	delete(f.attackers, name)
	return nil
}

// Create creates a new Attacker instance by name.
// Unlike Get(), this always creates a fresh instance without caching.
//
// Parameters:
//   - name: The name of the attacker type to create.
//
// Returns:
//   - Attacker: A new Attacker instance.
//   - error: An error if the attacker type is not registered.
func (f *DefaultFactory) Create(name string) (Attacker, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown attacker: %s", name)
	}
	return NewAttacker(creator()), nil
}

// Get returns an Attacker instance by name.
// Instances are cached and reused for subsequent calls with the same name.
// This is the preferred method for most use cases.
//
// Parameters:
//   - name: The name of the attacker to retrieve.
//
// Returns:
//   - Attacker: The Attacker instance.
//   - error: An error if the attacker type is not registered.
func (f *DefaultFactory) Get(name string) (Attacker, error) {
	f.mu.RLock()
	if atk, exists := f.attackers[name]; exists {
		f.mu.RUnlock()
		return atk, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring the write lock.
	if atk, exists := f.attackers[name]; exists {
		return atk, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown attacker: %s", name)
	}

	atk := NewAttacker(creator())
	f.attackers[name] = atk
	return atk, nil
}

// List returns a sorted list of all registered attacker names.
//
// Returns:
//   - []string: A sorted slice of attacker names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a map of all registered attackers, lazily initializing any
// that have not been created yet.
//
// Returns:
//   - map[string]Attacker: A map of attacker names to Attacker instances.
func (f *DefaultFactory) GetAll() map[string]Attacker {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.attackers[name]; !exists {
			f.attackers[name] = NewAttacker(creator())
		}
	}

	result := make(map[string]Attacker, len(f.attackers))
	for name, atk := range f.attackers {
		result[name] = atk
	}
	return result
}

// MustGet is like Get but panics if the attacker is not found.
// This is useful in initialization code where missing attackers should be
// considered a programming error.
//
// Parameters:
//   - name: The name of the attacker to retrieve.
//
// Returns:
//   - Attacker: The Attacker instance.
func (f *DefaultFactory) MustGet(name string) Attacker {
	atk, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("factor: required attacker not found: %s", name))
	}
	return atk
}

// Has checks if an attacker with the given name is registered.
//
// Parameters:
//   - name: The name of the attacker to check.
//
// Returns:
//   - bool: true if the attacker is registered, false otherwise.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

// globalFactory is the default global factory instance.
var globalFactory = NewDefaultFactory()

// GlobalFactory returns the global factory instance.
// This is a convenience for applications that don't need multiple factory
// instances.
//
// Returns:
//   - *DefaultFactory: The global factory instance.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterAttacker registers an attacker in the global factory.
// This is a convenience function for adding custom attackers.
//
// Parameters:
//   - name: The unique identifier for the attacker type.
//   - creator: A function that creates a new coreAttacker instance.
func RegisterAttacker(name string, creator func() coreAttacker) error {
	return globalFactory.Register(name, creator)
}
