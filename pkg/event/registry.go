package event

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Snyder005/govisa/pkg/driver"
)

// Registry errors.
var (
	// ErrNilCallback is returned when installing a nil callback.
	ErrNilCallback = errors.New("event callback is nil")

	// ErrNotRegistered is returned when removing a registration the
	// registry doesn't hold.
	ErrNotRegistered = errors.New("handler not registered")
)

// Registration records one installed handler. The triple
// (Type, Callback, UserData) is exactly what was passed to the native
// install call; Token identifies the registration for removal.
type Registration struct {
	// Token uniquely identifies this registration (UUID).
	Token string

	// Type is the event type the handler was installed for.
	Type driver.EventType

	// Callback is the installed callback.
	Callback driver.EventCallback

	// UserData is the opaque user data passed at install time.
	UserData any
}

// Registry tracks the handlers installed on one session.
// It is safe for concurrent use; driver callback contexts and the
// session owner may touch it at the same time.
type Registry struct {
	mu sync.Mutex

	// Registrations by token.
	regs map[string]*Registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		regs: make(map[string]*Registration),
	}
}

// Install records a handler registration and returns it.
// The same callback may be installed more than once, including for the
// same event type; each install yields a distinct registration.
func (r *Registry) Install(eventType driver.EventType, cb driver.EventCallback, userData any) (*Registration, error) {
	if cb == nil {
		return nil, ErrNilCallback
	}

	reg := &Registration{
		Token:    uuid.New().String(),
		Type:     eventType,
		Callback: cb,
		UserData: userData,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs[reg.Token] = reg
	return reg, nil
}

// Remove deletes the registration with the given token.
// Returns ErrNotRegistered if the registry doesn't hold it.
func (r *Registry) Remove(reg *Registration) error {
	if reg == nil {
		return ErrNotRegistered
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.regs[reg.Token]; !exists {
		return ErrNotRegistered
	}
	delete(r.regs, reg.Token)
	return nil
}

// ByType returns the registrations installed for the given event type.
func (r *Registry) ByType(eventType driver.EventType) []*Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Registration
	for _, reg := range r.regs {
		if reg.Type == eventType {
			out = append(out, reg)
		}
	}
	return out
}

// Count returns the number of installed registrations.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}

// Clear drops all registrations, e.g. when the owning session closes.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = make(map[string]*Registration)
}
