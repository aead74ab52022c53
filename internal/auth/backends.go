// Package auth resolves permission backends for user lookups. The accounts
// service treats permissions as role codes; richer backends can be plugged
// in by registering them under a name.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/SAP-F-2025/accounts-service/internal/models"
)

var (
	// ErrBackendAmbiguous is returned when no backend name is given and
	// more than one backend is configured.
	ErrBackendAmbiguous = errors.New("multiple permission backends configured, a backend name is required")

	// ErrBackendNotRegistered is returned for an unknown backend name.
	ErrBackendNotRegistered = errors.New("permission backend not registered")

	// ErrNoBackends is returned when resolution runs against an empty registry.
	ErrNoBackends = errors.New("no permission backends configured")
)

// WithPermOptions narrows a permission lookup.
type WithPermOptions struct {
	// Backend names the backend to use. Required when more than one
	// backend is registered.
	Backend string

	// ActiveOnly restricts results to active accounts.
	ActiveOnly bool

	// IncludeSuperusers includes superuser accounts regardless of the
	// requested permission.
	IncludeSuperusers bool
}

// DefaultWithPermOptions mirror the common lookup: active users plus superusers.
func DefaultWithPermOptions() WithPermOptions {
	return WithPermOptions{ActiveOnly: true, IncludeSuperusers: true}
}

// PermissionBackend answers "which users hold this permission".
type PermissionBackend interface {
	WithPerm(ctx context.Context, perm string, opts WithPermOptions) ([]*models.User, error)
}

// Registry holds named permission backends and resolves lookups against
// them. The zero value is usable.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]PermissionBackend
}

func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]PermissionBackend)}
}

// Register adds a backend under a name, replacing any previous entry.
func (r *Registry) Register(name string, backend PermissionBackend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backends == nil {
		r.backends = make(map[string]PermissionBackend)
	}
	r.backends[name] = backend
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the backend for a lookup. An empty name resolves only when
// exactly one backend is registered; with several configured the caller
// must name one.
func (r *Registry) Resolve(name string) (PermissionBackend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		switch len(r.backends) {
		case 0:
			return nil, ErrNoBackends
		case 1:
			for _, backend := range r.backends {
				return backend, nil
			}
		}
		return nil, ErrBackendAmbiguous
	}

	backend, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotRegistered, name)
	}
	return backend, nil
}

// WithPerm resolves the backend named in opts and delegates the lookup.
func (r *Registry) WithPerm(ctx context.Context, perm string, opts WithPermOptions) ([]*models.User, error) {
	backend, err := r.Resolve(opts.Backend)
	if err != nil {
		return nil, err
	}
	return backend.WithPerm(ctx, perm, opts)
}
