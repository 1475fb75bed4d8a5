package botroles

import (
	"slices"
	"sync"
)

// Registry is a collection of named roles managing access control for one
// bot application. Every registered role is a child of the registry's
// "admins" role, so bot admins can do everything any registered role can.
//
// A Registry behaves like a read-only map from name to role (Get, Names,
// Len) with explicit mutators (AddRole, RemoveRole).
type Registry struct {
	mu     sync.Mutex
	hier   *Hierarchy
	roles  map[string]*Role
	admins *Role
}

// NewRegistry creates a registry within the hierarchy, including its
// "admins" role.
//
// Example:
//
//	h := botroles.NewHierarchy()
//	registry := botroles.NewRegistry(h)
//	registry.AddRole("moderators", botroles.WithMembers(123))
//	registry.AddAdmin(42)
func NewRegistry(h *Hierarchy) *Registry {
	return &Registry{
		hier:   h,
		roles:  make(map[string]*Role),
		admins: h.NewRole(WithName("admins")),
	}
}

// Hierarchy returns the hierarchy this registry belongs to.
func (reg *Registry) Hierarchy() *Hierarchy {
	return reg.hier
}

// Admins returns the registry's admins role. Its members pass every check of
// every registered role.
func (reg *Registry) Admins() *Role {
	return reg.admins
}

// AddRole creates and registers a new role under the given name. The role is
// created through the registry's hierarchy and reparented from the admin
// root to the "admins" role. Returns ErrDuplicateName when the name is
// already registered.
func (reg *Registry) AddRole(name string, opts ...RoleOption) (*Role, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.roles[name]; ok {
		return nil, NewError(ErrDuplicateName, name).WithRole(name)
	}
	role := reg.hier.NewRole(append([]RoleOption{WithName(name)}, opts...)...)
	if err := role.reparent(reg.hier.Admin(), reg.admins); err != nil {
		return nil, err
	}
	reg.roles[name] = role
	return role, nil
}

// RemoveRole unregisters a role by name and returns it. The role is detached
// from "admins" and reattached directly under the admin root, so it stays a
// valid, non-orphaned principal if still referenced elsewhere. Returns
// ErrUnknownRole when the name is not registered.
func (reg *Registry) RemoveRole(name string) (*Role, error) {
	reg.mu.Lock()
	role, ok := reg.roles[name]
	if !ok {
		reg.mu.Unlock()
		return nil, NewError(ErrUnknownRole, name).WithRole(name)
	}
	delete(reg.roles, name)
	reg.mu.Unlock()

	if err := role.reparent(reg.admins, reg.hier.Admin()); err != nil {
		return nil, err
	}
	return role, nil
}

// Get returns the role registered under name.
func (reg *Registry) Get(name string) (*Role, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	role, ok := reg.roles[name]
	return role, ok
}

// Names returns the sorted names of all registered roles.
func (reg *Registry) Names() []string {
	reg.mu.Lock()
	names := make([]string, 0, len(reg.roles))
	for name := range reg.roles {
		names = append(names, name)
	}
	reg.mu.Unlock()
	slices.Sort(names)
	return names
}

// Len returns the number of registered roles.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.roles)
}

// AddAdmin adds one or more user/chat ids to the "admins" role.
func (reg *Registry) AddAdmin(ids ...int64) {
	reg.admins.AddMember(ids...)
}

// KickAdmin removes one or more user/chat ids from the "admins" role.
func (reg *Registry) KickAdmin(ids ...int64) {
	reg.admins.KickMember(ids...)
}
