package botroles

import (
	"fmt"
	"sync"
)

// defaultAdminName is the reserved name of the admin root role.
const defaultAdminName = "botroles_default_admin"

// Hierarchy is the context owning the admin root role. Every role created
// through a Hierarchy is automatically attached as a child of its admin
// root, so admin-root members pass every role check made within this
// hierarchy.
//
// A process typically holds a single Hierarchy; tests create their own to
// stay isolated from each other.
type Hierarchy struct {
	once  sync.Once
	admin *Role
}

// NewHierarchy creates an empty hierarchy. The admin root is created lazily
// on first use; creation is safe under concurrent first access.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{}
}

// Admin returns the hierarchy's admin root role, creating it on first call.
// The root is an ordinary role except that it has no parent and its
// membership authorizes any update unconditionally.
func (h *Hierarchy) Admin() *Role {
	h.once.Do(func() {
		h.admin = &Role{
			hier:     h,
			name:     defaultAdminName,
			members:  make(map[int64]struct{}),
			children: make(map[*Role]struct{}),
		}
	})
	return h.admin
}

// RoleOption configures a role at construction time.
type RoleOption func(*Role)

// WithName sets the role's display name.
func WithName(name string) RoleOption {
	return func(r *Role) {
		r.name = name
	}
}

// WithMembers adds the given user/chat ids to the role's allowed ids.
func WithMembers(ids ...int64) RoleOption {
	return func(r *Role) {
		for _, id := range ids {
			r.members[id] = struct{}{}
		}
	}
}

// WithChildRoles adds the given roles as children of the new role.
func WithChildRoles(children ...*Role) RoleOption {
	return func(r *Role) {
		for _, child := range children {
			r.children[child] = struct{}{}
		}
	}
}

// NewRole creates a role within this hierarchy and attaches it as a child of
// the admin root. Passing the admin root itself via WithChildRoles is a
// programming error and panics, as it would put the root below the new role.
func (h *Hierarchy) NewRole(opts ...RoleOption) *Role {
	r := &Role{
		hier:     h,
		members:  make(map[int64]struct{}),
		children: make(map[*Role]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := h.Admin().AddChildRole(r); err != nil {
		panic(fmt.Sprintf("botroles: attaching new role to admin root: %v", err))
	}
	return r
}
