package botroles

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Role is a node in the permission hierarchy. It owns a set of allowed
// user/chat ids and a set of child roles; a role can do everything its child
// roles can do. Roles are compared by object identity: two independently
// built roles are distinct principals even with identical membership. Use
// Equals for structural comparison.
//
// All mutations and snapshot reads are guarded by a per-role lock, so a role
// graph can be evaluated and mutated from multiple goroutines concurrently.
type Role struct {
	mu       sync.Mutex
	hier     *Hierarchy
	name     string
	members  map[int64]struct{}
	children map[*Role]struct{}

	// dyn replaces the membership/hierarchy decision for dynamic roles
	// (ChatAdminsRole, ChatCreatorRole). Roles with dyn set are not
	// invertible.
	dyn dynamicDecider
}

// dynamicDecider computes a role decision on demand, after the shared
// admin-override and subject-extraction steps have run.
type dynamicDecider interface {
	decide(ctx context.Context, user *User, chat *Chat) bool
}

// Name returns the role's display name. May be empty.
func (r *Role) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

// SetName sets the role's display name.
func (r *Role) SetName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
}

// String renders the role as "Role(name)", or "Role([ids...])" for unnamed
// roles with members, or "Role([])" otherwise.
func (r *Role) String() string {
	r.mu.Lock()
	name := r.name
	r.mu.Unlock()
	if name != "" {
		return fmt.Sprintf("Role(%s)", name)
	}
	if ids := r.Members(); len(ids) > 0 {
		return fmt.Sprintf("Role(%v)", ids)
	}
	return "Role([])"
}

// Members returns a sorted snapshot of the role's allowed ids. The snapshot
// is a copy; mutating it does not affect the role.
func (r *Role) Members() []int64 {
	r.mu.Lock()
	ids := make([]int64, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// HasMember reports whether the id is directly allowed by this role.
// It does not consult parent or child roles.
func (r *Role) HasMember(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[id]
	return ok
}

// ChildRoles returns a snapshot of the role's direct children.
func (r *Role) ChildRoles() []*Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	children := make([]*Role, 0, len(r.children))
	for child := range r.children {
		children = append(children, child)
	}
	return children
}

// AddMember adds one or more user/chat ids to the allowed ids. Adding an id
// that is already present is a no-op.
func (r *Role) AddMember(ids ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.members[id] = struct{}{}
	}
}

// KickMember removes one or more user/chat ids from the allowed ids.
// Removing an absent id is a no-op.
func (r *Role) KickMember(ids ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.members, id)
	}
}

// AddChildRole adds a child role. Returns ErrSelfReference when the child is
// the role itself and ErrCyclicHierarchy when the role is already a
// descendant of the child. Adding a child that is already present is a
// no-op.
func (r *Role) AddChildRole(child *Role) error {
	if r == child {
		return NewError(ErrSelfReference, r.String())
	}
	if r.SubRoleOf(child) {
		return NewError(ErrCyclicHierarchy, fmt.Sprintf("%s is already a descendant of %s", r, child))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.children[child] = struct{}{}
	return nil
}

// RemoveChildRole removes a child role. Removing an absent child is a no-op.
func (r *Role) RemoveChildRole(child *Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.children, child)
}

// reparent detaches the role from oldParent and attaches it under newParent.
// Used by the registry to move roles between the admin root and "admins".
func (r *Role) reparent(oldParent, newParent *Role) error {
	oldParent.RemoveChildRole(r)
	return newParent.AddChildRole(r)
}

// SubRoleOf reports whether the role's authority is included in other's,
// i.e. r is other or r sits somewhere below other in the hierarchy.
func (r *Role) SubRoleOf(other *Role) bool {
	return r == other || r.ProperSubRoleOf(other)
}

// ProperSubRoleOf reports whether r sits strictly below other: some child of
// other is r or an ancestor of r. Unrelated roles always compare false.
func (r *Role) ProperSubRoleOf(other *Role) bool {
	if other == nil || r == other {
		return false
	}
	for _, child := range other.ChildRoles() {
		if r.SubRoleOf(child) {
			return true
		}
	}
	return false
}

// SuperRoleOf reports whether other's authority is included in r's.
func (r *Role) SuperRoleOf(other *Role) bool {
	return r == other || r.ProperSuperRoleOf(other)
}

// ProperSuperRoleOf reports whether other sits strictly below r.
func (r *Role) ProperSuperRoleOf(other *Role) bool {
	if other == nil || r == other {
		return false
	}
	for _, child := range r.ChildRoles() {
		if other.SubRoleOf(child) {
			return true
		}
	}
	return false
}

// Equals tests structural equality: the allowed ids coincide and the child
// sets match up under recursive Equals (a bijection check, independent of
// object identity). The result may change as members or children change.
func (r *Role) Equals(other *Role) bool {
	if other == nil {
		return false
	}
	if !slices.Equal(r.Members(), other.Members()) {
		return false
	}
	mine, theirs := r.ChildRoles(), other.ChildRoles()
	if len(mine) != len(theirs) {
		return false
	}
	for _, child := range mine {
		if !slices.ContainsFunc(theirs, child.Equals) {
			return false
		}
	}
	for _, child := range theirs {
		if !slices.ContainsFunc(mine, child.Equals) {
			return false
		}
	}
	return true
}

// Evaluate reports whether the update is allowed by this role: members of
// the hierarchy's admin root always pass; otherwise the update's user id,
// then chat id, is checked against the allowed ids; failing that, the update
// passes if some ancestor role independently grants it.
func (r *Role) Evaluate(ctx context.Context, u Update) bool {
	return r.evaluate(ctx, u, nil, false)
}

// evaluate is the recursive core. target is non-nil during the ancestor
// search and names the role the top-level call was made against; inverted
// flips the meaning of direct membership and restricts the search to child
// roles only.
func (r *Role) evaluate(ctx context.Context, u Update, target *Role, inverted bool) bool {
	admin := r.hier.Admin()

	// Always allow admins, even through inverted roles.
	if r != admin && admin.evaluate(ctx, u, nil, false) {
		return true
	}

	// Updates with neither an effective user nor chat are never allowed.
	if !u.HasSubject() {
		return false
	}

	// User id wins over chat id.
	if u.User != nil && r.HasMember(u.User.ID) {
		return !inverted
	}
	if u.Chat != nil && r.HasMember(u.Chat.ID) {
		return !inverted
	}

	if r.dyn != nil {
		return r.dyn.decide(ctx, u.User, u.Chat)
	}

	if inverted {
		// The update is either granted by a child role, in which case it
		// must be excluded, or it is not, in which case it must *not* be
		// excluded. Parent roles are intentionally not consulted here:
		// an inverted role does not exclude its parents.
		for _, child := range r.ChildRoles() {
			if child.evaluate(ctx, u, target, false) {
				return false
			}
		}
		return true
	}

	// No direct membership: walk the tree looking for an ancestor of the
	// target role that grants the update. The top-level call starts the
	// search from the admin root.
	root := r
	if target == nil {
		root = admin
		target = r
	}
	for _, child := range root.ChildRoles() {
		if target.SubRoleOf(child) && child.evaluate(ctx, u, target, false) {
			return true
		}
	}
	return false
}

// And combines the role with another filter; the result allows an update
// only when both do. The role is evaluated first and other is skipped when
// the role already rejects.
func (r *Role) And(other Filter) Filter {
	return And(r, other)
}

// Or combines the role with another filter; the result allows an update
// when either does. The role is evaluated first and other is skipped when
// the role already allows.
func (r *Role) Or(other Filter) Filter {
	return Or(r, other)
}

// Invert returns a filter excluding this role and its child roles. Parent
// roles are not excluded, and admin-root members still pass. Dynamic roles
// cannot be inverted; inverting one returns ErrNotInvertible.
func (r *Role) Invert() (*InvertedRole, error) {
	if r.dyn != nil {
		return nil, NewError(ErrNotInvertible, r.String()).WithRole(r.Name())
	}
	return &InvertedRole{role: r}, nil
}
