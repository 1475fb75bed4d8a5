package botroles

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the serializable form of a Registry. Roles are stored in an
// arena with stable integer ids and child edges as id references, so the
// cyclic in-memory graph round-trips without relying on pointer identity.
// Restoring a snapshot builds fresh roles attached to the restoring
// process's own Hierarchy.
//
// Dynamic roles (ChatAdminsRole, ChatCreatorRole) are captured as plain
// roles: the lookup capability and caches are process-local and must be
// re-created after a restore.
type Snapshot struct {
	Roles  []RoleSnapshot `msgpack:"roles"`
	Admins int            `msgpack:"admins"`
	Named  map[string]int `msgpack:"named"`
}

// RoleSnapshot is one arena entry: a role's name, members and child edges.
type RoleSnapshot struct {
	Name     string  `msgpack:"name"`
	Members  []int64 `msgpack:"members"`
	Children []int   `msgpack:"children"`
}

// Snapshot captures the registry's "admins" role, all registered roles and
// every role reachable below them. Concurrent mutations during the capture
// may or may not be included, but each role's member and child sets are
// internally consistent.
func (reg *Registry) Snapshot() *Snapshot {
	reg.mu.Lock()
	named := make(map[string]*Role, len(reg.roles))
	for name, role := range reg.roles {
		named[name] = role
	}
	reg.mu.Unlock()

	index := make(map[*Role]int)
	var records []RoleSnapshot
	var childSets [][]*Role

	var visit func(r *Role) int
	visit = func(r *Role) int {
		if id, ok := index[r]; ok {
			return id
		}
		id := len(records)
		index[r] = id
		children := r.ChildRoles()
		records = append(records, RoleSnapshot{Name: r.Name(), Members: r.Members()})
		childSets = append(childSets, children)
		for _, child := range children {
			visit(child)
		}
		return id
	}

	snap := &Snapshot{Named: make(map[string]int, len(named))}
	snap.Admins = visit(reg.admins)
	for name, role := range named {
		snap.Named[name] = visit(role)
	}
	for i, children := range childSets {
		ids := make([]int, 0, len(children))
		for _, child := range children {
			ids = append(ids, index[child])
		}
		records[i].Children = ids
	}
	snap.Roles = records
	return snap
}

// Restore rebuilds a live Registry from the snapshot inside the given
// hierarchy. Every restored role is attached under the hierarchy's admin
// root, registered roles are then reparented under the restored "admins"
// role, exactly as if they had been created in this process.
func (s *Snapshot) Restore(h *Hierarchy) (*Registry, error) {
	if s.Admins < 0 || s.Admins >= len(s.Roles) {
		return nil, NewError(ErrCorruptSnapshot, "admins id out of range")
	}

	arena := make([]*Role, len(s.Roles))
	for i, rec := range s.Roles {
		arena[i] = h.NewRole(WithName(rec.Name), WithMembers(rec.Members...))
	}
	for i, rec := range s.Roles {
		for _, child := range rec.Children {
			if child < 0 || child >= len(arena) {
				return nil, NewError(ErrCorruptSnapshot, fmt.Sprintf("child id %d out of range", child))
			}
			if err := arena[i].AddChildRole(arena[child]); err != nil {
				return nil, NewError(ErrCorruptSnapshot, err.Error())
			}
		}
	}

	reg := &Registry{
		hier:   h,
		roles:  make(map[string]*Role, len(s.Named)),
		admins: arena[s.Admins],
	}
	for name, id := range s.Named {
		if id < 0 || id >= len(arena) {
			return nil, NewError(ErrCorruptSnapshot, fmt.Sprintf("role id %d out of range", id)).WithRole(name)
		}
		role := arena[id]
		// The arena edges already make the role a child of "admins";
		// detach the default admin-root parent added by NewRole.
		h.Admin().RemoveChildRole(role)
		reg.roles[name] = role
	}
	return reg, nil
}

// MarshalBinary encodes the registry snapshot with msgpack. Together with
// RestoreRegistry it forms the save/restore hook pair a persistence layer
// uses to carry a registry across process restarts.
func (reg *Registry) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(reg.Snapshot())
}

// RestoreRegistry decodes a msgpack snapshot and rebuilds the registry
// inside the given hierarchy.
func RestoreRegistry(h *Hierarchy, data []byte) (*Registry, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, NewError(ErrCorruptSnapshot, err.Error())
	}
	return snap.Restore(h)
}
