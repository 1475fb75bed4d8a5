// Package botroles provides hierarchical, role-based access control for
// Telegram bot update handlers.
//
// Roles form a hierarchy: a role can do everything its child roles can do.
// Each role owns a set of allowed ids (user or chat ids) and a set of child
// roles, and acts as a boolean predicate over incoming updates. Roles can be
// combined with And/Or and inverted, and a Registry manages named roles with
// a distinguished "admins" role sitting on top of all of them.
//
// # Core Concepts
//
// Hierarchy: the per-process (or per-test) context owning the admin root
// role. Every role created through a Hierarchy automatically becomes a child
// of its admin root, so members of the admin root pass every role check.
//
// Role: a node in the hierarchy. An update passes a role when its user or
// chat id is a direct member, or when some ancestor role independently
// grants it (a member of a parent role passes the checks of all roles below
// that parent).
//
// Dynamic roles: ChatAdminsRole and ChatCreatorRole decide membership by
// asking the Telegram API ("is this user an administrator/the creator of
// this chat?") with per-chat caching. They cannot be inverted.
//
// Registry: a name -> role mapping with a dedicated "admins" role. All
// registry-managed roles are children of "admins", so bot admins pass every
// gate.
//
// # Basic Usage
//
//	h := botroles.NewHierarchy()
//	registry := botroles.NewRegistry(h)
//
//	mods, _ := registry.AddRole("moderators", botroles.WithMembers(123, 456))
//	registry.AddAdmin(42)
//
//	// Gate a handler: only moderators (and bot admins) get through.
//	gated := botroles.Gate(mods, handler)
//
//	// Boolean composition.
//	either := botroles.Or(mods, registry.Admins())
//	inv, _ := mods.Invert() // everyone except moderators and their children
//	_ = either
//	_ = inv
//
// # Evaluation Semantics
//
// Evaluate follows short-circuit logic: And stops at the first rejecting
// filter, Or at the first accepting one. Updates without an effective user
// or chat are never allowed. Members of the hierarchy's admin root pass
// every check, including inverted ones.
//
// Inverted roles exclude the role and its child roles, but not its parents:
// a member of a parent role still passes the inverted check of one of the
// parent's children. See the InvertedRole docs before relying on inversion.
//
// # Persistence
//
// Registries serialize to a compact arena-indexed snapshot (stable integer
// ids, child edges as id pairs, msgpack encoding). Store persists snapshots
// in Postgres through dbkit/bun, RedisStore does the same against Redis.
// Restoring a snapshot rebuilds live roles attached to the restoring
// process's own Hierarchy.
//
//	data, _ := registry.MarshalBinary()
//	restored, _ := botroles.RestoreRegistry(botroles.NewHierarchy(), data)
//
// # Telegram Integration
//
// The package core only depends on the abstract Update and ChatAPI types.
// NewBotAPI adapts a *tgbotapi.BotAPI into a ChatAPI and FromTelegramUpdate
// converts a tgbotapi.Update into the package's Update value.
package botroles
