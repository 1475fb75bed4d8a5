package botroles

import (
	"context"
	"slices"
	"sync"
	"time"
)

// ChatAdminsRole allows the administrators (creator included) of the chat an
// update originates from. The admin list is fetched through the ChatAPI and
// cached per chat; a cache entry is refreshed lazily once it is older than
// the configured timeout. Private chats always pass without a lookup, since
// a private chat has no administrators and its single user is trivially its
// own authority.
//
// Lookup failures are absorbed and count as "not authorized"; they are never
// surfaced through Evaluate. A cache miss blocks on the ChatAPI call, which
// may be network-bound.
//
// ChatAdminsRole cannot be inverted.
type ChatAdminsRole struct {
	*Role

	api     ChatAPI
	timeout time.Duration

	cacheMu sync.Mutex
	cache   map[int64]adminsCacheEntry
}

type adminsCacheEntry struct {
	fetchedAt time.Time
	adminIDs  []int64
}

// NewChatAdminsRole creates a chat-admins role within the hierarchy. timeout
// controls how long a fetched admin list stays fresh.
func NewChatAdminsRole(h *Hierarchy, api ChatAPI, timeout time.Duration, opts ...RoleOption) *ChatAdminsRole {
	r := &ChatAdminsRole{
		Role:    h.NewRole(opts...),
		api:     api,
		timeout: timeout,
		cache:   make(map[int64]adminsCacheEntry),
	}
	r.Role.dyn = r
	return r
}

// Timeout returns the cache freshness window.
func (r *ChatAdminsRole) Timeout() time.Duration {
	return r.timeout
}

// decide implements dynamicDecider.
func (r *ChatAdminsRole) decide(ctx context.Context, user *User, chat *Chat) bool {
	if user == nil || chat == nil {
		return false
	}
	if chat.IsPrivate() {
		return true
	}

	r.cacheMu.Lock()
	entry, ok := r.cache[chat.ID]
	r.cacheMu.Unlock()
	if ok && time.Since(entry.fetchedAt) < r.timeout {
		return slices.Contains(entry.adminIDs, user.ID)
	}

	members, err := r.api.GetChatAdministrators(ctx, chat.ID)
	if err != nil {
		// Fail closed: an unreachable chat authorizes nobody.
		return false
	}
	adminIDs := make([]int64, 0, len(members))
	for _, member := range members {
		adminIDs = append(adminIDs, member.User.ID)
	}

	r.cacheMu.Lock()
	r.cache[chat.ID] = adminsCacheEntry{fetchedAt: time.Now(), adminIDs: adminIDs}
	r.cacheMu.Unlock()

	return slices.Contains(adminIDs, user.ID)
}

// ChatCreatorRole allows only the creator of the chat an update originates
// from. Creator lookups are cached per chat without expiry: a chat's creator
// is assumed immutable for the process lifetime. Private chats always pass
// without a lookup.
//
// A "user is not a member" (or otherwise failing) lookup counts as "not
// authorized" and is never surfaced through Evaluate.
//
// ChatCreatorRole cannot be inverted.
type ChatCreatorRole struct {
	*Role

	api ChatAPI

	cacheMu sync.Mutex
	cache   map[int64]int64 // chat id -> creator user id
}

// NewChatCreatorRole creates a chat-creator role within the hierarchy.
func NewChatCreatorRole(h *Hierarchy, api ChatAPI, opts ...RoleOption) *ChatCreatorRole {
	r := &ChatCreatorRole{
		Role:  h.NewRole(opts...),
		api:   api,
		cache: make(map[int64]int64),
	}
	r.Role.dyn = r
	return r
}

// decide implements dynamicDecider.
func (r *ChatCreatorRole) decide(ctx context.Context, user *User, chat *Chat) bool {
	if user == nil || chat == nil {
		return false
	}
	if chat.IsPrivate() {
		return true
	}

	r.cacheMu.Lock()
	creatorID, ok := r.cache[chat.ID]
	r.cacheMu.Unlock()
	if ok {
		return user.ID == creatorID
	}

	member, err := r.api.GetChatMember(ctx, chat.ID, user.ID)
	if err != nil {
		// The user is not a member or the chat is inaccessible; fail closed.
		return false
	}
	if member.Status != MemberStatusCreator {
		return false
	}

	r.cacheMu.Lock()
	r.cache[chat.ID] = user.ID
	r.cacheMu.Unlock()
	return true
}
