package botroles

import "context"

// ChatType identifies the kind of chat an update originates from.
type ChatType string

// Chat types as reported by the Telegram Bot API.
const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// User is the effective user of an update.
type User struct {
	ID int64
}

// Chat is the effective chat of an update.
type Chat struct {
	ID   int64
	Type ChatType
}

// IsPrivate reports whether the chat is a private (one-on-one) chat.
func (c *Chat) IsPrivate() bool {
	return c != nil && c.Type == ChatTypePrivate
}

// Update is the minimal view of a bot update the role system needs: an
// optional effective user and an optional effective chat. Updates with
// neither are never authorized by any role.
type Update struct {
	User *User
	Chat *Chat
}

// HasSubject reports whether the update has an effective user or chat.
func (u Update) HasSubject() bool {
	return u.User != nil || u.Chat != nil
}

// UserUpdate builds an Update carrying only an effective user.
// Mostly useful in tests.
func UserUpdate(userID int64) Update {
	return Update{User: &User{ID: userID}}
}

// ChatUpdate builds an Update carrying only an effective chat.
// Mostly useful in tests.
func ChatUpdate(chatID int64, chatType ChatType) Update {
	return Update{Chat: &Chat{ID: chatID, Type: chatType}}
}

// MessageUpdate builds an Update with both an effective user and chat, as a
// regular chat message would have.
func MessageUpdate(userID, chatID int64, chatType ChatType) Update {
	return Update{
		User: &User{ID: userID},
		Chat: &Chat{ID: chatID, Type: chatType},
	}
}

// MemberStatus is the status of a user within a chat.
type MemberStatus string

// Member statuses as reported by the Telegram Bot API.
const (
	MemberStatusCreator       MemberStatus = "creator"
	MemberStatusAdministrator MemberStatus = "administrator"
	MemberStatusMember        MemberStatus = "member"
	MemberStatusRestricted    MemberStatus = "restricted"
	MemberStatusLeft          MemberStatus = "left"
	MemberStatusKicked        MemberStatus = "kicked"
)

// ChatMember is a user's membership record in a chat.
type ChatMember struct {
	User   User
	Status MemberStatus
}

// ChatAPI is the lookup capability dynamic roles need from the host bot
// framework. Implementations may hit the network; errors (including "user is
// not a member" and inaccessible chats) are treated as "not authorized" by
// the dynamic roles, never propagated.
type ChatAPI interface {
	// GetChatAdministrators returns the current administrators of a chat,
	// creator included.
	GetChatAdministrators(ctx context.Context, chatID int64) ([]ChatMember, error)

	// GetChatMember returns the membership record of a single user.
	GetChatMember(ctx context.Context, chatID, userID int64) (ChatMember, error)
}
