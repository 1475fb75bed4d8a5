package botroles

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI adapts a *tgbotapi.BotAPI to the ChatAPI interface so dynamic
// roles can resolve chat administrators and creators against the live
// Telegram Bot API. The underlying client does not take a context; the
// context parameters are accepted for interface compatibility and ignored.
type BotAPI struct {
	bot *tgbotapi.BotAPI
}

// NewBotAPI wraps a tgbotapi client.
func NewBotAPI(bot *tgbotapi.BotAPI) *BotAPI {
	return &BotAPI{bot: bot}
}

// GetChatAdministrators implements ChatAPI.
func (b *BotAPI) GetChatAdministrators(ctx context.Context, chatID int64) ([]ChatMember, error) {
	members, err := b.bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, err
	}
	admins := make([]ChatMember, 0, len(members))
	for _, member := range members {
		admins = append(admins, fromTelegramMember(member))
	}
	return admins, nil
}

// GetChatMember implements ChatAPI.
func (b *BotAPI) GetChatMember(ctx context.Context, chatID, userID int64) (ChatMember, error) {
	member, err := b.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
	})
	if err != nil {
		return ChatMember{}, err
	}
	return fromTelegramMember(member), nil
}

func fromTelegramMember(member tgbotapi.ChatMember) ChatMember {
	out := ChatMember{Status: MemberStatus(member.Status)}
	if member.User != nil {
		out.User = User{ID: member.User.ID}
	}
	return out
}

// FromTelegramUpdate converts a tgbotapi update into the package's Update
// value, carrying over the effective user and chat of whatever kind of
// update it is (message, edited message, callback query, ...).
func FromTelegramUpdate(u tgbotapi.Update) Update {
	var update Update
	if from := u.SentFrom(); from != nil {
		update.User = &User{ID: from.ID}
	}
	if chat := u.FromChat(); chat != nil {
		update.Chat = &Chat{ID: chat.ID, Type: ChatType(chat.Type)}
	}
	return update
}
