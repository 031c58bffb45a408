package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"tgscope/internal/ports"
)

// Client implements ports.Backend over the Telegram Bot API. Every call
// passes through a shared rate limiter and a circuit breaker, so a
// degraded backend sheds load instead of piling up requests. The bot
// session is established once in New and stays valid for the process
// lifetime.
type Client struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func New(token string, rps float64) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	if rps <= 0 {
		rps = 10
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "telegram",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}, nil
}

func (c *Client) call(ctx context.Context, fn func() (any, error)) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.breaker.Execute(fn)
}

func (c *Client) getChat(ctx context.Context, handle string) (tgbotapi.Chat, error) {
	v, err := c.call(ctx, func() (any, error) {
		return c.bot.GetChat(tgbotapi.ChatInfoConfig{
			ChatConfig: tgbotapi.ChatConfig{SuperGroupUsername: "@" + handle},
		})
	})
	if err != nil {
		return tgbotapi.Chat{}, err
	}
	return v.(tgbotapi.Chat), nil
}

func (c *Client) FetchUserOrBot(ctx context.Context, handle string) (ports.UserRecord, error) {
	chat, err := c.getChat(ctx, handle)
	if err != nil {
		return ports.UserRecord{}, fmt.Errorf("fetch user %q: %w", handle, err)
	}
	if chat.Type != "private" {
		return ports.UserRecord{}, fmt.Errorf("%q does not resolve to a user", handle)
	}
	return ports.UserRecord{
		ID:        chat.ID,
		FirstName: chat.FirstName,
		LastName:  chat.LastName,
		Username:  chat.UserName,
		// Bot usernames must end in "bot"; the Bot API exposes no
		// explicit flag on a chat record.
		IsBot:    strings.HasSuffix(strings.ToLower(chat.UserName), "bot"),
		HasPhoto: chat.Photo != nil,
		// Premium, verified, scam, fake, DC id and presence are not
		// exposed by the Bot API; their zero values let the aggregator
		// apply the documented defaults.
	}, nil
}

func (c *Client) FetchChat(ctx context.Context, handle string) (ports.ChatRecord, error) {
	chat, err := c.getChat(ctx, handle)
	if err != nil {
		return ports.ChatRecord{}, fmt.Errorf("fetch chat %q: %w", handle, err)
	}
	if chat.Type == "private" {
		return ports.ChatRecord{}, fmt.Errorf("%q does not resolve to a chat", handle)
	}
	return ports.ChatRecord{
		ID:          chat.ID,
		Title:       chat.Title,
		Username:    chat.UserName,
		Kind:        decodeChatKind(chat.Type),
		Description: chat.Description,
		HasPhoto:    chat.Photo != nil,
	}, nil
}

// decodeChatKind is the single point where the backend's raw chat type
// string becomes the closed ChatKind set.
func decodeChatKind(raw string) ports.ChatKind {
	switch raw {
	case "group":
		return ports.ChatGroup
	case "supergroup":
		return ports.ChatSupergroup
	case "channel":
		return ports.ChatChannel
	}
	return ports.ChatOther
}

func (c *Client) CountChatMembers(ctx context.Context, chatID int64) (int, error) {
	v, err := c.call(ctx, func() (any, error) {
		return c.bot.GetChatMembersCount(tgbotapi.ChatMemberCountConfig{
			ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
		})
	})
	if err != nil {
		return 0, fmt.Errorf("count members of %d: %w", chatID, err)
	}
	return v.(int), nil
}

// IterateChatMembers enumerates the members the Bot API exposes, which is
// the administrator list; full member enumeration needs an MTProto
// session the service does not hold. The fetch is lazy: nothing is
// requested until the first Next call.
func (c *Client) IterateChatMembers(ctx context.Context, chatID int64) (ports.MemberIterator, error) {
	return &memberIterator{client: c, chatID: chatID}, nil
}

type memberIterator struct {
	client  *Client
	chatID  int64
	members []tgbotapi.ChatMember
	fetched bool
	idx     int
}

func (it *memberIterator) Next(ctx context.Context) (ports.Member, bool, error) {
	if !it.fetched {
		v, err := it.client.call(ctx, func() (any, error) {
			return it.client.bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
				ChatConfig: tgbotapi.ChatConfig{ChatID: it.chatID},
			})
		})
		if err != nil {
			return ports.Member{}, false, fmt.Errorf("enumerate members of %d: %w", it.chatID, err)
		}
		it.members = v.([]tgbotapi.ChatMember)
		it.fetched = true
	}
	if it.idx >= len(it.members) {
		return ports.Member{}, false, nil
	}
	m := it.members[it.idx]
	it.idx++
	return ports.Member{UserID: m.User.ID}, true, nil
}

func (it *memberIterator) Close() {}
