package ports

import "context"

// ChatKind is the backend's chat subtype, decoded once at the adapter
// boundary from whatever raw value the backend reports.
type ChatKind string

const (
	ChatGroup      ChatKind = "group"
	ChatSupergroup ChatKind = "supergroup"
	ChatChannel    ChatKind = "channel"
	ChatOther      ChatKind = "other"
)

// UserRecord is the raw user/bot shape returned by the backend. Optional
// fields keep their zero value when the backend does not report them.
type UserRecord struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	IsBot     bool
	Premium   bool
	Verified  bool
	Scam      bool
	Fake      bool
	DCID      int
	RawStatus string
	HasPhoto  bool
}

// ChatRecord is the raw chat shape returned by the backend.
type ChatRecord struct {
	ID          int64
	Title       string
	Username    string
	Kind        ChatKind
	Description string
	Verified    bool
	Scam        bool
	Fake        bool
	HasPhoto    bool
}

// Member is one entry of a chat member enumeration.
type Member struct {
	UserID int64
}

// MemberIterator walks a chat's member list lazily. Next reports
// found=false once the sequence is exhausted.
type MemberIterator interface {
	Next(ctx context.Context) (m Member, found bool, err error)
	Close()
}

// Backend is the capability set the core needs from the messaging
// client. The connection behind it is acquired before the first call and
// stays valid until process teardown; the core never manages that
// lifecycle. Fetches fail when the handle does not resolve to the asked
// shape; member count and enumeration may fail on permission.
type Backend interface {
	FetchUserOrBot(ctx context.Context, handle string) (UserRecord, error)
	FetchChat(ctx context.Context, handle string) (ChatRecord, error)
	CountChatMembers(ctx context.Context, chatID int64) (int, error)
	IterateChatMembers(ctx context.Context, chatID int64) (MemberIterator, error)
}
