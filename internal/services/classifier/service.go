package classifier

import (
	"context"
	"errors"
	"fmt"

	"tgscope/internal/domain"
	"tgscope/internal/ports"
)

// ErrHandleNotResolved is returned when a handle resolves to neither a
// user/bot nor a chat.
var ErrHandleNotResolved = errors.New("handle not resolved")

type Service struct {
	backend ports.Backend
}

func New(backend ports.Backend) *Service { return &Service{backend: backend} }

// probe tries one entity shape. ok=false means the handle does not
// resolve to that shape and the next probe should run; a probe that
// resolves an unsupported shape reports ok=true with KindUnknown.
type probe func(ctx context.Context, handle string) (kind domain.EntityKind, ok bool)

// Classify determines the entity kind behind handle. Usernames are not
// namespaced by kind, so probe order is the only disambiguation: the
// user/bot shape is always tried before the chat shape.
func (s *Service) Classify(ctx context.Context, handle string) (domain.EntityKind, error) {
	probes := []probe{s.probeUser, s.probeChat}
	for _, p := range probes {
		if kind, ok := p(ctx, handle); ok {
			return kind, nil
		}
	}
	return domain.KindUnknown, fmt.Errorf("%w: %q", ErrHandleNotResolved, handle)
}

func (s *Service) probeUser(ctx context.Context, handle string) (domain.EntityKind, bool) {
	u, err := s.backend.FetchUserOrBot(ctx, handle)
	if err != nil {
		return domain.KindUnknown, false
	}
	if u.IsBot {
		return domain.KindBot, true
	}
	return domain.KindUser, true
}

func (s *Service) probeChat(ctx context.Context, handle string) (domain.EntityKind, bool) {
	c, err := s.backend.FetchChat(ctx, handle)
	if err != nil {
		return domain.KindUnknown, false
	}
	switch c.Kind {
	case ports.ChatGroup, ports.ChatSupergroup:
		return domain.KindGroup, true
	case ports.ChatChannel:
		return domain.KindChannel, true
	}
	// Resolved, but an unsupported chat shape.
	return domain.KindUnknown, true
}
