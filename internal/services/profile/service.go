package profile

import (
	"context"
	"fmt"
	"strconv"

	"tgscope/internal/domain"
	"tgscope/internal/ports"
	"tgscope/internal/refdata"
)

// MemberSampleCap bounds the group member sample. Hard ceiling, never
// configurable per request; it exists to bound response size and backend
// load.
const MemberSampleCap = 10

type Service struct {
	backend ports.Backend
}

func New(backend ports.Backend) *Service { return &Service{backend: backend} }

// Aggregate builds the normalized record for handle. Only the mandatory
// fetch for the kind can fail the call; every optional enrichment
// degrades independently to its documented default.
func (s *Service) Aggregate(ctx context.Context, kind domain.EntityKind, handle string) (domain.Profile, error) {
	switch kind {
	case domain.KindUser, domain.KindBot:
		return s.aggregateUser(ctx, kind, handle)
	case domain.KindGroup, domain.KindChannel:
		return s.aggregateChat(ctx, kind, handle)
	}
	return domain.Profile{Kind: domain.KindUnknown}, nil
}

func (s *Service) aggregateUser(ctx context.Context, kind domain.EntityKind, handle string) (domain.Profile, error) {
	u, err := s.backend.FetchUserOrBot(ctx, handle)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch user %q: %w", handle, err)
	}
	created := refdata.EstimateCreationDate(u.ID)
	prof := &domain.UserProfile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   displayUsername(u.Username),
		Premium:    u.Premium,
		Verified:   u.Verified,
		Scam:       u.Scam,
		Fake:       u.Fake,
		DCID:       u.DCID,
		DCLocation: refdata.DCLocation(u.DCID),
		Status:     domain.DecodePresence(u.RawStatus),
		HasPhoto:   u.HasPhoto,
		CreatedAt:  created,
		Age:        refdata.FormatAge(created),
	}
	return domain.Profile{Kind: kind, User: prof}, nil
}

func (s *Service) aggregateChat(ctx context.Context, kind domain.EntityKind, handle string) (domain.Profile, error) {
	c, err := s.backend.FetchChat(ctx, handle)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch chat %q: %w", handle, err)
	}
	prof := &domain.ChatProfile{
		ID:          c.ID,
		Title:       c.Title,
		Username:    displayUsername(c.Username),
		Subtype:     subtypeLabel(kind, c.Kind),
		MemberCount: s.memberCount(ctx, c.ID),
		Verified:    c.Verified,
		Scam:        c.Scam,
		Fake:        c.Fake,
		Safety:      domain.SafetyLabel(c.Scam, c.Fake),
		Description: orDefault(c.Description, domain.NoDescription),
		HasPhoto:    c.HasPhoto,
		PhotoURL:    domain.PhotoURL(c.HasPhoto, c.Username),
	}
	if kind == domain.KindGroup {
		prof.MemberSample, prof.SampleOK = s.sampleMembers(ctx, c.ID)
	}
	return domain.Profile{Kind: kind, Chat: prof}, nil
}

// memberCount degrades to NotAccessible when the backend refuses the
// count (insufficient permission, hidden member list).
func (s *Service) memberCount(ctx context.Context, chatID int64) string {
	n, err := s.backend.CountChatMembers(ctx, chatID)
	if err != nil {
		return domain.NotAccessible
	}
	return strconv.Itoa(n)
}

// sampleMembers collects at most MemberSampleCap member ids in sequence
// order. Any enumeration error degrades the whole sample to
// inaccessible; the rest of the record is unaffected.
func (s *Service) sampleMembers(ctx context.Context, chatID int64) ([]int64, bool) {
	it, err := s.backend.IterateChatMembers(ctx, chatID)
	if err != nil {
		return nil, false
	}
	defer it.Close()
	ids := make([]int64, 0, MemberSampleCap)
	for len(ids) < MemberSampleCap {
		m, found, err := it.Next(ctx)
		if err != nil {
			return nil, false
		}
		if !found {
			break
		}
		ids = append(ids, m.UserID)
	}
	return ids, true
}

func subtypeLabel(kind domain.EntityKind, raw ports.ChatKind) string {
	if kind == domain.KindChannel {
		return "Channel"
	}
	if raw == ports.ChatSupergroup {
		return "Supergroup"
	}
	return "Group"
}

func displayUsername(username string) string {
	if username == "" {
		return domain.NoUsername
	}
	return "@" + username
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
