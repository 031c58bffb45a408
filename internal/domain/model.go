package domain

import (
	"strings"
	"time"
)

// Core domain records built by the aggregator and consumed by the report
// formatter. Defaults for absent optional fields are applied when a
// record is constructed, never at render time, so formatting stays total.

// EntityKind discriminates what a handle resolved to.
type EntityKind string

const (
	KindUser    EntityKind = "user"
	KindBot     EntityKind = "bot"
	KindGroup   EntityKind = "group"
	KindChannel EntityKind = "channel"
	KindUnknown EntityKind = "unknown"
)

// Default strings substituted for optional fields that are absent or
// whose enrichment failed.
const (
	NoUsername     = "No username"
	NoDescription  = "No description"
	NoProfilePhoto = "No Profile Picture"
	NotAccessible  = "Not accessible"
	UnknownName    = "Unknown"
)

// Safety labels derived from the scam/fake markers.
const (
	LabelSafe   = "Safe"
	LabelUnsafe = "Flagged/Unsafe"
)

// Profile is the normalized record for one resolved entity. Exactly one
// of User or Chat is set, matching Kind; both are nil for KindUnknown.
type Profile struct {
	Kind EntityKind
	User *UserProfile
	Chat *ChatProfile
}

// UserProfile covers both users and bots.
type UserProfile struct {
	ID         int64
	FirstName  string
	LastName   string
	Username   string // "@name" or NoUsername
	Premium    bool
	Verified   bool
	Scam       bool
	Fake       bool
	DCID       int // 0 when the backend reported none
	DCLocation string
	Status     PresenceStatus
	HasPhoto   bool
	CreatedAt  time.Time // estimated
	Age        string
}

// DisplayName joins first and last name, falling back to UnknownName for
// entities with no name at all.
func (u *UserProfile) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return UnknownName
	}
	return name
}

// ChatProfile covers groups, supergroups and channels.
type ChatProfile struct {
	ID          int64
	Title       string
	Username    string // "@name" or NoUsername
	Subtype     string // "Group", "Supergroup" or "Channel"
	MemberCount string // decimal count or NotAccessible
	Verified    bool
	Scam        bool
	Fake        bool
	Safety      string
	Description string
	HasPhoto    bool
	PhotoURL    string
	// MemberSample holds up to the sampler cap of member ids, groups
	// only. SampleOK is false when enumeration failed and the sample
	// renders as NotAccessible.
	MemberSample []int64
	SampleOK     bool
}

// PhotoURL derives the public userpic URL. It exists only for entities
// that both expose a photo and have a public username; everything else
// gets the placeholder.
func PhotoURL(hasPhoto bool, username string) string {
	if hasPhoto && username != "" {
		return "https://t.me/i/userpic/320/" + username + ".jpg"
	}
	return NoProfilePhoto
}

// SafetyLabel folds the scam/fake markers into the display label.
func SafetyLabel(scam, fake bool) string {
	if scam || fake {
		return LabelUnsafe
	}
	return LabelSafe
}
