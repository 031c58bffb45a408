package domain

import "strings"

// PresenceStatus is the closed set of last-seen states.
type PresenceStatus int

const (
	PresenceUnknown PresenceStatus = iota
	PresenceOnline
	PresenceOffline
	PresenceRecently
	PresenceLastWeek
	PresenceLastMonth
)

func (s PresenceStatus) String() string {
	switch s {
	case PresenceOnline:
		return "Online"
	case PresenceOffline:
		return "Offline"
	case PresenceRecently:
		return "Recently online"
	case PresenceLastWeek:
		return "Last seen within week"
	case PresenceLastMonth:
		return "Last seen within month"
	}
	return "Unknown"
}

// presenceProbes are checked in priority order; the first substring hit
// wins.
var presenceProbes = []struct {
	needle string
	status PresenceStatus
}{
	{"ONLINE", PresenceOnline},
	{"OFFLINE", PresenceOffline},
	{"RECENTLY", PresenceRecently},
	{"LAST_WEEK", PresenceLastWeek},
	{"LAST_MONTH", PresenceLastMonth},
}

// DecodePresence maps the backend's raw status value to a PresenceStatus.
// This is the single decode point for presence; matching is
// case-insensitive by substring, unrecognized values decode to
// PresenceUnknown.
func DecodePresence(raw string) PresenceStatus {
	up := strings.ToUpper(raw)
	for _, p := range presenceProbes {
		if strings.Contains(up, p.needle) {
			return p.status
		}
	}
	return PresenceUnknown
}
