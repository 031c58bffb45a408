// Package report renders normalized profiles into their fixed textual
// layout. Formatting is total: absent optional values were already
// replaced by their defaults when the record was built, so every line of
// a template always renders.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"tgscope/internal/domain"
)

// UnknownEntity is the body returned when the handle resolved to an
// unsupported shape.
const UnknownEntity = "Unknown entity type."

// Format renders a profile using the fixed per-kind template.
func Format(p domain.Profile) string {
	switch p.Kind {
	case domain.KindUser, domain.KindBot:
		return formatUser(p.Kind, p.User)
	case domain.KindGroup, domain.KindChannel:
		return formatChat(p.Kind, p.Chat)
	}
	return UnknownEntity
}

func formatUser(kind domain.EntityKind, u *domain.UserProfile) string {
	header := "👤 User Report"
	if kind == domain.KindBot {
		header = "🤖 Bot Report"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header)
	fmt.Fprintf(&b, "🆔 ID: %d\n", u.ID)
	fmt.Fprintf(&b, "📛 Name: %s\n", u.DisplayName())
	fmt.Fprintf(&b, "🔗 Username: %s\n", u.Username)
	fmt.Fprintf(&b, "⭐ Premium: %s\n", yesNo(u.Premium))
	fmt.Fprintf(&b, "✅ Verified: %s\n", yesNo(u.Verified))
	fmt.Fprintf(&b, "🚩 Scam: %s\n", yesNo(u.Scam))
	fmt.Fprintf(&b, "🎭 Fake: %s\n", yesNo(u.Fake))
	fmt.Fprintf(&b, "🌐 Data Center: %s\n", dcLine(u.DCID, u.DCLocation))
	fmt.Fprintf(&b, "📡 Status: %s\n", u.Status)
	fmt.Fprintf(&b, "🖼 Profile Photo: %s\n", yesNo(u.HasPhoto))
	fmt.Fprintf(&b, "📅 Created: %s (estimated)\n", u.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "⏳ Account Age: %s", u.Age)
	return b.String()
}

func formatChat(kind domain.EntityKind, c *domain.ChatProfile) string {
	header := "👥 Group Report"
	if kind == domain.KindChannel {
		header = "📢 Channel Report"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header)
	fmt.Fprintf(&b, "🆔 ID: %d\n", c.ID)
	fmt.Fprintf(&b, "📛 Title: %s\n", c.Title)
	fmt.Fprintf(&b, "🔗 Username: %s\n", c.Username)
	fmt.Fprintf(&b, "🏷 Type: %s\n", c.Subtype)
	fmt.Fprintf(&b, "👥 Members: %s\n", c.MemberCount)
	fmt.Fprintf(&b, "✅ Verified: %s\n", yesNo(c.Verified))
	fmt.Fprintf(&b, "🚩 Scam: %s\n", yesNo(c.Scam))
	fmt.Fprintf(&b, "🎭 Fake: %s\n", yesNo(c.Fake))
	fmt.Fprintf(&b, "🛡 Safety: %s\n", c.Safety)
	fmt.Fprintf(&b, "📝 Description: %s\n", c.Description)
	fmt.Fprintf(&b, "🖼 Profile Photo: %s\n", yesNo(c.HasPhoto))
	fmt.Fprintf(&b, "🔗 Photo URL: %s", c.PhotoURL)
	if kind == domain.KindGroup {
		fmt.Fprintf(&b, "\n👤 Member IDs: %s", memberLine(c.MemberSample, c.SampleOK))
	}
	return b.String()
}

func memberLine(ids []int64, ok bool) string {
	if !ok {
		return domain.NotAccessible
	}
	if len(ids) == 0 {
		return "None"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func dcLine(id int, location string) string {
	if id == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("DC%d (%s)", id, location)
}
