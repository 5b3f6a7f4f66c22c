package discord

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/models"
	"github.com/redbayou/outpost/internal/services/economy"
)

// formatMoney renders an amount as $1,234 (negative amounts as -$1,234)
func formatMoney(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	return sign + "$" + strings.Join(parts, ",")
}

// formatDuration renders a remaining wait as "3h 12m" or "45s"
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ordinal renders 1 as "1st", 2 as "2nd", etc.
func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// displayName picks the character name if set, falling back to a mention
func displayName(rec *models.Record) string {
	name := strings.TrimSpace(rec.Identity.FirstName + " " + rec.Identity.LastName)
	if name == "" {
		return fmt.Sprintf("<@%s>", rec.ID)
	}
	return name
}

// renderWalletFields builds the three balance fields shared by /balance and /sheet
func renderWalletFields(rec *models.Record) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{
			Name:   "Cash",
			Value:  formatMoney(rec.Cash),
			Inline: true,
		},
		{
			Name:   "Bank",
			Value:  formatMoney(rec.Bank),
			Inline: true,
		},
		{
			Name:   "Dirty Money",
			Value:  formatMoney(rec.Dirty),
			Inline: true,
		},
	}
}

// renderSheetEmbed renders the full character sheet
func renderSheetEmbed(rec *models.Record) *discordgo.MessageEmbed {
	fields := renderWalletFields(rec)

	identityLines := ""
	addLine := func(label, value string) {
		if value != "" {
			identityLines += fmt.Sprintf("**%s:** %s\n", label, value)
		}
	}
	addLine("Titles", rec.Identity.Titles)
	addLine("Gender", rec.Identity.Gender)
	addLine("Born", rec.Identity.BirthDate)
	addLine("Birthplace", rec.Identity.BirthPlace)
	addLine("Nationality", rec.Identity.Nationality)
	addLine("Occupation", rec.Identity.Occupation)

	if identityLines != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Identity",
			Value:  identityLines,
			Inline: false,
		})
	}

	if v := renderCountedList(rec.Inventory.Weapons); v != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Weapons",
			Value:  v,
			Inline: true,
		})
	}

	if v := renderCountedList(rec.Inventory.Mounts); v != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Mounts",
			Value:  v,
			Inline: true,
		})
	}

	if v := renderFlagList(rec.Inventory.Permits); v != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Permits",
			Value:  v,
			Inline: true,
		})
	}

	if v := renderFlagList(rec.Properties); v != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Properties",
			Value:  v,
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       displayName(rec),
		Description: fmt.Sprintf("Total wealth: **%s**", formatMoney(rec.TotalWealth())),
		Color:       colorLedger,
		Fields:      fields,
	}
}

// renderCountedList renders a quantity map as sorted "name ×n" lines
func renderCountedList(m map[string]int) string {
	if len(m) == 0 {
		return ""
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s ×%d\n", name, m[name])
	}
	return b.String()
}

// renderFlagList renders a presence map as sorted "name (label)" lines
func renderFlagList(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s (%s)\n", name, m[name])
	}
	return b.String()
}

// renderLeaderboardEmbed renders one page of a leaderboard snapshot
func renderLeaderboardEmbed(entries []economy.LeaderboardEntry, page, pageCount, total int) *discordgo.MessageEmbed {
	var b strings.Builder
	medals := []string{"🥇", "🥈", "🥉"}

	for _, entry := range entries {
		marker := fmt.Sprintf("**%d.**", entry.Rank)
		if entry.Rank <= len(medals) {
			marker = medals[entry.Rank-1]
		}
		fmt.Fprintf(&b, "%s <@%s> — %s\n", marker, entry.RecordID, formatMoney(entry.Total))
	}

	if b.Len() == 0 {
		b.WriteString("No records on the ledger yet.")
	}

	return &discordgo.MessageEmbed{
		Title:       "Wealth Leaderboard",
		Description: b.String(),
		Color:       colorLedger,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d • %d characters", page, pageCount, total),
		},
	}
}

// leaderboardButtons builds the pagination row for a snapshot
func leaderboardButtons(snapshotID string, page, pageCount int) []discordgo.MessageComponent {
	prev := discordgo.Button{
		Label:    "Previous",
		Style:    discordgo.SecondaryButton,
		CustomID: fmt.Sprintf("%s:%s:%d", ButtonLeaderboardPage, snapshotID, page-1),
		Disabled: page <= 1,
	}

	next := discordgo.Button{
		Label:    "Next",
		Style:    discordgo.SecondaryButton,
		CustomID: fmt.Sprintf("%s:%s:%d", ButtonLeaderboardPage, snapshotID, page+1),
		Disabled: page >= pageCount,
	}

	return []discordgo.MessageComponent{prev, next}
}
