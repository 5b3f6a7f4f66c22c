package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbayou/outpost/internal/models"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", formatMoney(0))
	assert.Equal(t, "$7", formatMoney(7))
	assert.Equal(t, "$950", formatMoney(950))
	assert.Equal(t, "$1,234", formatMoney(1234))
	assert.Equal(t, "$1,234,567", formatMoney(1234567))
	assert.Equal(t, "-$1,234", formatMoney(-1234))
	assert.Equal(t, "-$45", formatMoney(-45))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "3h 12m", formatDuration(3*time.Hour+12*time.Minute+40*time.Second))
	assert.Equal(t, "4h 0m", formatDuration(4*time.Hour))
	assert.Equal(t, "5m 3s", formatDuration(5*time.Minute+3*time.Second))
	assert.Equal(t, "45s", formatDuration(45*time.Second))
	assert.Equal(t, "0s", formatDuration(0))
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "1st", ordinal(1))
	assert.Equal(t, "2nd", ordinal(2))
	assert.Equal(t, "3rd", ordinal(3))
	assert.Equal(t, "4th", ordinal(4))
	assert.Equal(t, "11th", ordinal(11))
	assert.Equal(t, "12th", ordinal(12))
	assert.Equal(t, "13th", ordinal(13))
	assert.Equal(t, "21st", ordinal(21))
	assert.Equal(t, "102nd", ordinal(102))
	assert.Equal(t, "111th", ordinal(111))
}

func TestDisplayName(t *testing.T) {
	rec := models.New("12345")
	assert.Equal(t, "<@12345>", displayName(rec))

	rec.Identity.FirstName = "Sadie"
	assert.Equal(t, "Sadie", displayName(rec))

	rec.Identity.LastName = "Adler"
	assert.Equal(t, "Sadie Adler", displayName(rec))
}

func TestRenderCountedList(t *testing.T) {
	assert.Equal(t, "", renderCountedList(nil))

	out := renderCountedList(map[string]int{
		"Machete":            1,
		"Cattleman Revolver": 2,
	})
	assert.Equal(t, "Cattleman Revolver ×2\nMachete ×1\n", out)
}

func TestRenderFlagList(t *testing.T) {
	assert.Equal(t, "", renderFlagList(nil))

	out := renderFlagList(map[string]string{
		"Small House":     "deeded",
		"Hunting License": "valid",
	})
	assert.Equal(t, "Hunting License (valid)\nSmall House (deeded)\n", out)
}

func TestLeaderboardButtonsDisableAtEdges(t *testing.T) {
	row := leaderboardButtons("snap-1", 1, 3)
	require.Len(t, row, 2)

	prev := row[0].(discordgo.Button)
	next := row[1].(discordgo.Button)
	assert.True(t, prev.Disabled)
	assert.False(t, next.Disabled)
	assert.Equal(t, "ledger_page:snap-1:2", next.CustomID)

	row = leaderboardButtons("snap-1", 3, 3)
	prev = row[0].(discordgo.Button)
	next = row[1].(discordgo.Button)
	assert.False(t, prev.Disabled)
	assert.True(t, next.Disabled)
	assert.Equal(t, "ledger_page:snap-1:2", prev.CustomID)
}
