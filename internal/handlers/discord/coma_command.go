package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/rng"
)

// comaOutcome is one result of the post-death coma roll
type comaOutcome struct {
	Title string
	Text  string
}

// comaOutcomes are drawn uniformly: two memory-loss results and one clean
// wake-up
var comaOutcomes = []comaOutcome{
	{
		Title: "🧠 Memory Loss",
		Text:  "The character forgets the last **30 minutes** of role-play and wakes up.",
	},
	{
		Title: "🧠 Memory Loss",
		Text:  "The character forgets the last **15 minutes** of role-play and wakes up.",
	},
	{
		Title: "✅ Awake",
		Text:  "The character remembers everything and wakes up immediately.",
	},
}

// ComaCommand handles the /coma command: a stateless flavor roll after a
// role-play death. It never touches the ledger.
type ComaCommand struct {
	BaseCommand
	roller rng.Roller
}

// NewComaCommand creates a new coma command handler
func NewComaCommand(roller rng.Roller) *ComaCommand {
	return &ComaCommand{
		BaseCommand: BaseCommand{
			Name:        "coma",
			Description: "Roll the outcome of a coma after a role-play death",
		},
		roller: roller,
	}
}

// roll draws one outcome uniformly
func (c *ComaCommand) roll() comaOutcome {
	return comaOutcomes[c.roller.IntN(len(comaOutcomes))]
}

// Handle processes a Discord interaction for the coma command
func (c *ComaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	outcome := c.roll()
	embed := &discordgo.MessageEmbed{
		Title:       "Coma Verdict",
		Description: fmt.Sprintf("**%s**\n%s", outcome.Title, outcome.Text),
		Color:       colorLedger,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Only roll this if the player who downed you agrees to the coma.",
		},
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
