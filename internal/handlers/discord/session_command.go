package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/common/uuid"
)

// SessionCommand handles the /session command: announcing role-play sessions
// and collecting attendance votes. Sessions never touch the ledger.
type SessionCommand struct {
	BaseCommand
	uuidGen  uuid.UUID
	sessions *sessionStore
}

// NewSessionCommand creates a new session command handler
func NewSessionCommand(uuidGen uuid.UUID, sessions *sessionStore) *SessionCommand {
	return &SessionCommand{
		BaseCommand: BaseCommand{
			Name:        "session",
			Description: "Announce a role-play session",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "announce",
					Description: "Post a session announcement with attendance buttons",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "title",
							Description: "What the session is about",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "when",
							Description: "When it happens (free text)",
							Required:    true,
						},
					},
				},
			},
		},
		uuidGen:  uuidGen,
		sessions: sessions,
	}
}

// Handle processes a Discord interaction for the session command
func (c *SessionCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	sub := data.Options[0]
	if sub.Name != "announce" {
		return RespondWithError(s, i, "Unknown subcommand.")
	}

	opts := optionMap(sub.Options)
	title := opts["title"].StringValue()
	when := opts["when"].StringValue()
	hostID := i.Member.User.ID

	sessionID := c.uuidGen.NewUUID()
	sess := c.sessions.Create(sessionID, title, when, hostID)

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{renderSessionEmbed(sess)},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: sessionButtons(sessionID),
				},
			},
		},
	})
}
