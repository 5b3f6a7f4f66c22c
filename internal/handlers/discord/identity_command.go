package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/models"
	"github.com/redbayou/outpost/internal/services/profile"
)

// identityFields are the editable attributes shared by create and update
var identityFields = []struct {
	Name        string
	Description string
	Required    bool
}{
	{"first_name", "Character first name", true},
	{"last_name", "Character last name", true},
	{"titles", "Titles or honorifics", false},
	{"gender", "Gender", false},
	{"birth_date", "Date of birth", false},
	{"birth_place", "Place of birth", false},
	{"nationality", "Nationality", false},
	{"occupation", "Occupation", false},
}

// IdentityCommand handles the /identity command: character enrollment and
// identity edits
type IdentityCommand struct {
	BaseCommand
	profileService profile.Service
}

// NewIdentityCommand creates a new identity command handler
func NewIdentityCommand(profileService profile.Service) *IdentityCommand {
	createOpts := make([]*discordgo.ApplicationCommandOption, 0, len(identityFields))
	for _, f := range identityFields {
		createOpts = append(createOpts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        f.Name,
			Description: f.Description,
			Required:    f.Required,
		})
	}

	updateOpts := make([]*discordgo.ApplicationCommandOption, 0, len(identityFields))
	for _, f := range identityFields {
		updateOpts = append(updateOpts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        f.Name,
			Description: f.Description,
		})
	}

	return &IdentityCommand{
		BaseCommand: BaseCommand{
			Name:        "identity",
			Description: "Enroll or update your character",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Enroll a fresh character with the starting kit",
					Options:     createOpts,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "update",
					Description: "Change identity details; money and items are untouched",
					Options:     updateOpts,
				},
			},
		},
		profileService: profileService,
	}
}

// Handle processes a Discord interaction for the identity command
func (c *IdentityCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID := i.Member.User.ID
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "create":
		return c.handleCreate(s, i, userID, opts)
	case "update":
		return c.handleUpdate(s, i, userID, opts)
	default:
		return RespondWithError(s, i, "Unknown subcommand.")
	}
}

// handleCreate enrolls a fresh character, replacing any existing record
func (c *IdentityCommand) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, opts optionIndex) error {
	ctx := context.Background()

	str := func(name string) string {
		if opt, ok := opts[name]; ok {
			return opt.StringValue()
		}
		return ""
	}

	out, err := c.profileService.EnrollCharacter(ctx, &profile.EnrollCharacterInput{
		RecordID: userID,
		Identity: models.Identity{
			FirstName:   str("first_name"),
			LastName:    str("last_name"),
			Titles:      str("titles"),
			Gender:      str("gender"),
			BirthDate:   str("birth_date"),
			BirthPlace:  str("birth_place"),
			Nationality: str("nationality"),
			Occupation:  str("occupation"),
		},
	})
	if err != nil {
		log.Printf("Error enrolling character for %s: %v", userID, err)
		return RespondWithError(s, i, "Failed to enroll the character.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf(
		"📜 **%s** has been entered in the ledger with a %s bank grant and the standard kit.",
		displayName(out.Record), formatMoney(out.Record.Bank)))
}

// handleUpdate patches only the fields the caller passed
func (c *IdentityCommand) handleUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, opts optionIndex) error {
	ctx := context.Background()

	if len(opts) == 0 {
		return RespondWithEphemeralMessage(s, i, "Pass at least one field to change.")
	}

	ptr := func(name string) *string {
		if opt, ok := opts[name]; ok {
			v := opt.StringValue()
			return &v
		}
		return nil
	}

	out, err := c.profileService.UpdateIdentity(ctx, &profile.UpdateIdentityInput{
		RecordID:    userID,
		FirstName:   ptr("first_name"),
		LastName:    ptr("last_name"),
		Titles:      ptr("titles"),
		Gender:      ptr("gender"),
		BirthDate:   ptr("birth_date"),
		BirthPlace:  ptr("birth_place"),
		Nationality: ptr("nationality"),
		Occupation:  ptr("occupation"),
	})
	if err != nil {
		log.Printf("Error updating identity for %s: %v", userID, err)
		return RespondWithError(s, i, "Failed to update the identity.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Identity updated for **%s**.", displayName(out.Record)))
}
