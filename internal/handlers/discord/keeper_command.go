package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/models"
	"github.com/redbayou/outpost/internal/services/economy"
)

// KeeperCommand handles the /keeper command: administrative grants, fines
// and inventory edits
type KeeperCommand struct {
	BaseCommand
	economyService economy.Service
}

// NewKeeperCommand creates a new keeper command handler
func NewKeeperCommand(economyService economy.Service) *KeeperCommand {
	return &KeeperCommand{
		BaseCommand: BaseCommand{
			Name:        "keeper",
			Description: "Ledger keeper tools (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add-money",
					Description: "Grant money to a character",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who receives it",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "wallet",
							Description: "Which wallet",
							Required:    true,
							Choices:     walletChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How much",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove-money",
					Description: "Take money from a character (may go negative)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who pays",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "wallet",
							Description: "Which wallet",
							Required:    true,
							Choices:     walletChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How much",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set-item",
					Description: "Set the exact count of a weapon or mount",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Whose inventory",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "collection",
							Description: "weapons or mounts",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "weapons", Value: string(models.CollectionWeapons)},
								{Name: "mounts", Value: string(models.CollectionMounts)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Item name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "count",
							Description: "Exact count (0 removes it)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "grant",
					Description: "Grant a permit or property",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who receives it",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "collection",
							Description: "permits or properties",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "permits", Value: string(models.CollectionPermits)},
								{Name: "properties", Value: string(models.CollectionProperties)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Permit or property name",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "revoke",
					Description: "Revoke a permit or property",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who loses it",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "collection",
							Description: "permits or properties",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "permits", Value: string(models.CollectionPermits)},
								{Name: "properties", Value: string(models.CollectionProperties)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Permit or property name",
							Required:    true,
						},
					},
				},
			},
		},
		economyService: economyService,
	}
}

// walletChoices lists the three wallets for command options
func walletChoices() []*discordgo.ApplicationCommandOptionChoice {
	return []*discordgo.ApplicationCommandOptionChoice{
		{Name: "cash", Value: string(models.WalletCash)},
		{Name: "bank", Value: string(models.WalletBank)},
		{Name: "dirty", Value: string(models.WalletDirty)},
	}
}

// GetCommand returns the application command definition, restricted to admins
func (c *KeeperCommand) GetCommand() *discordgo.ApplicationCommand {
	cmd := c.BaseCommand.GetCommand()
	perms := int64(discordgo.PermissionAdministrator)
	cmd.DefaultMemberPermissions = &perms
	return cmd
}

// Handle processes a Discord interaction for the keeper command
func (c *KeeperCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add-money":
		return c.handleAddMoney(s, i, opts)
	case "remove-money":
		return c.handleRemoveMoney(s, i, opts)
	case "set-item":
		return c.handleSetItem(s, i, opts)
	case "grant":
		return c.handleSetFlag(s, i, opts, true)
	case "revoke":
		return c.handleSetFlag(s, i, opts, false)
	default:
		return RespondWithError(s, i, "Unknown subcommand.")
	}
}

// handleAddMoney handles the add-money subcommand
func (c *KeeperCommand) handleAddMoney(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionIndex) error {
	ctx := context.Background()

	target := opts["user"].UserValue(s)
	wallet := models.Wallet(opts["wallet"].StringValue())
	amount := opts["amount"].IntValue()

	out, err := c.economyService.Credit(ctx, &economy.CreditInput{
		RecordID: target.ID,
		Wallet:   wallet,
		Amount:   amount,
	})
	if err != nil {
		if errors.Is(err, economy.ErrInvalidAmount) {
			return RespondWithEphemeralMessage(s, i, "The amount must be positive.")
		}
		log.Printf("Error crediting %s %s to %s: %v", wallet, formatMoney(amount), target.ID, err)
		return RespondWithError(s, i, "Failed to add the money.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Added **%s** to <@%s>'s %s. New balance: %s.",
		formatMoney(amount), target.ID, wallet, formatMoney(out.Balance)))
}

// handleRemoveMoney handles the remove-money subcommand
func (c *KeeperCommand) handleRemoveMoney(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionIndex) error {
	ctx := context.Background()

	target := opts["user"].UserValue(s)
	wallet := models.Wallet(opts["wallet"].StringValue())
	amount := opts["amount"].IntValue()

	out, err := c.economyService.Debit(ctx, &economy.DebitInput{
		RecordID:      target.ID,
		Wallet:        wallet,
		Amount:        amount,
		AllowNegative: true,
	})
	if err != nil {
		if errors.Is(err, economy.ErrInvalidAmount) {
			return RespondWithEphemeralMessage(s, i, "The amount must be positive.")
		}
		log.Printf("Error debiting %s %s from %s: %v", wallet, formatMoney(amount), target.ID, err)
		return RespondWithError(s, i, "Failed to remove the money.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Removed **%s** from <@%s>'s %s. New balance: %s.",
		formatMoney(amount), target.ID, wallet, formatMoney(out.Balance)))
}

// handleSetItem handles the set-item subcommand
func (c *KeeperCommand) handleSetItem(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionIndex) error {
	ctx := context.Background()

	target := opts["user"].UserValue(s)
	collection := models.Collection(opts["collection"].StringValue())
	item := opts["item"].StringValue()
	count := int(opts["count"].IntValue())

	out, err := c.economyService.SetItemCount(ctx, &economy.SetItemCountInput{
		RecordID:   target.ID,
		Collection: collection,
		Item:       item,
		Count:      count,
	})
	if err != nil {
		log.Printf("Error setting %s/%s to %d for %s: %v", collection, item, count, target.ID, err)
		return RespondWithError(s, i, "Failed to set the item count.")
	}

	if out.Count == 0 {
		return RespondWithMessage(s, i, fmt.Sprintf("Removed **%s** from <@%s>'s %s.",
			item, target.ID, collection))
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Set <@%s>'s **%s** to ×%d.",
		target.ID, item, out.Count))
}

// handleSetFlag handles grant and revoke
func (c *KeeperCommand) handleSetFlag(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionIndex, present bool) error {
	ctx := context.Background()

	target := opts["user"].UserValue(s)
	collection := models.Collection(opts["collection"].StringValue())
	item := opts["item"].StringValue()

	out, err := c.economyService.SetFlag(ctx, &economy.SetFlagInput{
		RecordID:   target.ID,
		Collection: collection,
		Item:       item,
		Present:    present,
	})
	if err != nil {
		log.Printf("Error setting flag %s/%s=%v for %s: %v", collection, item, present, target.ID, err)
		return RespondWithError(s, i, "Failed to update the holding.")
	}

	switch {
	case present && out.Existed:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("<@%s> already holds **%s**.", target.ID, item))
	case present:
		return RespondWithMessage(s, i, fmt.Sprintf("Granted **%s** to <@%s>.", item, target.ID))
	case !out.Existed:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("<@%s> doesn't hold **%s**.", target.ID, item))
	default:
		return RespondWithMessage(s, i, fmt.Sprintf("Revoked **%s** from <@%s>.", item, target.ID))
	}
}
