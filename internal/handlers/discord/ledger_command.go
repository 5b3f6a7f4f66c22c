package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/common/uuid"
	"github.com/redbayou/outpost/internal/models"
	"github.com/redbayou/outpost/internal/services/economy"
	"github.com/redbayou/outpost/internal/services/profile"
)

// LedgerCommand handles the /ledger command: balances, deposits, payments
// and the wealth leaderboard
type LedgerCommand struct {
	BaseCommand
	economyService economy.Service
	profileService profile.Service
	uuidGen        uuid.UUID
	snapshots      *snapshotStore
}

// NewLedgerCommand creates a new ledger command handler
func NewLedgerCommand(economyService economy.Service, profileService profile.Service, uuidGen uuid.UUID, snapshots *snapshotStore) *LedgerCommand {
	return &LedgerCommand{
		BaseCommand: BaseCommand{
			Name:        "ledger",
			Description: "Wallets, payments and the wealth leaderboard",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Show your wallet balances",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sheet",
					Description: "Show a full character sheet",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Whose sheet to show (defaults to you)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "deposit",
					Description: "Move cash into your bank",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How much to deposit",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "all",
							Description: "Deposit everything you carry",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "withdraw",
					Description: "Move bank money into cash",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How much to withdraw",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "all",
							Description: "Withdraw your whole bank balance",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pay",
					Description: "Hand cash to another character",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who to pay",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How much cash",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "paydirty",
					Description: "Hand dirty money to another character",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who to pay",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "How much dirty money",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "give-item",
					Description: "Give an item, permit or property to another character",
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
							Description: "Which collection the item belongs to",
							Required:    true,
							Choices:     collectionChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Item name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "quantity",
							Description: "How many (counted items only, default 1)",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "all",
							Description: "Give every unit you hold",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the wealth leaderboard",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rank",
					Description: "Show your position on the wealth leaderboard",
				},
			},
		},
		economyService: economyService,
		profileService: profileService,
		uuidGen:        uuidGen,
		snapshots:      snapshots,
	}
}

// collectionChoices lists the four collections for command options
func collectionChoices() []*discordgo.ApplicationCommandOptionChoice {
	return []*discordgo.ApplicationCommandOptionChoice{
		{Name: "weapons", Value: string(models.CollectionWeapons)},
		{Name: "mounts", Value: string(models.CollectionMounts)},
		{Name: "permits", Value: string(models.CollectionPermits)},
		{Name: "properties", Value: string(models.CollectionProperties)},
	}
}

// Handle processes a Discord interaction for the ledger command
func (c *LedgerCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
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
	case "balance":
		return c.handleBalance(s, i, userID)
	case "sheet":
		targetID := userID
		if opt, ok := opts["user"]; ok {
			targetID = opt.UserValue(s).ID
		}
		return c.handleSheet(s, i, targetID)
	case "deposit":
		return c.handleMove(s, i, userID, models.WalletCash, models.WalletBank, opts)
	case "withdraw":
		return c.handleMove(s, i, userID, models.WalletBank, models.WalletCash, opts)
	case "pay":
		return c.handlePay(s, i, userID, models.WalletCash, opts)
	case "paydirty":
		return c.handlePay(s, i, userID, models.WalletDirty, opts)
	case "give-item":
		return c.handleGiveItem(s, i, userID, opts)
	case "leaderboard":
		return c.handleLeaderboard(s, i)
	case "rank":
		return c.handleRank(s, i, userID)
	default:
		return RespondWithError(s, i, "Unknown subcommand.")
	}
}

// handleBalance shows the caller's own wallets
func (c *LedgerCommand) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	ctx := context.Background()

	out, err := c.profileService.GetOrCreateProfile(ctx, &profile.GetOrCreateProfileInput{
		RecordID: userID,
	})
	if err != nil {
		log.Printf("Error loading balance for %s: %v", userID, err)
		return RespondWithError(s, i, "Failed to load your ledger entry.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Your Wallets",
		Description: fmt.Sprintf("Total wealth: **%s**", formatMoney(out.Record.TotalWealth())),
		Color:       colorLedger,
		Fields:      renderWalletFields(out.Record),
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// handleSheet shows a full character sheet, anyone's
func (c *LedgerCommand) handleSheet(s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) error {
	ctx := context.Background()

	out, err := c.profileService.GetProfile(ctx, &profile.GetProfileInput{
		RecordID: targetID,
	})
	if err != nil {
		if errors.Is(err, profile.ErrRecordNotFound) {
			return RespondWithEphemeralMessage(s, i, "No ledger entry for that character yet.")
		}
		log.Printf("Error loading sheet for %s: %v", targetID, err)
		return RespondWithError(s, i, "Failed to load that character sheet.")
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{renderSheetEmbed(out.Record)},
		},
	})
}

// handleMove handles deposit and withdraw
func (c *LedgerCommand) handleMove(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, from, to models.Wallet, opts optionIndex) error {
	ctx := context.Background()

	var amount int64
	if opt, ok := opts["amount"]; ok {
		amount = opt.IntValue()
	}
	all := false
	if opt, ok := opts["all"]; ok {
		all = opt.BoolValue()
	}

	if amount <= 0 && !all {
		return RespondWithEphemeralMessage(s, i, "Give an amount or set `all`.")
	}

	out, err := c.economyService.MoveWallet(ctx, &economy.MoveWalletInput{
		RecordID: userID,
		From:     from,
		To:       to,
		Amount:   amount,
		All:      all,
	})
	if err != nil {
		if errors.Is(err, economy.ErrInsufficientFunds) {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You don't have that much %s.", from))
		}
		log.Printf("Error moving %s to %s for %s: %v", from, to, userID, err)
		return RespondWithError(s, i, "Failed to move the money.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Moved **%s** from %s to %s. %s: %s, %s: %s.",
		formatMoney(out.Moved), from, to,
		from, formatMoney(out.FromBalance),
		to, formatMoney(out.ToBalance)))
}

// handlePay handles pay and paydirty
func (c *LedgerCommand) handlePay(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, wallet models.Wallet, opts optionIndex) error {
	ctx := context.Background()

	recipient := opts["user"].UserValue(s)
	amount := opts["amount"].IntValue()

	_, err := c.economyService.TransferMoney(ctx, &economy.TransferMoneyInput{
		SenderID:    userID,
		RecipientID: recipient.ID,
		Wallet:      wallet,
		Amount:      amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrSelfTarget):
			return RespondWithEphemeralMessage(s, i, "You can't pay yourself.")
		case errors.Is(err, economy.ErrInsufficientFunds):
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You don't have that much %s.", wallet))
		case errors.Is(err, economy.ErrInvalidAmount):
			return RespondWithEphemeralMessage(s, i, "The amount must be positive.")
		}
		log.Printf("Error transferring %s from %s to %s: %v", wallet, userID, recipient.ID, err)
		return RespondWithError(s, i, "Failed to complete the payment.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf("<@%s> paid **%s** (%s) to <@%s>.",
		userID, formatMoney(amount), wallet, recipient.ID))
}

// handleGiveItem handles item, permit and property transfers
func (c *LedgerCommand) handleGiveItem(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, opts optionIndex) error {
	ctx := context.Background()

	recipient := opts["user"].UserValue(s)
	collection := models.Collection(opts["collection"].StringValue())
	item := opts["item"].StringValue()

	quantity := 1
	if opt, ok := opts["quantity"]; ok {
		quantity = int(opt.IntValue())
	}
	all := false
	if opt, ok := opts["all"]; ok {
		all = opt.BoolValue()
	}

	out, err := c.economyService.TransferItem(ctx, &economy.TransferItemInput{
		SenderID:    userID,
		RecipientID: recipient.ID,
		Collection:  collection,
		Item:        item,
		Quantity:    quantity,
		All:         all,
	})
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrSelfTarget):
			return RespondWithEphemeralMessage(s, i, "You can't give items to yourself.")
		case errors.Is(err, economy.ErrItemNotHeld):
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You don't hold **%s**.", item))
		case errors.Is(err, economy.ErrItemAlreadyHeld):
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("<@%s> already holds **%s**.", recipient.ID, item))
		}
		log.Printf("Error transferring item %s from %s to %s: %v", item, userID, recipient.ID, err)
		return RespondWithError(s, i, "Failed to transfer the item.")
	}

	if collection.Counted() {
		return RespondWithMessage(s, i, fmt.Sprintf("<@%s> gave **%s ×%d** to <@%s>.",
			userID, item, out.Moved, recipient.ID))
	}

	return RespondWithMessage(s, i, fmt.Sprintf("<@%s> signed **%s** over to <@%s>.",
		userID, item, recipient.ID))
}

// handleLeaderboard captures a snapshot and shows its first page
func (c *LedgerCommand) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	// PageSize 0 returns the complete ordering in one call
	out, err := c.economyService.GetLeaderboard(ctx, &economy.GetLeaderboardInput{})
	if err != nil {
		log.Printf("Error building leaderboard: %v", err)
		return RespondWithError(s, i, "Failed to build the leaderboard.")
	}

	snapshotID := c.uuidGen.NewUUID()
	c.snapshots.Put(snapshotID, out.Entries)

	pageSize := economy.DefaultPageSize
	pageCount := (len(out.Entries) + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	end := pageSize
	if end > len(out.Entries) {
		end = len(out.Entries)
	}

	embed := renderLeaderboardEmbed(out.Entries[:end], 1, pageCount, len(out.Entries))

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: leaderboardButtons(snapshotID, 1, pageCount),
				},
			},
		},
	})
}

// handleRank shows the caller's own position
func (c *LedgerCommand) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	ctx := context.Background()

	out, err := c.economyService.GetRank(ctx, &economy.GetRankInput{
		RecordID: userID,
	})
	if err != nil {
		if errors.Is(err, economy.ErrRecordNotFound) {
			return RespondWithEphemeralMessage(s, i, "You're not on the ledger yet.")
		}
		log.Printf("Error getting rank for %s: %v", userID, err)
		return RespondWithError(s, i, "Failed to look up your rank.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You're **%s** of %d with **%s** total wealth.",
		ordinal(out.Rank), out.TotalEntries, formatMoney(out.Total)))
}
