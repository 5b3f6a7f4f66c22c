package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/services/risk"
)

// OutlawCommand handles the /outlaw command: the cooldown-gated risk actions
type OutlawCommand struct {
	BaseCommand
	riskService risk.Service
}

// NewOutlawCommand creates a new outlaw command handler
func NewOutlawCommand(riskService risk.Service) *OutlawCommand {
	return &OutlawCommand{
		BaseCommand: BaseCommand{
			Name:        "outlaw",
			Description: "Risky ways to make (or lose) money",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "heist",
					Description: "Rob a stagecoach, business, train or bank",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "target",
							Description: "What to hit",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "stagecoach", Value: risk.HeistTargetStagecoach},
								{Name: "business", Value: risk.HeistTargetBusiness},
								{Name: "train", Value: risk.HeistTargetTrain},
								{Name: "bank", Value: risk.HeistTargetBank},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rob",
					Description: "Rob another character's cash",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who to rob",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "launder",
					Description: "Launder your dirty money into cash",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "work",
					Description: "Earn an honest wage, paid to your bank",
				},
			},
		},
		riskService: riskService,
	}
}

// Handle processes a Discord interaction for the outlaw command
func (c *OutlawCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
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
	case "heist":
		return c.handleHeist(s, i, userID, opts["target"].StringValue())
	case "rob":
		return c.handleRob(s, i, userID, opts["user"].UserValue(s).ID)
	case "launder":
		return c.handleLaunder(s, i, userID)
	case "work":
		return c.handleWork(s, i, userID)
	default:
		return RespondWithError(s, i, "Unknown subcommand.")
	}
}

// respondCooldown tells the caller how long until the action is back
func respondCooldown(s *discordgo.Session, i *discordgo.InteractionCreate, err error) (bool, error) {
	var cdErr *risk.CooldownError
	if !errors.As(err, &cdErr) {
		return false, nil
	}

	return true, RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Lay low for a while. You can %s again in **%s**.",
		cdErr.Action, formatDuration(cdErr.Remaining)))
}

// handleHeist handles the heist subcommand
func (c *OutlawCommand) handleHeist(s *discordgo.Session, i *discordgo.InteractionCreate, userID, target string) error {
	ctx := context.Background()

	out, err := c.riskService.Heist(ctx, &risk.HeistInput{
		ActorID: userID,
		Target:  target,
	})
	if err != nil {
		if handled, respErr := respondCooldown(s, i, err); handled {
			return respErr
		}
		if errors.Is(err, risk.ErrUnknownHeistTarget) {
			return RespondWithEphemeralMessage(s, i, "Nobody's heard of that target.")
		}
		log.Printf("Error running heist for %s: %v", userID, err)
		return RespondWithError(s, i, "The heist fell apart before it started.")
	}

	if out.Loss {
		return RespondWithMessage(s, i, fmt.Sprintf(
			"💥 The %s job went bad! <@%s> lost **%s** in the getaway. Dirty money: %s.",
			out.Target, userID, formatMoney(-out.Amount), formatMoney(out.Dirty)))
	}

	return RespondWithMessage(s, i, fmt.Sprintf(
		"🤠 <@%s> hit the %s and rode off with **%s** in dirty money. Dirty money: %s.",
		userID, out.Target, formatMoney(out.Amount), formatMoney(out.Dirty)))
}

// handleRob handles the rob subcommand
func (c *OutlawCommand) handleRob(s *discordgo.Session, i *discordgo.InteractionCreate, userID, victimID string) error {
	ctx := context.Background()

	out, err := c.riskService.Rob(ctx, &risk.RobInput{
		ActorID:  userID,
		VictimID: victimID,
	})
	if err != nil {
		if handled, respErr := respondCooldown(s, i, err); handled {
			return respErr
		}
		if errors.Is(err, risk.ErrSelfTarget) {
			return RespondWithEphemeralMessage(s, i, "Robbing yourself won't get you anywhere.")
		}
		log.Printf("Error robbing %s by %s: %v", victimID, userID, err)
		return RespondWithError(s, i, "The robbery went nowhere.")
	}

	if !out.VictimHadCash {
		return RespondWithMessage(s, i, fmt.Sprintf(
			"🫗 <@%s> turned out <@%s>'s pockets and found nothing at all.",
			userID, victimID))
	}

	if out.Backfired {
		return RespondWithMessage(s, i, fmt.Sprintf(
			"🚨 The robbery backfired! <@%s> dropped **%s** fleeing from <@%s>.",
			userID, formatMoney(out.Amount), victimID))
	}

	if out.Amount == 0 {
		return RespondWithMessage(s, i, fmt.Sprintf(
			"🫗 <@%s> fumbled the holdup and got nothing from <@%s>.",
			userID, victimID))
	}

	return RespondWithMessage(s, i, fmt.Sprintf(
		"🔫 <@%s> robbed <@%s> of **%s** (%d%% of their cash).",
		userID, victimID, formatMoney(out.Amount), out.Percent))
}

// handleLaunder handles the launder subcommand
func (c *OutlawCommand) handleLaunder(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	ctx := context.Background()

	out, err := c.riskService.Launder(ctx, &risk.LaunderInput{
		ActorID: userID,
	})
	if err != nil {
		if handled, respErr := respondCooldown(s, i, err); handled {
			return respErr
		}
		if errors.Is(err, risk.ErrNothingToLaunder) {
			return RespondWithEphemeralMessage(s, i, "You have no dirty money to launder.")
		}
		log.Printf("Error laundering for %s: %v", userID, err)
		return RespondWithError(s, i, "The laundering fell through.")
	}

	if out.Busted {
		return RespondWithMessage(s, i, fmt.Sprintf(
			"🚔 Busted! The law seized <@%s>'s **%s** of dirty money.",
			userID, formatMoney(out.Forfeited)))
	}

	return RespondWithMessage(s, i, fmt.Sprintf(
		"🧼 <@%s> laundered **%s** into clean cash at %d%%. Cash: %s, dirty left: %s.",
		userID, formatMoney(out.Gain), out.Rate, formatMoney(out.Cash), formatMoney(out.Dirty)))
}

// handleWork handles the work subcommand
func (c *OutlawCommand) handleWork(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	ctx := context.Background()

	out, err := c.riskService.Work(ctx, &risk.WorkInput{
		ActorID: userID,
	})
	if err != nil {
		if handled, respErr := respondCooldown(s, i, err); handled {
			return respErr
		}
		log.Printf("Error working for %s: %v", userID, err)
		return RespondWithError(s, i, "No work to be found today.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf(
		"🛠️ <@%s> put in a shift and earned **%s**, paid straight to the bank (%s).",
		userID, formatMoney(out.Wage), formatMoney(out.Bank)))
}
