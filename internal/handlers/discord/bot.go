package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redbayou/outpost/internal/common/uuid"
	"github.com/redbayou/outpost/internal/rng"
	"github.com/redbayou/outpost/internal/services/backup"
	"github.com/redbayou/outpost/internal/services/economy"
	"github.com/redbayou/outpost/internal/services/profile"
	"github.com/redbayou/outpost/internal/services/risk"
)

// Component custom ID prefixes. Button payloads are colon-separated:
// prefix:arg1:arg2.
const (
	ButtonLeaderboardPage = "ledger_page"
	ButtonSessionVote     = "session_vote"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID

	economyService economy.Service
	riskService    risk.Service
	profileService profile.Service
	backupService  backup.Service

	uuidGen   uuid.UUID
	roller    rng.Roller
	snapshots *snapshotStore
	sessions  *sessionStore

	config     *Config
	backupStop chan struct{}
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// BackupChannelID receives the hourly ledger archive; empty disables it
	BackupChannelID string

	// BackupInterval between archive posts; defaults to one hour
	BackupInterval time.Duration

	// Services
	EconomyService economy.Service
	RiskService    risk.Service
	ProfileService profile.Service
	BackupService  backup.Service

	// UUIDGenerator mints leaderboard snapshot and session IDs
	UUIDGenerator uuid.UUID

	// Roller backs the stateless flavor rolls (coma verdicts)
	Roller rng.Roller
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.EconomyService == nil {
		return nil, errors.New("economy service cannot be nil")
	}

	if cfg.RiskService == nil {
		return nil, errors.New("risk service cannot be nil")
	}

	if cfg.ProfileService == nil {
		return nil, errors.New("profile service cannot be nil")
	}

	if cfg.BackupService == nil {
		return nil, errors.New("backup service cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.New()
	}

	if cfg.Roller == nil {
		cfg.Roller = rng.New(&rng.Config{})
	}

	if cfg.BackupInterval <= 0 {
		cfg.BackupInterval = time.Hour
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:        session,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		economyService: cfg.EconomyService,
		riskService:    cfg.RiskService,
		profileService: cfg.ProfileService,
		backupService:  cfg.BackupService,
		uuidGen:        cfg.UUIDGenerator,
		roller:         cfg.Roller,
		snapshots:      newSnapshotStore(),
		sessions:       newSessionStore(),
		config:         cfg,
		backupStop:     make(chan struct{}),
	}

	// Register the event handlers
	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMemberRemove)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewLedgerCommand(b.economyService, b.profileService, b.uuidGen, b.snapshots),
		NewOutlawCommand(b.riskService),
		NewKeeperCommand(b.economyService),
		NewIdentityCommand(b.profileService),
		NewSessionCommand(b.uuidGen, b.sessions),
		NewComaCommand(b.roller),
	}

	for _, h := range handlers {
		if err := b.RegisterCommand(h); err != nil {
			return fmt.Errorf("failed to register %s command: %w", h.GetName(), err)
		}
	}

	// Start the periodic backup poster
	if b.config.BackupChannelID != "" {
		go b.backupLoop()
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	close(b.backupStop)

	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild.
	// Otherwise, register it globally.
	if b.config.GuildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), b.config.GuildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	parts := strings.SplitN(customID, ":", 3)

	switch parts[0] {
	case ButtonLeaderboardPage:
		if len(parts) != 3 {
			return RespondWithError(s, i, "Malformed leaderboard button.")
		}
		return b.handleLeaderboardPage(s, i, parts[1], parts[2])
	case ButtonSessionVote:
		if len(parts) != 3 {
			return RespondWithError(s, i, "Malformed session button.")
		}
		return b.handleSessionVote(s, i, parts[1], parts[2])
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleLeaderboardPage pages through a stored leaderboard snapshot
func (b *Bot) handleLeaderboardPage(s *discordgo.Session, i *discordgo.InteractionCreate, snapshotID, pageArg string) error {
	entries, ok := b.snapshots.Get(snapshotID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "That leaderboard has expired. Run `/ledger leaderboard` again.")
	}

	page, err := strconv.Atoi(pageArg)
	if err != nil || page < 1 {
		page = 1
	}

	pageSize := economy.DefaultPageSize
	pageCount := (len(entries) + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}

	embed := renderLeaderboardEmbed(entries[start:end], page, pageCount, len(entries))
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: leaderboardButtons(snapshotID, page, pageCount),
		},
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// handleSessionVote records a vote and refreshes the announcement
func (b *Bot) handleSessionVote(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, choice string) error {
	userID := i.Member.User.ID

	sess, ok := b.sessions.Vote(sessionID, userID, choice)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "That session announcement is no longer active.")
	}

	embed := renderSessionEmbed(sess)
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: sessionButtons(sessionID),
		},
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// handleMemberRemove purges a departing member's record
func (b *Bot) handleMemberRemove(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
	if e.User == nil {
		return
	}

	ctx := context.Background()
	_, err := b.economyService.DeleteRecord(ctx, &economy.DeleteRecordInput{
		RecordID: e.User.ID,
	})
	if err != nil {
		log.Printf("Error purging record for departed member %s: %v", e.User.ID, err)
		return
	}

	log.Printf("Purged ledger record for departed member %s", e.User.ID)
}

// backupLoop posts a full ledger archive to the backup channel on a timer
func (b *Bot) backupLoop() {
	ticker := time.NewTicker(b.config.BackupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.postBackup()
		case <-b.backupStop:
			return
		}
	}
}

// postBackup builds one archive and sends it as a file attachment
func (b *Bot) postBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, err := b.backupService.BuildArchive(ctx, &backup.BuildArchiveInput{})
	if err != nil {
		log.Printf("Error building backup archive: %v", err)
		return
	}

	_, err = b.session.ChannelFileSend(b.config.BackupChannelID, out.Filename, bytes.NewReader(out.Data))
	if err != nil {
		log.Printf("Error posting backup archive: %v", err)
		return
	}

	log.Printf("Posted ledger backup %s (%d records)", out.Filename, out.RecordCount)
}
