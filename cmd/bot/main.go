package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/redbayou/outpost/internal/catalog"
	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/handlers/discord"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
	"github.com/redbayou/outpost/internal/rng"
	"github.com/redbayou/outpost/internal/services/backup"
	"github.com/redbayou/outpost/internal/services/economy"
	"github.com/redbayou/outpost/internal/services/profile"
	"github.com/redbayou/outpost/internal/services/risk"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment as-is")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize the record repository
	repo, err := recordRepo.NewRedis(&recordRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create record repository: %v", err)
	}

	// Load the item catalog, compiled-in defaults unless a file overrides them
	cat := catalog.Default()
	if path := getEnv("CATALOG_PATH", ""); path != "" {
		cat, err = catalog.Load(path)
		if err != nil {
			log.Fatalf("Failed to load catalog from %s: %v", path, err)
		}
	}

	// One lock set shared by every service that mutates records
	locks := keymutex.New()

	// Initialize the random source
	roller := rng.New(&rng.Config{})

	// Initialize services
	economySvc, err := economy.New(&economy.Config{
		RecordRepo: repo,
		Locks:      locks,
	})
	if err != nil {
		log.Fatalf("Failed to create economy service: %v", err)
	}

	riskSvc, err := risk.New(&risk.Config{
		RecordRepo: repo,
		Locks:      locks,
		Roller:     roller,
	})
	if err != nil {
		log.Fatalf("Failed to create risk service: %v", err)
	}

	profileSvc, err := profile.New(&profile.Config{
		RecordRepo: repo,
		Locks:      locks,
		Catalog:    cat,
	})
	if err != nil {
		log.Fatalf("Failed to create profile service: %v", err)
	}

	backupSvc, err := backup.New(&backup.Config{
		RecordRepo: repo,
	})
	if err != nil {
		log.Fatalf("Failed to create backup service: %v", err)
	}

	// Get Discord token from environment
	discordToken := getEnv("DISCORD_TOKEN", "")
	if discordToken == "" {
		log.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:           discordToken,
		ApplicationID:   getEnv("APPLICATION_ID", ""),
		GuildID:         getEnv("GUILD_ID", ""),
		BackupChannelID: getEnv("BACKUP_CHANNEL_ID", ""),
		EconomyService:  economySvc,
		RiskService:     riskSvc,
		ProfileService:  profileSvc,
		BackupService:   backupSvc,
		Roller:          roller,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
