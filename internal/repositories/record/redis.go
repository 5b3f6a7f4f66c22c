package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redbayou/outpost/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix = "record:"

	// registryKey is the set of all known record IDs
	registryKey = "record_ids"
)

// ErrRecordNotFound is returned when a record is not found
var ErrRecordNotFound = errors.New("record not found")

// Config holds configuration for the Redis record repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed record repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetRecord retrieves a record by player ID from Redis
func (r *redisRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*models.Record, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, input.RecordID)
	recordJSON, err := r.client.Get(ctx, recordKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	var rec models.Record
	if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	// Older documents may predate some sub-maps
	rec.EnsureMaps()

	return &rec, nil
}

// SaveRecord persists a record to Redis. Sub-objects the caller left unset
// (nil maps, zero identity) are inherited from the previously persisted
// record, so a partial write never clobbers unrelated fields. The write
// itself is a single SET: a reader observes either the old document or the
// new one, never a torn mix.
func (r *redisRepository) SaveRecord(ctx context.Context, input *SaveRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	rec := input.Record
	if rec.ID == "" {
		return errors.New("record ID cannot be empty")
	}

	if err := r.mergeExisting(ctx, rec); err != nil {
		return err
	}

	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := r.client.Pipeline()
	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, rec.ID)
	pipe.Set(ctx, recordKey, recordJSON, 0)
	pipe.SAdd(ctx, registryKey, rec.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// SaveRecords persists two (or more) records in one Redis transaction, so a
// transfer's sender and recipient sides become visible together or not at all
func (r *redisRepository) SaveRecords(ctx context.Context, input *SaveRecordsInput) error {
	if input == nil || len(input.Records) == 0 {
		return errors.New("input and records cannot be empty")
	}

	pipe := r.client.TxPipeline()
	for _, rec := range input.Records {
		if rec == nil || rec.ID == "" {
			return errors.New("record and record ID cannot be empty")
		}

		if err := r.mergeExisting(ctx, rec); err != nil {
			return err
		}

		recordJSON, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", rec.ID, err)
		}

		recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, rec.ID)
		pipe.Set(ctx, recordKey, recordJSON, 0)
		pipe.SAdd(ctx, registryKey, rec.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	return nil
}

// DeleteRecord removes a record and its registry entry; absent records are
// deleted successfully
func (r *redisRepository) DeleteRecord(ctx context.Context, input *DeleteRecordInput) error {
	if input == nil || input.RecordID == "" {
		return errors.New("input and record ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, input.RecordID)
	pipe.Del(ctx, recordKey)
	pipe.SRem(ctx, registryKey, input.RecordID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return nil
}

// ListRecordIDs enumerates all known record IDs. IDs are sorted so the scan
// order seen by ranking is deterministic.
func (r *redisRepository) ListRecordIDs(ctx context.Context, input *ListRecordIDsInput) (*ListRecordIDsOutput, error) {
	ids, err := r.client.SMembers(ctx, registryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list record IDs: %w", err)
	}

	sort.Strings(ids)

	return &ListRecordIDsOutput{
		RecordIDs: ids,
	}, nil
}

// ListRecords retrieves every persisted record in ID order using a pipeline
func (r *redisRepository) ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error) {
	idsOutput, err := r.ListRecordIDs(ctx, &ListRecordIDsInput{})
	if err != nil {
		return nil, err
	}

	if len(idsOutput.RecordIDs) == 0 {
		return &ListRecordsOutput{
			Records: []*models.Record{},
		}, nil
	}

	pipe := r.client.Pipeline()
	recordCommands := make([]*redis.StringCmd, 0, len(idsOutput.RecordIDs))

	for _, id := range idsOutput.RecordIDs {
		recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, id)
		recordCommands = append(recordCommands, pipe.Get(ctx, recordKey))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	records := make([]*models.Record, 0, len(idsOutput.RecordIDs))
	for i, cmd := range recordCommands {
		recordJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Record was deleted between listing the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get record %s: %w", idsOutput.RecordIDs[i], err)
		}

		var rec models.Record
		if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %s: %w", idsOutput.RecordIDs[i], err)
		}

		rec.EnsureMaps()
		records = append(records, &rec)
	}

	return &ListRecordsOutput{
		Records: records,
	}, nil
}

// mergeExisting fills sub-objects the caller did not set from the previously
// persisted document. Wallet balances always ride along with the caller's
// record: every engine operation loads before mutating, so the merge only
// has to protect partial records such as identity-only updates.
func (r *redisRepository) mergeExisting(ctx context.Context, rec *models.Record) error {
	existing, err := r.GetRecord(ctx, &GetRecordInput{RecordID: rec.ID})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			rec.EnsureMaps()
			return nil
		}
		return err
	}

	if rec.Inventory.Weapons == nil {
		rec.Inventory.Weapons = existing.Inventory.Weapons
	}
	if rec.Inventory.Mounts == nil {
		rec.Inventory.Mounts = existing.Inventory.Mounts
	}
	if rec.Inventory.Permits == nil {
		rec.Inventory.Permits = existing.Inventory.Permits
	}
	if rec.Properties == nil {
		rec.Properties = existing.Properties
	}
	if rec.Cooldowns == nil {
		rec.Cooldowns = existing.Cooldowns
	}
	if rec.Identity.IsZero() {
		rec.Identity = existing.Identity
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = existing.CreatedAt
	}

	return nil
}
