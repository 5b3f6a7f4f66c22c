package record

import (
	"context"

	"github.com/redbayou/outpost/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/redbayou/outpost/internal/repositories/record Repository

// Repository defines the interface for player record persistence
type Repository interface {
	// GetRecord retrieves a record by player ID
	GetRecord(ctx context.Context, input *GetRecordInput) (*models.Record, error)

	// SaveRecord persists a record, merging previously persisted sub-objects
	// the caller did not set
	SaveRecord(ctx context.Context, input *SaveRecordInput) error

	// SaveRecords persists two records as one atomic unit, for transfers
	SaveRecords(ctx context.Context, input *SaveRecordsInput) error

	// DeleteRecord removes a record entirely; deleting an absent record succeeds
	DeleteRecord(ctx context.Context, input *DeleteRecordInput) error

	// ListRecordIDs enumerates all known player IDs in sorted order
	ListRecordIDs(ctx context.Context, input *ListRecordIDsInput) (*ListRecordIDsOutput, error)

	// ListRecords retrieves every persisted record, for ranking and backup
	ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error)
}
