package backup

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/redbayou/outpost/internal/services/backup Service

// Service defines the interface for ledger backups
type Service interface {
	// BuildArchive snapshots every record into a zip archive, one JSON
	// document per record
	BuildArchive(ctx context.Context, input *BuildArchiveInput) (*BuildArchiveOutput, error)
}
