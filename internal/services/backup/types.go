package backup

import (
	"github.com/redbayou/outpost/internal/common/clock"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// Config holds configuration for the backup service
type Config struct {
	// Repository dependencies
	RecordRepo recordRepo.Repository

	// Service dependencies
	Clock clock.Clock
}

// BuildArchiveInput contains parameters for building an archive
type BuildArchiveInput struct{}

// BuildArchiveOutput contains the finished archive
type BuildArchiveOutput struct {
	// Filename is a timestamped name suitable for an attachment
	Filename string

	// Data is the zip archive bytes
	Data []byte

	// RecordCount is how many records the archive holds
	RecordCount int
}
