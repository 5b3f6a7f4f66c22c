package record

import "github.com/redbayou/outpost/internal/models"

// GetRecordInput contains parameters for retrieving a record
type GetRecordInput struct {
	RecordID string
}

// SaveRecordInput contains parameters for saving a record
type SaveRecordInput struct {
	Record *models.Record
}

// SaveRecordsInput contains parameters for saving two records atomically
type SaveRecordsInput struct {
	Records []*models.Record
}

// DeleteRecordInput contains parameters for deleting a record
type DeleteRecordInput struct {
	RecordID string
}

// ListRecordIDsInput contains parameters for enumerating record IDs
type ListRecordIDsInput struct{}

// ListRecordIDsOutput contains the sorted list of known record IDs
type ListRecordIDsOutput struct {
	RecordIDs []string
}

// ListRecordsInput contains parameters for retrieving all records
type ListRecordsInput struct{}

// ListRecordsOutput contains every persisted record in ID order
type ListRecordsOutput struct {
	Records []*models.Record
}
