package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redbayou/outpost/internal/common/clock"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// service implements the Service interface
type service struct {
	repo  recordRepo.Repository
	clock clock.Clock
}

// New creates a new backup service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RecordRepo == nil {
		return nil, errors.New("record repository cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &service{
		repo:  cfg.RecordRepo,
		clock: clk,
	}, nil
}

// BuildArchive writes every record as records/<id>.json inside a zip
func (s *service) BuildArchive(ctx context.Context, input *BuildArchiveInput) (*BuildArchiveOutput, error) {
	listOut, err := s.repo.ListRecords(ctx, &recordRepo.ListRecordsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, rec := range listOut.Records {
		doc, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal record %s: %w", rec.ID, err)
		}

		w, err := zw.Create(fmt.Sprintf("records/%s.json", rec.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to add record %s to archive: %w", rec.ID, err)
		}

		if _, err := w.Write(doc); err != nil {
			return nil, fmt.Errorf("failed to write record %s to archive: %w", rec.ID, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	name := fmt.Sprintf("ledger-backup-%s.zip", s.clock.Now().UTC().Format("2006-01-02-150405"))

	return &BuildArchiveOutput{
		Filename:    name,
		Data:        buf.Bytes(),
		RecordCount: len(listOut.Records),
	}, nil
}
