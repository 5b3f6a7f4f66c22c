package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/redbayou/outpost/internal/catalog"
	"github.com/redbayou/outpost/internal/common/clock"
	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// service implements the Service interface
type service struct {
	repo    recordRepo.Repository
	locks   *keymutex.KeyedMutex
	catalog *catalog.Catalog
	clock   clock.Clock
}

// New creates a new profile service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RecordRepo == nil {
		return nil, errors.New("record repository cannot be nil")
	}

	if cfg.Locks == nil {
		return nil, errors.New("keyed mutex cannot be nil")
	}

	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &service{
		repo:    cfg.RecordRepo,
		locks:   cfg.Locks,
		catalog: cat,
		clock:   clk,
	}, nil
}

// GetProfile returns the stored record without creating one
func (s *service) GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	rec, err := s.repo.GetRecord(ctx, &recordRepo.GetRecordInput{RecordID: input.RecordID})
	if err != nil {
		if errors.Is(err, recordRepo.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load record %s: %w", input.RecordID, err)
	}

	return &GetProfileOutput{Record: rec}, nil
}

// GetOrCreateProfile returns the stored record, materializing and persisting
// a default one on first sight of the player
func (s *service) GetOrCreateProfile(ctx context.Context, input *GetOrCreateProfileInput) (*GetOrCreateProfileOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.repo.GetRecord(ctx, &recordRepo.GetRecordInput{RecordID: input.RecordID})
	if err == nil {
		return &GetOrCreateProfileOutput{Record: rec}, nil
	}
	if !errors.Is(err, recordRepo.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load record %s: %w", input.RecordID, err)
	}

	rec = models.New(input.RecordID)
	rec.CreatedAt = s.clock.Now()

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &GetOrCreateProfileOutput{Record: rec, Created: true}, nil
}

// UpdateIdentity patches only the identity fields set on the input. Wallets,
// inventory, holdings and cooldowns ride through unchanged.
func (s *service) UpdateIdentity(ctx context.Context, input *UpdateIdentityInput) (*UpdateIdentityOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.loadOrInit(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	applyPatch(&rec.Identity, input)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &UpdateIdentityOutput{Record: rec}, nil
}

// EnrollCharacter discards any existing state and writes a fresh record with
// the starting kit from the catalog
func (s *service) EnrollCharacter(ctx context.Context, input *EnrollCharacterInput) (*EnrollCharacterOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec := models.New(input.RecordID)
	rec.Identity = input.Identity
	rec.Bank = s.catalog.StartingBank
	for name, count := range s.catalog.StartingWeapons {
		rec.Inventory.Weapons[name] = count
	}
	rec.CreatedAt = s.clock.Now()

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &EnrollCharacterOutput{Record: rec}, nil
}

// applyPatch copies every set field of the input onto the identity
func applyPatch(id *models.Identity, input *UpdateIdentityInput) {
	if input.FirstName != nil {
		id.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		id.LastName = *input.LastName
	}
	if input.Titles != nil {
		id.Titles = *input.Titles
	}
	if input.Gender != nil {
		id.Gender = *input.Gender
	}
	if input.BirthDate != nil {
		id.BirthDate = *input.BirthDate
	}
	if input.BirthPlace != nil {
		id.BirthPlace = *input.BirthPlace
	}
	if input.Nationality != nil {
		id.Nationality = *input.Nationality
	}
	if input.Occupation != nil {
		id.Occupation = *input.Occupation
	}
}

// loadOrInit returns the stored record for id or a fresh default
func (s *service) loadOrInit(ctx context.Context, id string) (*models.Record, error) {
	rec, err := s.repo.GetRecord(ctx, &recordRepo.GetRecordInput{RecordID: id})
	if err != nil {
		if errors.Is(err, recordRepo.ErrRecordNotFound) {
			rec = models.New(id)
			rec.CreatedAt = s.clock.Now()
			return rec, nil
		}
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}

	return rec, nil
}

// save stamps and persists a record
func (s *service) save(ctx context.Context, rec *models.Record) error {
	rec.UpdatedAt = s.clock.Now()
	return s.repo.SaveRecord(ctx, &recordRepo.SaveRecordInput{Record: rec})
}
