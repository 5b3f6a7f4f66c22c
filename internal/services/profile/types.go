package profile

import (
	"github.com/redbayou/outpost/internal/catalog"
	"github.com/redbayou/outpost/internal/common/clock"
	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// Config holds configuration for the profile service
type Config struct {
	// Repository dependencies
	RecordRepo recordRepo.Repository

	// Locks serializes load-mutate-save cycles per record; must be the same
	// instance the economy and risk services use
	Locks *keymutex.KeyedMutex

	// Service dependencies
	Catalog *catalog.Catalog
	Clock   clock.Clock
}

// GetProfileInput contains parameters for looking up a profile
type GetProfileInput struct {
	RecordID string
}

// GetProfileOutput contains the looked-up record
type GetProfileOutput struct {
	Record *models.Record
}

// GetOrCreateProfileInput contains parameters for a get-or-create lookup
type GetOrCreateProfileInput struct {
	RecordID string
}

// GetOrCreateProfileOutput contains the record and whether it was created
type GetOrCreateProfileOutput struct {
	Record  *models.Record
	Created bool
}

// UpdateIdentityInput patches identity fields. Nil pointers leave the stored
// value untouched; a pointer to the empty string clears it.
type UpdateIdentityInput struct {
	RecordID string

	FirstName   *string
	LastName    *string
	Titles      *string
	Gender      *string
	BirthDate   *string
	BirthPlace  *string
	Nationality *string
	Occupation  *string
}

// UpdateIdentityOutput contains the record after the patch
type UpdateIdentityOutput struct {
	Record *models.Record
}

// EnrollCharacterInput contains parameters for enrolling a character
type EnrollCharacterInput struct {
	RecordID string

	// Identity is the full identity written to the fresh record
	Identity models.Identity
}

// EnrollCharacterOutput contains the freshly enrolled record
type EnrollCharacterOutput struct {
	Record *models.Record
}
