package profile

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/redbayou/outpost/internal/services/profile Service

// Service defines the interface for character profile management
type Service interface {
	// GetProfile returns the stored record for a player, or
	// ErrRecordNotFound when none exists
	GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error)

	// GetOrCreateProfile returns the stored record for a player, creating a
	// default one if none exists
	GetOrCreateProfile(ctx context.Context, input *GetOrCreateProfileInput) (*GetOrCreateProfileOutput, error)

	// UpdateIdentity patches the identity fields that are set on the input,
	// leaving wallets, inventory and cooldowns untouched
	UpdateIdentity(ctx context.Context, input *UpdateIdentityInput) (*UpdateIdentityOutput, error)

	// EnrollCharacter resets a player to the starting kit: fresh identity,
	// starting weapons and bank grant
	EnrollCharacter(ctx context.Context, input *EnrollCharacterInput) (*EnrollCharacterOutput, error)
}
