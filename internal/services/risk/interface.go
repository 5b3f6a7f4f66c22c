package risk

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/redbayou/outpost/internal/services/risk Service

// Service defines the interface for the cooldown-gated risk actions
type Service interface {
	// Heist robs a target category for a draw of dirty money; one draw in
	// four lands as a loss instead
	Heist(ctx context.Context, input *HeistInput) (*HeistOutput, error)

	// Rob takes a random percentage of a victim's cash as dirty money; one
	// attempt in three backfires on the robber
	Rob(ctx context.Context, input *RobInput) (*RobOutput, error)

	// Launder converts dirty money to cash at a random rate; one attempt in
	// three forfeits the whole dirty balance
	Launder(ctx context.Context, input *LaunderInput) (*LaunderOutput, error)

	// Work credits an honest wage to the bank
	Work(ctx context.Context, input *WorkInput) (*WorkOutput, error)
}
