package economy

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/redbayou/outpost/internal/services/economy Service

// Service defines the interface for ledger operations on player records
type Service interface {
	// GetBalance returns the wallet balances of a record
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)

	// Credit adds a positive amount to one wallet
	Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error)

	// Debit removes a positive amount from one wallet. Administrative debits
	// may drive the balance negative.
	Debit(ctx context.Context, input *DebitInput) (*DebitOutput, error)

	// MoveWallet moves an amount between two wallets of the same record
	MoveWallet(ctx context.Context, input *MoveWalletInput) (*MoveWalletOutput, error)

	// SetItemCount stores an absolute count for a quantity-bearing item
	SetItemCount(ctx context.Context, input *SetItemCountInput) (*SetItemCountOutput, error)

	// AdjustItemCount applies a delta to a quantity-bearing item, clamping at zero
	AdjustItemCount(ctx context.Context, input *AdjustItemCountInput) (*AdjustItemCountOutput, error)

	// SetFlag adds or removes an entry of a presence-only collection
	SetFlag(ctx context.Context, input *SetFlagInput) (*SetFlagOutput, error)

	// TransferMoney moves money between the same-named wallet of two records
	TransferMoney(ctx context.Context, input *TransferMoneyInput) (*TransferMoneyOutput, error)

	// TransferItem moves inventory items or a presence-only entry between two records
	TransferItem(ctx context.Context, input *TransferItemInput) (*TransferItemOutput, error)

	// GetLeaderboard returns the wealth ranking over all records
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetRank returns one record's 1-based position in the wealth ranking
	GetRank(ctx context.Context, input *GetRankInput) (*GetRankOutput, error)

	// DeleteRecord removes a player record entirely
	DeleteRecord(ctx context.Context, input *DeleteRecordInput) (*DeleteRecordOutput, error)
}
