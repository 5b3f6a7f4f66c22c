package economy

import (
	"github.com/redbayou/outpost/internal/common/clock"
	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/common/uuid"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// DefaultPageSize is the leaderboard window used when the caller does not
// choose one
const DefaultPageSize = 10

// Config holds configuration for the economy service
type Config struct {
	// Repository dependencies
	RecordRepo recordRepo.Repository

	// Locks serializes load-mutate-save cycles per record. The same instance
	// must be shared with every service that mutates records.
	Locks *keymutex.KeyedMutex

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// GetBalanceInput contains parameters for reading wallet balances
type GetBalanceInput struct {
	RecordID string
}

// GetBalanceOutput contains a record's wallet balances
type GetBalanceOutput struct {
	Cash  int64
	Bank  int64
	Dirty int64
	Total int64
}

// CreditInput contains parameters for crediting a wallet
type CreditInput struct {
	RecordID string
	Wallet   models.Wallet
	Amount   int64
}

// CreditOutput contains the result of a credit
type CreditOutput struct {
	Balance int64
	Total   int64
}

// DebitInput contains parameters for debiting a wallet
type DebitInput struct {
	RecordID string
	Wallet   models.Wallet
	Amount   int64

	// AllowNegative permits the balance to go below zero (administrative
	// debits only)
	AllowNegative bool
}

// DebitOutput contains the result of a debit
type DebitOutput struct {
	Balance int64
	Total   int64
}

// MoveWalletInput contains parameters for moving money between two wallets
// of one record
type MoveWalletInput struct {
	RecordID string
	From     models.Wallet
	To       models.Wallet
	Amount   int64

	// All moves the entire source balance, ignoring Amount
	All bool
}

// MoveWalletOutput contains the post-move balances
type MoveWalletOutput struct {
	Moved       int64
	FromBalance int64
	ToBalance   int64
}

// SetItemCountInput contains parameters for setting an absolute item count
type SetItemCountInput struct {
	RecordID   string
	Collection models.Collection
	Item       string

	// Count is clamped at zero; zero deletes the item
	Count int
}

// SetItemCountOutput contains the stored count after the operation
type SetItemCountOutput struct {
	Count int
}

// AdjustItemCountInput contains parameters for applying a delta to an item count
type AdjustItemCountInput struct {
	RecordID   string
	Collection models.Collection
	Item       string
	Delta      int
}

// AdjustItemCountOutput contains the counts around the adjustment
type AdjustItemCountOutput struct {
	PreviousCount int
	Count         int
}

// SetFlagInput contains parameters for adding or removing a presence-only entry
type SetFlagInput struct {
	RecordID   string
	Collection models.Collection
	Item       string
	Present    bool
}

// SetFlagOutput contains the result of a flag change
type SetFlagOutput struct {
	// Existed indicates whether the entry was present before the change
	Existed bool
}

// TransferMoneyInput contains parameters for a two-record currency transfer
type TransferMoneyInput struct {
	SenderID    string
	RecipientID string
	Wallet      models.Wallet
	Amount      int64
}

// TransferMoneyOutput contains the post-transfer balances on both sides
type TransferMoneyOutput struct {
	ReceiptID        string
	SenderBalance    int64
	RecipientBalance int64
}

// TransferItemInput contains parameters for a two-record item transfer
type TransferItemInput struct {
	SenderID    string
	RecipientID string
	Collection  models.Collection
	Item        string

	// Quantity applies to counted collections only; presence-only entries
	// always move as a whole
	Quantity int

	// All moves every available unit, ignoring Quantity
	All bool
}

// TransferItemOutput contains the result of an item transfer
type TransferItemOutput struct {
	ReceiptID       string
	Moved           int
	SenderRemaining int
}

// LeaderboardEntry is one row of the wealth ranking
type LeaderboardEntry struct {
	Rank     int
	RecordID string
	Total    int64
}

// GetLeaderboardInput contains parameters for the wealth ranking
type GetLeaderboardInput struct {
	// Page is the zero-based window index
	Page int

	// PageSize is the window size; zero or negative returns the full ordering
	PageSize int
}

// GetLeaderboardOutput contains one window of the wealth ranking
type GetLeaderboardOutput struct {
	Entries      []LeaderboardEntry
	Page         int
	PageCount    int
	TotalEntries int
}

// GetRankInput contains parameters for a single record's rank
type GetRankInput struct {
	RecordID string
}

// GetRankOutput contains a record's position in the wealth ranking
type GetRankOutput struct {
	Rank         int
	Total        int64
	TotalEntries int
}

// DeleteRecordInput contains parameters for removing a record
type DeleteRecordInput struct {
	RecordID string
}

// DeleteRecordOutput contains the result of a record deletion
type DeleteRecordOutput struct{}
