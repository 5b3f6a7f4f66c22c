package economy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redbayou/outpost/internal/common/clock"
	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/common/uuid"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// service implements the Service interface
type service struct {
	repo  recordRepo.Repository
	locks *keymutex.KeyedMutex
	clock clock.Clock
	idGen uuid.UUID
}

// New creates a new economy service
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

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	idGen := cfg.UUIDGenerator
	if idGen == nil {
		idGen = uuid.New()
	}

	return &service{
		repo:  cfg.RecordRepo,
		locks: cfg.Locks,
		clock: clk,
		idGen: idGen,
	}, nil
}

// loadOrInit returns the stored record for id, or a fresh default when the
// player has never been persisted. First access materializes a record; no
// explicit create step exists.
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

// save stamps and persists a single record
func (s *service) save(ctx context.Context, rec *models.Record) error {
	rec.UpdatedAt = s.clock.Now()
	return s.repo.SaveRecord(ctx, &recordRepo.SaveRecordInput{Record: rec})
}

// savePair stamps and persists two records as one atomic unit
func (s *service) savePair(ctx context.Context, a, b *models.Record) error {
	now := s.clock.Now()
	a.UpdatedAt = now
	b.UpdatedAt = now
	return s.repo.SaveRecords(ctx, &recordRepo.SaveRecordsInput{
		Records: []*models.Record{a, b},
	})
}

// GetBalance returns the wallet balances of a record
func (s *service) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	rec, err := s.repo.GetRecord(ctx, &recordRepo.GetRecordInput{RecordID: input.RecordID})
	if err != nil {
		if errors.Is(err, recordRepo.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &GetBalanceOutput{
		Cash:  rec.Cash,
		Bank:  rec.Bank,
		Dirty: rec.Dirty,
		Total: rec.TotalWealth(),
	}, nil
}

// Credit adds a positive amount to one wallet
func (s *service) Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	if !input.Wallet.Valid() {
		return nil, ErrInvalidWallet
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.loadOrInit(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	rec.SetBalance(input.Wallet, rec.Balance(input.Wallet)+input.Amount)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &CreditOutput{
		Balance: rec.Balance(input.Wallet),
		Total:   rec.TotalWealth(),
	}, nil
}

// Debit removes a positive amount from one wallet. Player-initiated debits
// fail when the balance is insufficient; administrative debits may drive the
// balance negative.
func (s *service) Debit(ctx context.Context, input *DebitInput) (*DebitOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	if !input.Wallet.Valid() {
		return nil, ErrInvalidWallet
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.loadOrInit(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	balance := rec.Balance(input.Wallet)
	if !input.AllowNegative && input.Amount > balance {
		return nil, ErrInsufficientFunds
	}

	rec.SetBalance(input.Wallet, balance-input.Amount)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &DebitOutput{
		Balance: rec.Balance(input.Wallet),
		Total:   rec.TotalWealth(),
	}, nil
}

// MoveWallet moves an amount between two wallets of the same record
func (s *service) MoveWallet(ctx context.Context, input *MoveWalletInput) (*MoveWalletOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	if !input.From.Valid() || !input.To.Valid() || input.From == input.To {
		return nil, ErrInvalidWallet
	}

	if !input.All && input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.loadOrInit(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	available := rec.Balance(input.From)
	amount := input.Amount
	if input.All {
		amount = available
	}

	if amount <= 0 || amount > available {
		return nil, ErrInsufficientFunds
	}

	rec.SetBalance(input.From, available-amount)
	rec.SetBalance(input.To, rec.Balance(input.To)+amount)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &MoveWalletOutput{
		Moved:       amount,
		FromBalance: rec.Balance(input.From),
		ToBalance:   rec.Balance(input.To),
	}, nil
}

// SetItemCount stores an absolute count for a quantity-bearing item.
// Counts at or below zero delete the key; a stored count is always positive.
func (s *service) SetItemCount(ctx context.Context, input *SetItemCountInput) (*SetItemCountOutput, error) {
	if input == nil || input.RecordID == "" || input.Item == "" {
		return nil, errors.New("input, record ID and item cannot be empty")
	}

	if !input.Collection.Counted() {
		return nil, ErrInvalidCollection
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.loadOrInit(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	count := input.Count
	if count < 0 {
		count = 0
	}

	setItemCount(rec.CountMap(input.Collection), input.Item, count)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &SetItemCountOutput{
		Count: count,
	}, nil
}

// AdjustItemCount applies a delta to a quantity-bearing item, clamping at zero
func (s *service) AdjustItemCount(ctx context.Context, input *AdjustItemCountInput) (*AdjustItemCountOutput, error) {
	if input == nil || input.RecordID == "" || input.Item == "" {
		return nil, errors.New("input, record ID and item cannot be empty")
	}

	if !input.Collection.Counted() {
		return nil, ErrInvalidCollection
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.loadOrInit(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	items := rec.CountMap(input.Collection)
	previous := items[input.Item]
	count := previous + input.Delta
	if count < 0 {
		count = 0
	}

	setItemCount(items, input.Item, count)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &AdjustItemCountOutput{
		PreviousCount: previous,
		Count:         count,
	}, nil
}

// SetFlag adds or removes an entry of a presence-only collection
func (s *service) SetFlag(ctx context.Context, input *SetFlagInput) (*SetFlagOutput, error) {
	if input == nil || input.RecordID == "" || input.Item == "" {
		return nil, errors.New("input, record ID and item cannot be empty")
	}

	if !input.Collection.Valid() || input.Collection.Counted() {
		return nil, ErrInvalidCollection
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	rec, err := s.loadOrInit(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	flags := rec.FlagMap(input.Collection)
	_, existed := flags[input.Item]

	if input.Present {
		flags[input.Item] = input.Collection.StatusLabel()
	} else {
		delete(flags, input.Item)
	}

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &SetFlagOutput{
		Existed: existed,
	}, nil
}

// TransferMoney moves money between the same-named wallet of two records.
// Both sides are persisted in one atomic unit while both per-record locks are
// held, so the moved amount is conserved even if the store fails mid-way.
func (s *service) TransferMoney(ctx context.Context, input *TransferMoneyInput) (*TransferMoneyOutput, error) {
	if input == nil || input.SenderID == "" || input.RecipientID == "" {
		return nil, errors.New("input, sender ID and recipient ID cannot be empty")
	}

	if input.SenderID == input.RecipientID {
		return nil, ErrSelfTarget
	}

	if !input.Wallet.Valid() {
		return nil, ErrInvalidWallet
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.locks.LockPair(input.SenderID, input.RecipientID)
	defer s.locks.UnlockPair(input.SenderID, input.RecipientID)

	sender, err := s.loadOrInit(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}

	recipient, err := s.loadOrInit(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}

	if input.Amount > sender.Balance(input.Wallet) {
		return nil, ErrInsufficientFunds
	}

	sender.SetBalance(input.Wallet, sender.Balance(input.Wallet)-input.Amount)
	recipient.SetBalance(input.Wallet, recipient.Balance(input.Wallet)+input.Amount)

	if err := s.savePair(ctx, sender, recipient); err != nil {
		return nil, err
	}

	return &TransferMoneyOutput{
		ReceiptID:        s.idGen.NewUUID(),
		SenderBalance:    sender.Balance(input.Wallet),
		RecipientBalance: recipient.Balance(input.Wallet),
	}, nil
}

// TransferItem moves inventory items or a presence-only entry between two
// records. Counted collections move min(requested, available); presence-only
// entries move whole, keeping their stored status label.
func (s *service) TransferItem(ctx context.Context, input *TransferItemInput) (*TransferItemOutput, error) {
	if input == nil || input.SenderID == "" || input.RecipientID == "" || input.Item == "" {
		return nil, errors.New("input, sender ID, recipient ID and item cannot be empty")
	}

	if input.SenderID == input.RecipientID {
		return nil, ErrSelfTarget
	}

	if !input.Collection.Valid() {
		return nil, ErrInvalidCollection
	}

	s.locks.LockPair(input.SenderID, input.RecipientID)
	defer s.locks.UnlockPair(input.SenderID, input.RecipientID)

	sender, err := s.loadOrInit(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}

	recipient, err := s.loadOrInit(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}

	var moved, remaining int

	if input.Collection.Counted() {
		source := sender.CountMap(input.Collection)
		available := source[input.Item]
		if available <= 0 {
			return nil, ErrItemNotHeld
		}

		quantity := input.Quantity
		if input.All {
			quantity = available
		}
		if quantity <= 0 {
			return nil, ErrInvalidAmount
		}
		if quantity > available {
			quantity = available
		}

		setItemCount(source, input.Item, available-quantity)
		dest := recipient.CountMap(input.Collection)
		dest[input.Item] += quantity

		moved = quantity
		remaining = source[input.Item]
	} else {
		source := sender.FlagMap(input.Collection)
		label, held := source[input.Item]
		if !held {
			return nil, ErrItemNotHeld
		}

		dest := recipient.FlagMap(input.Collection)
		if _, already := dest[input.Item]; already {
			return nil, ErrItemAlreadyHeld
		}

		// The status label travels with the entry
		dest[input.Item] = label
		delete(source, input.Item)

		moved = 1
	}

	if err := s.savePair(ctx, sender, recipient); err != nil {
		return nil, err
	}

	return &TransferItemOutput{
		ReceiptID:       s.idGen.NewUUID(),
		Moved:           moved,
		SenderRemaining: remaining,
	}, nil
}

// GetLeaderboard returns the wealth ranking over all records. The sort is
// stable and descends by total wealth; ties keep their scan order. Page
// slicing never re-sorts.
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil {
		input = &GetLeaderboardInput{}
	}

	entries, err := s.rankAll(ctx)
	if err != nil {
		return nil, err
	}

	total := len(entries)
	pageSize := input.PageSize
	if pageSize <= 0 {
		return &GetLeaderboardOutput{
			Entries:      entries,
			Page:         0,
			PageCount:    1,
			TotalEntries: total,
		}, nil
	}

	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	page := input.Page
	if page < 0 {
		page = 0
	}
	if page >= pageCount {
		page = pageCount - 1
	}

	start := page * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &GetLeaderboardOutput{
		Entries:      entries[start:end],
		Page:         page,
		PageCount:    pageCount,
		TotalEntries: total,
	}, nil
}

// GetRank returns one record's 1-based position in the wealth ranking
func (s *service) GetRank(ctx context.Context, input *GetRankInput) (*GetRankOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	entries, err := s.rankAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.RecordID == input.RecordID {
			return &GetRankOutput{
				Rank:         entry.Rank,
				Total:        entry.Total,
				TotalEntries: len(entries),
			}, nil
		}
	}

	return nil, ErrRecordNotFound
}

// DeleteRecord removes a player record entirely. Invoked when a member
// leaves the community; deleting an absent record succeeds.
func (s *service) DeleteRecord(ctx context.Context, input *DeleteRecordInput) (*DeleteRecordOutput, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	s.locks.Lock(input.RecordID)
	defer s.locks.Unlock(input.RecordID)

	err := s.repo.DeleteRecord(ctx, &recordRepo.DeleteRecordInput{RecordID: input.RecordID})
	if err != nil {
		return nil, err
	}

	return &DeleteRecordOutput{}, nil
}

// rankAll scans every record and orders them by descending total wealth.
// The repository returns records in sorted ID order, so the stable sort
// gives ties a deterministic relative order.
func (s *service) rankAll(ctx context.Context) ([]LeaderboardEntry, error) {
	listOutput, err := s.repo.ListRecords(ctx, &recordRepo.ListRecordsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(listOutput.Records))
	for _, rec := range listOutput.Records {
		entries = append(entries, LeaderboardEntry{
			RecordID: rec.ID,
			Total:    rec.TotalWealth(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// setItemCount stores count for item, deleting the key at zero or below so a
// quantity-bearing map never holds a non-positive value
func setItemCount(items map[string]int, item string, count int) {
	if count <= 0 {
		delete(items, item)
		return
	}
	items[item] = count
}
