package economy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// newLiveService wires the service to a real repository over miniredis so
// load-mutate-save races are exercised end to end
func newLiveService(t *testing.T) (Service, recordRepo.Repository, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo, err := recordRepo.NewRedis(&recordRepo.Config{RedisClient: client})
	require.NoError(t, err)

	svc, err := New(&Config{
		RecordRepo: repo,
		Locks:      keymutex.New(),
	})
	require.NoError(t, err)

	cleanup := func() {
		client.Close()
		mr.Close()
	}
	return svc, repo, cleanup
}

func TestConcurrentDebitsOnlyOneSucceeds(t *testing.T) {
	svc, repo, cleanup := newLiveService(t)
	defer cleanup()

	ctx := context.Background()

	rec := models.New("player-1")
	rec.Cash = 100
	require.NoError(t, repo.SaveRecord(ctx, &recordRepo.SaveRecordInput{Record: rec}))

	// Two debits of 60 race; only one can fit in a balance of 100
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Debit(ctx, &DebitInput{
				RecordID: "player-1",
				Wallet:   models.WalletCash,
				Amount:   60,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 1, succeeded)

	out, err := svc.GetBalance(ctx, &GetBalanceInput{RecordID: "player-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(40), out.Cash)
}

func TestConcurrentCreditsAllLand(t *testing.T) {
	svc, _, cleanup := newLiveService(t)
	defer cleanup()

	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Credit(ctx, &CreditInput{
				RecordID: "player-1",
				Wallet:   models.WalletBank,
				Amount:   5,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	out, err := svc.GetBalance(ctx, &GetBalanceInput{RecordID: "player-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(workers*5), out.Bank)
}

// brokenPairSaveRepo delegates to a real repository but fails every
// multi-record save, standing in for a store outage mid-transfer
type brokenPairSaveRepo struct {
	recordRepo.Repository
	err error
}

func (r *brokenPairSaveRepo) SaveRecords(ctx context.Context, input *recordRepo.SaveRecordsInput) error {
	return r.err
}

func TestTransferMoneyStoreFailureLeavesBothSidesUntouched(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo, err := recordRepo.NewRedis(&recordRepo.Config{RedisClient: client})
	require.NoError(t, err)

	ctx := context.Background()

	alice := models.New("alice")
	alice.Cash = 200
	require.NoError(t, repo.SaveRecord(ctx, &recordRepo.SaveRecordInput{Record: alice}))

	bob := models.New("bob")
	bob.Cash = 30
	require.NoError(t, repo.SaveRecord(ctx, &recordRepo.SaveRecordInput{Record: bob}))

	storeDown := errors.New("store unavailable")
	svc, err := New(&Config{
		RecordRepo: &brokenPairSaveRepo{Repository: repo, err: storeDown},
		Locks:      keymutex.New(),
	})
	require.NoError(t, err)

	_, err = svc.TransferMoney(ctx, &TransferMoneyInput{
		SenderID:    "alice",
		RecipientID: "bob",
		Wallet:      models.WalletCash,
		Amount:      50,
	})
	require.ErrorIs(t, err, storeDown)

	// The failed save must not move money: both stored records keep their
	// pre-transfer balances, so nothing was created or destroyed
	storedAlice, err := repo.GetRecord(ctx, &recordRepo.GetRecordInput{RecordID: "alice"})
	require.NoError(t, err)
	storedBob, err := repo.GetRecord(ctx, &recordRepo.GetRecordInput{RecordID: "bob"})
	require.NoError(t, err)

	assert.Equal(t, int64(200), storedAlice.Cash)
	assert.Equal(t, int64(30), storedBob.Cash)
	assert.Equal(t, int64(230), storedAlice.Cash+storedBob.Cash)
}

func TestConcurrentOpposingTransfersConserveTotal(t *testing.T) {
	svc, repo, cleanup := newLiveService(t)
	defer cleanup()

	ctx := context.Background()

	for _, id := range []string{"alice", "bob"} {
		rec := models.New(id)
		rec.Cash = 500
		require.NoError(t, repo.SaveRecord(ctx, &recordRepo.SaveRecordInput{Record: rec}))
	}

	// Opposite-direction transfers stress the pair-lock ordering
	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := svc.TransferMoney(ctx, &TransferMoneyInput{
				SenderID:    "alice",
				RecipientID: "bob",
				Wallet:      models.WalletCash,
				Amount:      3,
			})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := svc.TransferMoney(ctx, &TransferMoneyInput{
				SenderID:    "bob",
				RecipientID: "alice",
				Wallet:      models.WalletCash,
				Amount:      2,
			})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	alice, err := svc.GetBalance(ctx, &GetBalanceInput{RecordID: "alice"})
	require.NoError(t, err)
	bob, err := svc.GetBalance(ctx, &GetBalanceInput{RecordID: "bob"})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), alice.Cash+bob.Cash)
	assert.Equal(t, int64(500-rounds*3+rounds*2), alice.Cash)
}
