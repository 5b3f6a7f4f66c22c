package record

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/redbayou/outpost/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

// fullRecord builds a record with every field populated
func (s *RedisRepositoryTestSuite) fullRecord(id string) *models.Record {
	rec := models.New(id)
	rec.Identity = models.Identity{
		FirstName:  "Abigail",
		LastName:   "Marsh",
		Occupation: "Rancher",
	}
	rec.Cash = 120
	rec.Bank = 500
	rec.Dirty = 35
	rec.Inventory.Weapons["Cattleman Revolver"] = 1
	rec.Inventory.Mounts["Morgan"] = 2
	rec.Inventory.Permits["Hunting License"] = "valid"
	rec.Properties["Small House"] = "deeded"
	rec.Cooldowns["work"] = s.testNow.Unix()
	rec.CreatedAt = s.testNow
	rec.UpdatedAt = s.testNow
	return rec
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRecord() {
	rec := s.fullRecord("player-1")

	err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{
		Record: rec,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "player-1",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("player-1", retrieved.ID)
	s.Equal("Abigail", retrieved.Identity.FirstName)
	s.Equal(int64(120), retrieved.Cash)
	s.Equal(int64(500), retrieved.Bank)
	s.Equal(int64(35), retrieved.Dirty)
	s.Equal(1, retrieved.Inventory.Weapons["Cattleman Revolver"])
	s.Equal(2, retrieved.Inventory.Mounts["Morgan"])
	s.Equal("valid", retrieved.Inventory.Permits["Hunting License"])
	s.Equal("deeded", retrieved.Properties["Small House"])
	s.Equal(s.testNow.Unix(), retrieved.Cooldowns["work"])
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetRecordNotFound() {
	_, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "nobody",
	})
	s.Require().ErrorIs(err, ErrRecordNotFound)
}

func (s *RedisRepositoryTestSuite) TestMergeOnSavePreservesUnsetSubObjects() {
	err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{
		Record: s.fullRecord("player-1"),
	})
	s.Require().NoError(err)

	// A partial record: wallets set, everything else unset
	partial := &models.Record{
		ID:   "player-1",
		Cash: 75,
		Bank: 500,
	}

	err = s.repo.SaveRecord(context.Background(), &SaveRecordInput{
		Record: partial,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "player-1",
	})
	s.Require().NoError(err)

	// The wallets reflect the partial write
	s.Equal(int64(75), retrieved.Cash)
	s.Equal(int64(0), retrieved.Dirty)

	// Unset sub-objects survived from the earlier document
	s.Equal("Abigail", retrieved.Identity.FirstName)
	s.Equal(1, retrieved.Inventory.Weapons["Cattleman Revolver"])
	s.Equal("valid", retrieved.Inventory.Permits["Hunting License"])
	s.Equal("deeded", retrieved.Properties["Small House"])
	s.Equal(s.testNow.Unix(), retrieved.Cooldowns["work"])
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestIdentityOnlySavePreservesEconomy() {
	err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{
		Record: s.fullRecord("player-1"),
	})
	s.Require().NoError(err)

	// Load, change identity only, save the whole record back
	loaded, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "player-1",
	})
	s.Require().NoError(err)

	loaded.Identity.Occupation = "Bounty Hunter"
	err = s.repo.SaveRecord(context.Background(), &SaveRecordInput{
		Record: loaded,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "player-1",
	})
	s.Require().NoError(err)

	s.Equal("Bounty Hunter", retrieved.Identity.Occupation)
	s.Equal(int64(120), retrieved.Cash)
	s.Equal(int64(500), retrieved.Bank)
	s.Equal(int64(35), retrieved.Dirty)
	s.Equal(1, retrieved.Inventory.Weapons["Cattleman Revolver"])
}

func (s *RedisRepositoryTestSuite) TestDeleteRecordIsIdempotent() {
	// Deleting an absent record succeeds
	err := s.repo.DeleteRecord(context.Background(), &DeleteRecordInput{
		RecordID: "nobody",
	})
	s.Require().NoError(err)

	err = s.repo.SaveRecord(context.Background(), &SaveRecordInput{
		Record: s.fullRecord("player-1"),
	})
	s.Require().NoError(err)

	err = s.repo.DeleteRecord(context.Background(), &DeleteRecordInput{
		RecordID: "player-1",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "player-1",
	})
	s.Require().ErrorIs(err, ErrRecordNotFound)

	// The registry entry is gone too
	ids, err := s.repo.ListRecordIDs(context.Background(), &ListRecordIDsInput{})
	s.Require().NoError(err)
	s.Empty(ids.RecordIDs)

	// A second delete still succeeds
	err = s.repo.DeleteRecord(context.Background(), &DeleteRecordInput{
		RecordID: "player-1",
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestListRecordIDsSorted() {
	for _, id := range []string{"charlie", "alpha", "bravo"} {
		err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{
			Record: models.New(id),
		})
		s.Require().NoError(err)
	}

	ids, err := s.repo.ListRecordIDs(context.Background(), &ListRecordIDsInput{})
	s.Require().NoError(err)
	s.Equal([]string{"alpha", "bravo", "charlie"}, ids.RecordIDs)
}

func (s *RedisRepositoryTestSuite) TestSaveRecordsPersistsBoth() {
	a := models.New("sender")
	a.Cash = 50
	b := models.New("recipient")
	b.Cash = 250

	err := s.repo.SaveRecords(context.Background(), &SaveRecordsInput{
		Records: []*models.Record{a, b},
	})
	s.Require().NoError(err)

	sender, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "sender",
	})
	s.Require().NoError(err)
	s.Equal(int64(50), sender.Cash)

	recipient, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		RecordID: "recipient",
	})
	s.Require().NoError(err)
	s.Equal(int64(250), recipient.Cash)

	ids, err := s.repo.ListRecordIDs(context.Background(), &ListRecordIDsInput{})
	s.Require().NoError(err)
	s.Equal([]string{"recipient", "sender"}, ids.RecordIDs)
}

func (s *RedisRepositoryTestSuite) TestListRecordsInIDOrder() {
	for id, cash := range map[string]int64{"zed": 10, "ann": 30, "mel": 20} {
		rec := models.New(id)
		rec.Cash = cash
		err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{
			Record: rec,
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListRecords(context.Background(), &ListRecordsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 3)
	s.Equal("ann", out.Records[0].ID)
	s.Equal("mel", out.Records[1].ID)
	s.Equal("zed", out.Records[2].ID)
}
