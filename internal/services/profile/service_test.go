package profile

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/redbayou/outpost/internal/catalog"
	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
)

// The suite runs against a real repository over miniredis: enrollment and
// identity patches interact with the store's merge-on-save behavior, and that
// interaction is what these tests pin down.
type ProfileServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    recordRepo.Repository
	service Service
	ctx     context.Context
}

func (s *ProfileServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := recordRepo.NewRedis(&recordRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	svc, err := New(&Config{
		RecordRepo: s.repo,
		Locks:      keymutex.New(),
		Catalog:    catalog.Default(),
	})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
}

func (s *ProfileServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

// seasoned persists a record with money, items and a cooldown already on it
func (s *ProfileServiceTestSuite) seasoned(id string) *models.Record {
	rec := models.New(id)
	rec.Identity = models.Identity{FirstName: "Abigail", LastName: "Marsh"}
	rec.Cash = 120
	rec.Bank = 900
	rec.Dirty = 45
	rec.Inventory.Weapons["Sawed-Off Shotgun"] = 2
	rec.Inventory.Permits["Hunting License"] = "valid"
	rec.Properties["Small House"] = "deeded"
	rec.Cooldowns["work"] = time.Now().Unix()
	s.Require().NoError(s.repo.SaveRecord(s.ctx, &recordRepo.SaveRecordInput{Record: rec}))
	return rec
}

func (s *ProfileServiceTestSuite) TestGetProfileDoesNotCreate() {
	_, err := s.service.GetProfile(s.ctx, &GetProfileInput{RecordID: "nobody"})
	s.Require().ErrorIs(err, ErrRecordNotFound)

	_, err = s.repo.GetRecord(s.ctx, &recordRepo.GetRecordInput{RecordID: "nobody"})
	s.Require().ErrorIs(err, recordRepo.ErrRecordNotFound)
}

func (s *ProfileServiceTestSuite) TestGetOrCreateProfileMaterializes() {
	out, err := s.service.GetOrCreateProfile(s.ctx, &GetOrCreateProfileInput{
		RecordID: "newcomer",
	})
	s.Require().NoError(err)

	s.True(out.Created)
	s.Equal("newcomer", out.Record.ID)
	s.Zero(out.Record.Cash)

	// The default record was persisted, not just returned
	stored, err := s.repo.GetRecord(s.ctx, &recordRepo.GetRecordInput{RecordID: "newcomer"})
	s.Require().NoError(err)
	s.Equal("newcomer", stored.ID)

	again, err := s.service.GetOrCreateProfile(s.ctx, &GetOrCreateProfileInput{
		RecordID: "newcomer",
	})
	s.Require().NoError(err)
	s.False(again.Created)
}

func (s *ProfileServiceTestSuite) TestUpdateIdentityPatchesOnlySetFields() {
	s.seasoned("player-1")

	occupation := "Bounty Hunter"
	out, err := s.service.UpdateIdentity(s.ctx, &UpdateIdentityInput{
		RecordID:   "player-1",
		Occupation: &occupation,
	})
	s.Require().NoError(err)

	s.Equal("Bounty Hunter", out.Record.Identity.Occupation)
	s.Equal("Abigail", out.Record.Identity.FirstName)
	s.Equal("Marsh", out.Record.Identity.LastName)
}

func (s *ProfileServiceTestSuite) TestUpdateIdentityClearsWithEmptyPointer() {
	s.seasoned("player-1")

	empty := ""
	out, err := s.service.UpdateIdentity(s.ctx, &UpdateIdentityInput{
		RecordID: "player-1",
		LastName: &empty,
	})
	s.Require().NoError(err)

	s.Equal("", out.Record.Identity.LastName)
	s.Equal("Abigail", out.Record.Identity.FirstName)
}

func (s *ProfileServiceTestSuite) TestUpdateIdentityPreservesEconomy() {
	s.seasoned("player-1")

	firstName := "Dutch"
	_, err := s.service.UpdateIdentity(s.ctx, &UpdateIdentityInput{
		RecordID:  "player-1",
		FirstName: &firstName,
	})
	s.Require().NoError(err)

	stored, err := s.repo.GetRecord(s.ctx, &recordRepo.GetRecordInput{RecordID: "player-1"})
	s.Require().NoError(err)

	s.Equal("Dutch", stored.Identity.FirstName)
	s.Equal(int64(120), stored.Cash)
	s.Equal(int64(900), stored.Bank)
	s.Equal(int64(45), stored.Dirty)
	s.Equal(2, stored.Inventory.Weapons["Sawed-Off Shotgun"])
	s.Equal("valid", stored.Inventory.Permits["Hunting License"])
	s.Equal("deeded", stored.Properties["Small House"])
	s.Contains(stored.Cooldowns, "work")
}

func (s *ProfileServiceTestSuite) TestEnrollCharacterGrantsStartingKit() {
	out, err := s.service.EnrollCharacter(s.ctx, &EnrollCharacterInput{
		RecordID: "newcomer",
		Identity: models.Identity{FirstName: "Sadie", LastName: "Adler"},
	})
	s.Require().NoError(err)

	s.Equal(int64(500), out.Record.Bank)
	s.Zero(out.Record.Cash)
	s.Equal(1, out.Record.Inventory.Weapons["Cattleman Revolver"])
	s.Equal(1, out.Record.Inventory.Weapons["Hunting Knife"])
	s.Equal("Sadie", out.Record.Identity.FirstName)
}

func (s *ProfileServiceTestSuite) TestEnrollCharacterDiscardsOldState() {
	s.seasoned("player-1")

	_, err := s.service.EnrollCharacter(s.ctx, &EnrollCharacterInput{
		RecordID: "player-1",
		Identity: models.Identity{FirstName: "Sadie", LastName: "Adler"},
	})
	s.Require().NoError(err)

	stored, err := s.repo.GetRecord(s.ctx, &recordRepo.GetRecordInput{RecordID: "player-1"})
	s.Require().NoError(err)

	// The old fortune and holdings are gone; only the starting kit remains
	s.Equal("Sadie", stored.Identity.FirstName)
	s.Equal(int64(500), stored.Bank)
	s.Zero(stored.Cash)
	s.Zero(stored.Dirty)
	s.NotContains(stored.Inventory.Weapons, "Sawed-Off Shotgun")
	s.Empty(stored.Inventory.Permits)
	s.Empty(stored.Properties)
	s.Empty(stored.Cooldowns)
	s.Equal(1, stored.Inventory.Weapons["Cattleman Revolver"])
}
