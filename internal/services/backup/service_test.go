package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/redbayou/outpost/internal/common/clock/mocks"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
	repoMocks "github.com/redbayou/outpost/internal/repositories/record/mocks"
)

func newArchiveService(t *testing.T, records ...*models.Record) Service {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := repoMocks.NewMockRepository(ctrl)
	mockRepo.EXPECT().
		ListRecords(gomock.Any(), gomock.Any()).
		Return(&recordRepo.ListRecordsOutput{Records: records}, nil)

	mockClock := clockMocks.NewMockClock(ctrl)
	mockClock.EXPECT().
		Now().
		Return(time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)).
		AnyTimes()

	svc, err := New(&Config{
		RecordRepo: mockRepo,
		Clock:      mockClock,
	})
	require.NoError(t, err)
	return svc
}

func TestBuildArchive(t *testing.T) {
	alice := models.New("alice")
	alice.Cash = 120
	alice.Identity.FirstName = "Abigail"
	bob := models.New("bob")
	bob.Bank = 900

	svc := newArchiveService(t, alice, bob)

	out, err := svc.BuildArchive(context.Background(), &BuildArchiveInput{})
	require.NoError(t, err)

	assert.Equal(t, "ledger-backup-2026-03-14-103000.zip", out.Filename)
	assert.Equal(t, 2, out.RecordCount)

	zr, err := zip.NewReader(bytes.NewReader(out.Data), int64(len(out.Data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "records/alice.json", zr.File[0].Name)
	assert.Equal(t, "records/bob.json", zr.File[1].Name)

	// Each entry is the record's JSON document
	f, err := zr.File[0].Open()
	require.NoError(t, err)
	doc, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var restored models.Record
	require.NoError(t, json.Unmarshal(doc, &restored))
	assert.Equal(t, "alice", restored.ID)
	assert.Equal(t, int64(120), restored.Cash)
	assert.Equal(t, "Abigail", restored.Identity.FirstName)
}

func TestBuildArchiveEmpty(t *testing.T) {
	svc := newArchiveService(t)

	out, err := svc.BuildArchive(context.Background(), &BuildArchiveInput{})
	require.NoError(t, err)

	assert.Zero(t, out.RecordCount)

	// An empty archive is still a readable zip
	zr, err := zip.NewReader(bytes.NewReader(out.Data), int64(len(out.Data)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}
