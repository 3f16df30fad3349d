package repository

import (
	"context"
	"testing"
	"time"

	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var historyBase = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func insertRecord(t *testing.T, repo *SQLiteHistoryRepo, entity, name string, offset time.Duration) *domain.CreationRecord {
	t.Helper()
	rec := domain.NewCreationRecord(entity, name+"-id", name, "agile", "/x/"+name, historyBase.Add(offset))
	require.NoError(t, repo.Insert(context.Background(), rec))
	return rec
}

func TestHistoryRepo_InsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(db)

	confidence := 88
	rec := domain.NewCreationRecord("project", "7", "Portal", "agile", "/projects/7", historyBase)
	rec.Source = "structured"
	rec.Confidence = &confidence
	require.NoError(t, repo.Insert(context.Background(), rec))

	got, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "project", got.Entity)
	assert.Equal(t, "7", got.RemoteID)
	assert.Equal(t, "/projects/7", got.Path)
	assert.Equal(t, "structured", got.Source)
	require.NotNil(t, got.Confidence)
	assert.Equal(t, 88, *got.Confidence)
	assert.True(t, got.CreatedAt.Equal(historyBase))
}

func TestHistoryRepo_PersistsAcrossReopen(t *testing.T) {
	path := testutil.StatePath(t)
	rec := domain.NewCreationRecord("program", "prg-7", "Transformation", "msp", "/programs/prg-7", historyBase)
	require.NoError(t, NewSQLiteHistoryRepo(testutil.OpenTestDB(t, path)).Insert(context.Background(), rec))

	got, err := NewSQLiteHistoryRepo(testutil.OpenTestDB(t, path)).GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "prg-7", got.RemoteID)
	assert.Equal(t, "msp", got.Category)
}

func TestHistoryRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryRepo_ListRecent_NewestFirstAndFiltered(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	insertRecord(t, repo, "project", "old", 0)
	insertRecord(t, repo, "program", "mid", 500*time.Millisecond)
	insertRecord(t, repo, "project", "new", time.Second)

	all, err := repo.ListRecent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].Name, all[1].Name, all[2].Name})

	projects, err := repo.ListRecent(ctx, "project", 1)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "new", projects[0].Name)
}

func TestHistoryRepo_PruneKeepsNewest(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	for i, name := range []string{"a", "b", "c", "d"} {
		insertRecord(t, repo, "project", name, time.Duration(i)*time.Minute)
	}

	removed, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := repo.ListRecent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "d", left[0].Name)
	assert.Equal(t, "c", left[1].Name)
}

func TestHistoryRepo_Clear(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(db)

	insertRecord(t, repo, "time entry", "standup", 0)
	n, err := repo.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
