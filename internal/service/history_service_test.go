package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/projextpal/projextpal-cli/internal/repository"
	"github.com/projextpal/projextpal-cli/internal/testutil"
	"github.com/projextpal/projextpal-cli/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func created(id string) *wizard.Created {
	return &wizard.Created{
		ID:       id,
		Path:     "/projects/" + id,
		Entity:   "project",
		Resource: "projects",
		Name:     "Portal " + id,
		Category: "agile",
	}
}

func TestHistoryService_RecordAndRecent(t *testing.T) {
	database, uow := testutil.NewTestStore(t)
	svc := NewHistoryService(repository.NewSQLiteHistoryRepo(database), uow)
	ctx := context.Background()

	rec := &wizard.Recommendation{Category: "agile", Confidence: 88}
	got, err := svc.Record(ctx, created("7"), rec, wizard.SourceStructured)
	require.NoError(t, err)
	assert.Equal(t, "structured", got.Source)
	require.NotNil(t, got.Confidence)
	assert.Equal(t, 88, *got.Confidence)

	_, err = svc.Record(ctx, created("8"), nil, "")
	require.NoError(t, err)

	recent, err := svc.Recent(ctx, "project", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Nil(t, recent[0].Confidence, "manual choice has no confidence")
}

func TestHistoryService_RecordPrunes(t *testing.T) {
	database, uow := testutil.NewTestStore(t)
	svc := NewHistoryService(repository.NewSQLiteHistoryRepo(database), uow)
	impl := svc.(*historyService)
	impl.keep = 2
	tick := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	impl.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	for _, id := range []string{"1", "2", "3"} {
		_, err := svc.Record(context.Background(), created(id), nil, "")
		require.NoError(t, err)
	}

	recent, err := svc.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "3", recent[0].RemoteID)
	assert.Equal(t, "2", recent[1].RemoteID)
}

func TestHistoryService_RecordRollsBackWhenPruneFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	uow := &testutil.FailingUoW{DB: database, Match: "DELETE", Nth: 1, Err: boom}
	svc := NewHistoryService(repository.NewSQLiteHistoryRepo(database), uow)

	_, err := svc.Record(context.Background(), created("7"), nil, "")
	assert.ErrorIs(t, err, boom)

	recent, err := svc.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, recent, "insert is rolled back with the failed prune")
}

func TestHistoryService_ObservesFailures(t *testing.T) {
	database := testutil.NewTestDB(t)
	core, logs := observer.New(zap.DebugLevel)
	boom := errors.New("locked")
	uow := &testutil.FailingUoW{DB: database, Nth: 1, Err: boom}
	svc := NewHistoryService(repository.NewSQLiteHistoryRepo(database), uow, NewLogUseCaseObserver(zap.New(core)))

	_, err := svc.Record(context.Background(), created("7"), nil, "")
	require.Error(t, err)

	entries := logs.FilterMessage("service_use_case").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, "history.record", entries[0].ContextMap()["use_case"])
	assert.Equal(t, false, entries[0].ContextMap()["success"])
}

func TestHistoryService_Clear(t *testing.T) {
	database, uow := testutil.NewTestStore(t)
	svc := NewHistoryService(repository.NewSQLiteHistoryRepo(database), uow)

	_, err := svc.Record(context.Background(), created("7"), nil, "")
	require.NoError(t, err)

	n, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
