package service

import (
	"context"
	"testing"

	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/repository"
	"github.com/projextpal/projextpal-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintService_DismissHidesUntilReset(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewHintService(repository.NewSQLiteHintRepo(database))
	ctx := context.Background()

	text, err := svc.Pending(ctx, domain.HintIdeaTip)
	require.NoError(t, err)
	assert.Equal(t, domain.Hints[domain.HintIdeaTip], text)

	require.NoError(t, svc.Dismiss(ctx, domain.HintIdeaTip))
	text, err = svc.Pending(ctx, domain.HintIdeaTip)
	require.NoError(t, err)
	assert.Empty(t, text)

	n, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	text, err = svc.Pending(ctx, domain.HintIdeaTip)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestHintService_UnknownKey(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewHintService(repository.NewSQLiteHintRepo(database))

	_, err := svc.Pending(context.Background(), "nope")
	assert.Error(t, err)
	assert.Error(t, svc.Dismiss(context.Background(), "nope"))
}
