package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/domain/ticket"
)

func TestLogEntryRepository_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogEntryRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	creation, err := ticket.NewCreationEntry(1, 10, 7, "se reporta fuga", base)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, creation))
	assert.NotZero(t, creation.ID())

	transition, err := ticket.NewTransitionEntry(1, 10, 11, 2, "Atender", "asignado a turno", 7, base.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, transition))

	comment, err := ticket.NewCommentEntry(1, 11, 8, "repuesto pedido", base.Add(2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, comment))

	other, err := ticket.NewCommentEntry(2, 10, 8, "otro ticket", base.Add(3*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, other))

	t.Run("lists newest first for one ticket", func(t *testing.T) {
		entries, err := repo.ListByTicket(ctx, 1, 0)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, ticket.EntryComment, entries[0].Kind())
		assert.Equal(t, ticket.EntryTransition, entries[1].Kind())
		assert.Equal(t, ticket.EntryCreation, entries[2].Kind())
	})

	t.Run("caps at the page limit", func(t *testing.T) {
		entries, err := repo.ListByTicket(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, ticket.EntryComment, entries[0].Kind())
	})

	t.Run("round trips the transition fields", func(t *testing.T) {
		entries, err := repo.ListByTicket(ctx, 1, 0)
		require.NoError(t, err)
		tr := entries[1]
		assert.Equal(t, uint(11), tr.TaskToPerform())
		assert.Equal(t, uint(10), tr.TaskAtEntry())
		assert.Equal(t, uint(2), tr.ResultID())
		assert.Equal(t, "asignado a turno", tr.Comment())
		assert.Equal(t, uint(7), tr.UserID())
	})
}
