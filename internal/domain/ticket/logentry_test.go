package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreationEntry(t *testing.T) {
	now := time.Now()

	entry, err := NewCreationEntry(100, 10, 7, "AC unit leaking", now)

	require.NoError(t, err)
	assert.Equal(t, EntryCreation, entry.Kind())
	assert.Equal(t, "Ticket created", entry.Description())
	assert.Equal(t, uint(10), entry.TaskAtEntry())
	assert.Equal(t, uint(10), entry.TaskToPerform())
	assert.Equal(t, uint(0), entry.ResultID())
	assert.Equal(t, uint(7), entry.UserID())
	assert.Equal(t, uint(7), entry.ResponsibleID())
	assert.False(t, entry.Sent())
}

func TestNewTransitionEntry(t *testing.T) {
	now := time.Now()

	t.Run("snapshots source and destination tasks", func(t *testing.T) {
		entry, err := NewTransitionEntry(100, 10, 11, 5, "Atendido", "done", 7, now)

		require.NoError(t, err)
		assert.Equal(t, EntryTransition, entry.Kind())
		assert.Equal(t, "Atendido", entry.Description())
		assert.Equal(t, uint(10), entry.TaskAtEntry())
		assert.Equal(t, uint(11), entry.TaskToPerform())
		assert.Equal(t, uint(5), entry.ResultID())
		assert.Equal(t, "done", entry.Comment())
	})

	t.Run("requires a result and distinct tasks", func(t *testing.T) {
		_, err := NewTransitionEntry(100, 10, 11, 0, "Atendido", "", 7, now)
		assert.Error(t, err)

		_, err = NewTransitionEntry(100, 10, 10, 5, "Atendido", "", 7, now)
		assert.Error(t, err)
	})
}

func TestNewCommentEntry(t *testing.T) {
	now := time.Now()

	t.Run("stores the text as both description and comment", func(t *testing.T) {
		entry, err := NewCommentEntry(100, 10, 7, "vendor arrives tomorrow", now)

		require.NoError(t, err)
		assert.Equal(t, EntryComment, entry.Kind())
		assert.Equal(t, "vendor arrives tomorrow", entry.Description())
		assert.Equal(t, "vendor arrives tomorrow", entry.Comment())
		assert.Equal(t, uint(10), entry.TaskAtEntry())
		assert.Equal(t, uint(10), entry.TaskToPerform())
	})

	t.Run("enforces the length ceiling", func(t *testing.T) {
		_, err := NewCommentEntry(100, 10, 7, strings.Repeat("a", MaxCommentLen), now)
		assert.NoError(t, err)

		_, err = NewCommentEntry(100, 10, 7, strings.Repeat("a", MaxCommentLen+1), now)
		assert.Error(t, err)

		_, err = NewCommentEntry(100, 10, 7, "", now)
		assert.Error(t, err)
	})

	t.Run("counts characters, not bytes", func(t *testing.T) {
		// 2000 accented characters encode to 4000 bytes.
		_, err := NewCommentEntry(100, 10, 7, strings.Repeat("ñ", MaxCommentLen), now)
		assert.NoError(t, err)

		_, err = NewCommentEntry(100, 10, 7, strings.Repeat("ñ", MaxCommentLen+1), now)
		assert.Error(t, err)
	})
}

func TestNewEventEntry(t *testing.T) {
	now := time.Now()

	entry, err := NewEventEntry(100, 10, 7, "Attachment: invoice.pdf", now)

	require.NoError(t, err)
	assert.Equal(t, EntryEvent, entry.Kind())
	assert.Equal(t, "Attachment: invoice.pdf", entry.Description())
	assert.Empty(t, entry.Comment())
}

func TestLogEntryValidation(t *testing.T) {
	now := time.Now()

	_, err := NewEventEntry(0, 10, 7, "x", now)
	assert.Error(t, err)

	_, err = NewEventEntry(100, 0, 7, "x", now)
	assert.Error(t, err)

	_, err = NewEventEntry(100, 10, 0, "x", now)
	assert.Error(t, err)
}

func TestEntryKindValues(t *testing.T) {
	assert.Equal(t, 1, int(EntryEvent))
	assert.Equal(t, 2, int(EntryTransition))
	assert.Equal(t, 3, int(EntryCreation))
	assert.Equal(t, 4, int(EntryComment))
}
