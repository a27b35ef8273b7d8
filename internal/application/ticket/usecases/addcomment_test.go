package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/shared/errors"
)

func TestAddCommentUseCase_Execute(t *testing.T) {
	newFixture := func(t *testing.T) (*mockTicketRepository, *mockLogRepository, *mockDetailCache) {
		t.Helper()
		ticketRepo := &mockTicketRepository{
			findByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return openTicketAtTask(t, 10), nil
			},
		}
		return ticketRepo, &mockLogRepository{}, &mockDetailCache{}
	}

	t.Run("appends a comment entry at the current task", func(t *testing.T) {
		ticketRepo, logRepo, cache := newFixture(t)
		uc := NewAddCommentUseCase(ticketRepo, logRepo, cache, noopLogger{})

		result, err := uc.Execute(context.Background(), AddCommentCommand{
			TicketID: 100, UserID: 7, Text: "vendor arrives tomorrow",
		})

		require.NoError(t, err)
		assert.NotZero(t, result.EntryID)

		require.Len(t, logRepo.appended, 1)
		entry := logRepo.appended[0]
		assert.Equal(t, ticket.EntryComment, entry.Kind())
		assert.Equal(t, "vendor arrives tomorrow", entry.Comment())
		assert.Equal(t, uint(10), entry.TaskAtEntry())
		assert.Equal(t, uint(10), entry.TaskToPerform())
		assert.Equal(t, uint(0), entry.ResultID())

		assert.Equal(t, []uint{100}, cache.invalidated)
	})

	t.Run("strips markup from the comment", func(t *testing.T) {
		ticketRepo, logRepo, cache := newFixture(t)
		uc := NewAddCommentUseCase(ticketRepo, logRepo, cache, noopLogger{})

		_, err := uc.Execute(context.Background(), AddCommentCommand{
			TicketID: 100, UserID: 7, Text: "<script>alert(1)</script>done",
		})

		require.NoError(t, err)
		require.Len(t, logRepo.appended, 1)
		assert.Equal(t, "done", logRepo.appended[0].Comment())
	})

	t.Run("rejects empty comments", func(t *testing.T) {
		ticketRepo, logRepo, cache := newFixture(t)
		uc := NewAddCommentUseCase(ticketRepo, logRepo, cache, noopLogger{})

		_, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 100, UserID: 7, Text: "   "})

		assert.True(t, errors.IsValidationError(err))
		assert.Empty(t, logRepo.appended)
	})

	t.Run("rejects comments over the ceiling", func(t *testing.T) {
		ticketRepo, logRepo, cache := newFixture(t)
		uc := NewAddCommentUseCase(ticketRepo, logRepo, cache, noopLogger{})

		_, err := uc.Execute(context.Background(), AddCommentCommand{
			TicketID: 100, UserID: 7, Text: strings.Repeat("a", ticket.MaxCommentLen+1),
		})

		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("measures the ceiling in characters, not bytes", func(t *testing.T) {
		ticketRepo, logRepo, cache := newFixture(t)
		uc := NewAddCommentUseCase(ticketRepo, logRepo, cache, noopLogger{})

		// 2000 accented characters take 4000 bytes and must pass.
		_, err := uc.Execute(context.Background(), AddCommentCommand{
			TicketID: 100, UserID: 7, Text: strings.Repeat("ó", ticket.MaxCommentLen),
		})
		require.NoError(t, err)
		assert.Len(t, logRepo.appended, 1)

		_, err = uc.Execute(context.Background(), AddCommentCommand{
			TicketID: 100, UserID: 7, Text: strings.Repeat("ó", ticket.MaxCommentLen+1),
		})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("repeated identical comments each become a new entry", func(t *testing.T) {
		ticketRepo, logRepo, cache := newFixture(t)
		uc := NewAddCommentUseCase(ticketRepo, logRepo, cache, noopLogger{})

		cmd := AddCommentCommand{TicketID: 100, UserID: 7, Text: "se reviso el equipo"}
		first, err := uc.Execute(context.Background(), cmd)
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), cmd)
		require.NoError(t, err)

		require.Len(t, logRepo.appended, 2)
		assert.NotEqual(t, first.EntryID, second.EntryID)
		assert.Equal(t, "se reviso el equipo", logRepo.appended[0].Comment())
		assert.Equal(t, "se reviso el equipo", logRepo.appended[1].Comment())
	})

	t.Run("fails for unknown tickets", func(t *testing.T) {
		ticketRepo, logRepo, cache := newFixture(t)
		ticketRepo.findByIDFunc = func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc := NewAddCommentUseCase(ticketRepo, logRepo, cache, noopLogger{})

		_, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 999, UserID: 7, Text: "hi"})

		assert.True(t, errors.IsNotFoundError(err))
	})
}
