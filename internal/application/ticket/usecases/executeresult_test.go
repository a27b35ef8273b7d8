package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/errors"
)

func openTicketAtTask(t *testing.T, taskID uint) *ticket.Ticket {
	t.Helper()
	now := time.Now()
	tk, err := ticket.ReconstructTicket(
		100, "AC unit leaking", now, now.Add(24*time.Hour), nil,
		0, ticket.StateOpen, taskID, 30, 1, 7,
		ticket.Billing{Billed: false, Currency: "LPS", Amount: 0},
		ticket.Location{TowerID: 1, FloorID: 3},
		2,
	)
	require.NoError(t, err)
	return tk
}

func newExecuteFixture(t *testing.T) (*mockResolver, *mockCatalog, *mockTicketRepository, *mockLogRepository, *mockDetailCache, *mockTxManager) {
	t.Helper()
	resolver := &mockResolver{
		canActOnTaskFunc: func(ctx context.Context, userID, taskID uint) (bool, error) {
			return true, nil
		},
		canAddCostFunc: func(ctx context.Context, userID, taskID uint) (bool, error) {
			return true, nil
		},
	}
	catalog := &mockCatalog{
		resultByIDFunc: func(ctx context.Context, resultID uint) (*workflow.Result, error) {
			return &workflow.Result{ID: resultID, Name: "Atendido", SourceTaskID: 10, DestTaskID: 11}, nil
		},
		taskByIDFunc: func(ctx context.Context, taskID uint) (*workflow.Task, error) {
			return &workflow.Task{ID: taskID, Name: "Atencion", ProcessID: 1, Kind: workflow.TaskKindNormal}, nil
		},
	}
	ticketRepo := &mockTicketRepository{
		findByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return openTicketAtTask(t, 10), nil
		},
	}
	return resolver, catalog, ticketRepo, &mockLogRepository{}, &mockDetailCache{}, &mockTxManager{}
}

func TestExecuteResultUseCase_Execute(t *testing.T) {
	t.Run("moves the ticket and appends a transition entry", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		var updated *ticket.Ticket
		var checkedVersion int
		ticketRepo.updateFunc = func(ctx context.Context, tk *ticket.Ticket, loadedVersion int) error {
			updated = tk
			checkedVersion = loadedVersion
			return nil
		}

		err := uc.Execute(context.Background(), ExecuteResultCommand{
			TicketID: 100, ResultID: 5, UserID: 7, Comment: "replaced the filter",
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, uint(11), updated.CurrentTaskID())
		assert.Equal(t, 2, checkedVersion)
		assert.Equal(t, 3, updated.Version())

		require.Len(t, logRepo.appended, 1)
		entry := logRepo.appended[0]
		assert.Equal(t, ticket.EntryTransition, entry.Kind())
		assert.Equal(t, "Atendido", entry.Description())
		assert.Equal(t, uint(10), entry.TaskAtEntry())
		assert.Equal(t, uint(11), entry.TaskToPerform())
		assert.Equal(t, uint(5), entry.ResultID())
		assert.Equal(t, "replaced the filter", entry.Comment())

		assert.Equal(t, []uint{100}, cache.invalidated)
	})

	t.Run("rejects results departing from a different task", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		catalog.resultByIDFunc = func(ctx context.Context, resultID uint) (*workflow.Result, error) {
			return &workflow.Result{ID: resultID, Name: "Cerrado", SourceTaskID: 12, DestTaskID: 13}, nil
		}
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		err := uc.Execute(context.Background(), ExecuteResultCommand{TicketID: 100, ResultID: 5, UserID: 7})

		assert.True(t, errors.IsInvalidTransitionError(err))
		assert.Empty(t, logRepo.appended)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("rejects results crossing into another process", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		catalog.resultByIDFunc = func(ctx context.Context, resultID uint) (*workflow.Result, error) {
			return &workflow.Result{ID: resultID, Name: "Derivado", SourceTaskID: 10, DestTaskID: 99}, nil
		}
		catalog.taskByIDFunc = func(ctx context.Context, taskID uint) (*workflow.Task, error) {
			if taskID == 99 {
				return &workflow.Task{ID: 99, Name: "Recepcion", ProcessID: 2, Kind: workflow.TaskKindNormal}, nil
			}
			return &workflow.Task{ID: taskID, Name: "Atencion", ProcessID: 1, Kind: workflow.TaskKindNormal}, nil
		}
		var updates int
		ticketRepo.updateFunc = func(ctx context.Context, tk *ticket.Ticket, loadedVersion int) error {
			updates++
			return nil
		}
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		err := uc.Execute(context.Background(), ExecuteResultCommand{TicketID: 100, ResultID: 5, UserID: 7})

		assert.True(t, errors.IsInvalidTransitionError(err))
		assert.Zero(t, updates)
		assert.Empty(t, logRepo.appended)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("rejects callers with no role on the source task", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		resolver.canActOnTaskFunc = func(ctx context.Context, userID, taskID uint) (bool, error) {
			return false, nil
		}
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		err := uc.Execute(context.Background(), ExecuteResultCommand{TicketID: 100, ResultID: 5, UserID: 7})

		assert.True(t, errors.IsPermissionError(err))
		assert.Empty(t, logRepo.appended)
	})

	t.Run("rejects voided tickets", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		ticketRepo.findByIDFunc = func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			now := time.Now()
			return ticket.ReconstructTicket(
				100, "voided", now, now.Add(24*time.Hour), nil,
				0, ticket.StateVoided, 10, 30, 1, 7,
				ticket.Billing{Currency: "LPS"}, ticket.Location{}, 1)
		}
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		err := uc.Execute(context.Background(), ExecuteResultCommand{TicketID: 100, ResultID: 5, UserID: 7})

		assert.True(t, errors.IsInvalidTransitionError(err))
	})

	t.Run("records billing when cost capture is granted", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		var updated *ticket.Ticket
		ticketRepo.updateFunc = func(ctx context.Context, tk *ticket.Ticket, loadedVersion int) error {
			updated = tk
			return nil
		}

		err := uc.Execute(context.Background(), ExecuteResultCommand{
			TicketID: 100, ResultID: 5, UserID: 7,
			Billing: &BillingInput{Billed: true, Currency: "USD", Amount: 125.50},
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.Billing().Billed)
		assert.Equal(t, "USD", updated.Billing().Currency)
		assert.Equal(t, 125.50, updated.Billing().Amount)
	})

	t.Run("defaults the billing currency when omitted", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		var updated *ticket.Ticket
		ticketRepo.updateFunc = func(ctx context.Context, tk *ticket.Ticket, loadedVersion int) error {
			updated = tk
			return nil
		}

		err := uc.Execute(context.Background(), ExecuteResultCommand{
			TicketID: 100, ResultID: 5, UserID: 7,
			Billing: &BillingInput{Billed: true, Amount: 80},
		})

		require.NoError(t, err)
		assert.Equal(t, "LPS", updated.Billing().Currency)
	})

	t.Run("rejects negative billing amounts", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		err := uc.Execute(context.Background(), ExecuteResultCommand{
			TicketID: 100, ResultID: 5, UserID: 7,
			Billing: &BillingInput{Billed: true, Amount: -1},
		})

		assert.True(t, errors.IsValidationError(err))
		assert.Empty(t, logRepo.appended)
	})

	t.Run("rejects billing without the add-cost capability", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		resolver.canAddCostFunc = func(ctx context.Context, userID, taskID uint) (bool, error) {
			return false, nil
		}
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		err := uc.Execute(context.Background(), ExecuteResultCommand{
			TicketID: 100, ResultID: 5, UserID: 7,
			Billing: &BillingInput{Billed: true, Amount: 10},
		})

		assert.True(t, errors.IsPermissionError(err))
	})

	t.Run("surfaces version conflicts from the repository", func(t *testing.T) {
		resolver, catalog, ticketRepo, logRepo, cache, tx := newExecuteFixture(t)
		ticketRepo.updateFunc = func(ctx context.Context, tk *ticket.Ticket, loadedVersion int) error {
			return errors.NewConflictError("ticket was modified concurrently")
		}
		uc := NewExecuteResultUseCase(resolver, catalog, ticketRepo, logRepo, cache, tx, noopLogger{})

		err := uc.Execute(context.Background(), ExecuteResultCommand{TicketID: 100, ResultID: 5, UserID: 7})

		assert.True(t, errors.IsConflictError(err))
		assert.Empty(t, cache.invalidated)
	})
}
