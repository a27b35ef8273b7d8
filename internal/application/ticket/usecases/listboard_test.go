package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/shared/errors"
)

func TestListBoardUseCase_Execute(t *testing.T) {
	t.Run("groups visible tickets under their columns with matching counts", func(t *testing.T) {
		reader := &mockBoardReader{
			columnsForFunc: func(ctx context.Context, userID uint) ([]dto.BoardColumn, error) {
				return []dto.BoardColumn{
					{ProcessID: 2, TaskID: 10, TaskName: "Registro", DisplayOrder: 1},
					{ProcessID: 2, TaskID: 11, TaskName: "Atencion", DisplayOrder: 2},
				}, nil
			},
			visibleTicketsFunc: func(ctx context.Context, userID uint) ([]dto.BoardTicket, error) {
				return []dto.BoardTicket{
					{ID: 100, TaskID: 10},
					{ID: 101, TaskID: 10},
					{ID: 102, TaskID: 11},
				}, nil
			},
		}
		uc := NewListBoardUseCase(reader, noopLogger{})

		view, err := uc.Execute(context.Background(), ListBoardQuery{UserID: 7})

		require.NoError(t, err)
		require.Len(t, view.Columns, 2)
		assert.Equal(t, int64(2), view.Columns[0].Count)
		assert.Equal(t, int64(1), view.Columns[1].Count)
		assert.Len(t, view.Tickets[10], 2)
		assert.Len(t, view.Tickets[11], 1)

		for _, col := range view.Columns {
			assert.Equal(t, int64(len(view.Tickets[col.TaskID])), col.Count)
		}
	})

	t.Run("requires a user", func(t *testing.T) {
		uc := NewListBoardUseCase(&mockBoardReader{}, noopLogger{})

		_, err := uc.Execute(context.Background(), ListBoardQuery{})

		assert.True(t, errors.IsValidationError(err))
	})
}
