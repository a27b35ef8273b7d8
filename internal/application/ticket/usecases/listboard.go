package usecases

import (
	"context"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
)

type ListBoardQuery struct {
	UserID uint
}

// ListBoardUseCase assembles the Kanban board: the columns the user can
// see, the visible tickets grouped under their current task and the
// per-column counts. Counts come from the same visibility query as the
// cards, so a column's count always matches its card list.
type ListBoardUseCase struct {
	reader BoardReader
	logger logger.Interface
}

func NewListBoardUseCase(reader BoardReader, logger logger.Interface) *ListBoardUseCase {
	return &ListBoardUseCase{reader: reader, logger: logger}
}

func (uc *ListBoardUseCase) Execute(ctx context.Context, query ListBoardQuery) (*dto.BoardView, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	columns, err := uc.reader.ColumnsFor(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	tickets, err := uc.reader.VisibleTickets(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint][]dto.BoardTicket)
	for _, t := range tickets {
		grouped[t.TaskID] = append(grouped[t.TaskID], t)
	}

	for i := range columns {
		columns[i].Count = int64(len(grouped[columns[i].TaskID]))
	}

	return &dto.BoardView{Columns: columns, Tickets: grouped}, nil
}
