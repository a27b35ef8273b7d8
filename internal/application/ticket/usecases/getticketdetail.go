package usecases

import (
	"context"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/domain/access"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
)

// DefaultLogPageSize caps the detail view's audit trail when the
// configuration does not override it.
const DefaultLogPageSize = 20

type GetTicketDetailQuery struct {
	TicketID uint
	UserID   uint
}

// GetTicketDetailUseCase assembles the full detail snapshot: ticket
// projection, capped log, gated action buttons, attachments, dynamic
// values and the caller's permission block.
type GetTicketDetailUseCase struct {
	resolver    access.Resolver
	reader      DetailReader
	logPageSize int
	logger      logger.Interface
}

func NewGetTicketDetailUseCase(
	resolver access.Resolver,
	reader DetailReader,
	logPageSize int,
	logger logger.Interface,
) *GetTicketDetailUseCase {
	if logPageSize <= 0 {
		logPageSize = DefaultLogPageSize
	}
	return &GetTicketDetailUseCase{
		resolver:    resolver,
		reader:      reader,
		logPageSize: logPageSize,
		logger:      logger,
	}
}

func (uc *GetTicketDetailUseCase) Execute(ctx context.Context, query GetTicketDetailQuery) (*dto.TicketDetailView, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	view, err := uc.reader.TicketView(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	log, err := uc.reader.LogEntries(ctx, query.TicketID, uc.logPageSize)
	if err != nil {
		return nil, err
	}

	results, err := uc.availableResults(ctx, query.UserID, view.TaskID)
	if err != nil {
		return nil, err
	}

	attachments, err := uc.reader.Attachments(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	values, err := uc.reader.FieldValues(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	helpdesk, err := uc.resolver.IsHelpdesk(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	canAddCost, err := uc.resolver.CanAddCost(ctx, query.UserID, view.TaskID)
	if err != nil {
		return nil, err
	}

	return &dto.TicketDetailView{
		Ticket:           *view,
		Log:              log,
		AvailableResults: results,
		Attachments:      attachments,
		DynamicValues:    values,
		Permissions:      dto.DetailPermissions{IsHelpdesk: helpdesk, CanAddCost: canAddCost},
	}, nil
}

// availableResults annotates the current task's outgoing results with the
// cascading resolution-gate state. The reader delivers rows in
// destination-task order, which the gate's stateful scan depends on.
func (uc *GetTicketDetailUseCase) availableResults(ctx context.Context, userID, taskID uint) ([]dto.AvailableResult, error) {
	rows, err := uc.reader.ActionRows(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	gateRows := make([]workflow.ActionRow, 0, len(rows))
	for _, row := range rows {
		gateRows = append(gateRows, workflow.ActionRow{
			ResultID:   row.Result.ResultID,
			HasRole:    row.Result.HasRole,
			TaskKind:   row.TaskKind,
			CostExempt: row.CostExempt,
		})
	}
	disabled := workflow.DisabledActions(gateRows)

	results := make([]dto.AvailableResult, 0, len(rows))
	for _, row := range rows {
		r := row.Result
		r.Disabled = disabled[r.ResultID]
		results = append(results, r)
	}
	return results, nil
}
