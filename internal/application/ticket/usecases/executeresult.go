package usecases

import (
	"context"
	"time"
	"unicode/utf8"

	"fixdesk/internal/domain/access"
	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/sanitize"
)

// BillingInput carries optional cost capture submitted with a result.
type BillingInput struct {
	Billed   bool
	Currency string
	Amount   float64
}

type ExecuteResultCommand struct {
	TicketID uint
	ResultID uint
	UserID   uint
	Comment  string
	Billing  *BillingInput
}

// ExecuteResultUseCase moves a ticket along one result edge. The result
// must depart from the ticket's current task and the caller must hold a
// role scoped to that task. The ticket row and the transition log entry
// commit together, guarded by an optimistic version check.
type ExecuteResultUseCase struct {
	resolver   access.Resolver
	catalog    workflow.Catalog
	ticketRepo ticket.Repository
	logRepo    ticket.LogRepository
	cache      DetailCache
	tx         TxManager
	logger     logger.Interface
}

func NewExecuteResultUseCase(
	resolver access.Resolver,
	catalog workflow.Catalog,
	ticketRepo ticket.Repository,
	logRepo ticket.LogRepository,
	cache DetailCache,
	tx TxManager,
	logger logger.Interface,
) *ExecuteResultUseCase {
	return &ExecuteResultUseCase{
		resolver:   resolver,
		catalog:    catalog,
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		cache:      cache,
		tx:         tx,
		logger:     logger,
	}
}

func (uc *ExecuteResultUseCase) Execute(ctx context.Context, cmd ExecuteResultCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.ResultID == 0 {
		return errors.NewValidationError("result ID is required")
	}
	if cmd.UserID == 0 {
		return errors.NewValidationError("user ID is required")
	}
	if utf8.RuneCountInString(cmd.Comment) > ticket.MaxCommentLen {
		return errors.NewValidationError("comment exceeds maximum length")
	}

	tkt, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}
	if tkt.IsVoided() {
		return errors.NewInvalidTransitionError("ticket is voided")
	}

	result, err := uc.catalog.ResultByID(ctx, cmd.ResultID)
	if err != nil {
		return err
	}
	if result.SourceTaskID != tkt.CurrentTaskID() {
		return errors.NewInvalidTransitionError(
			"result does not depart from the ticket's current task")
	}

	// A ticket never leaves its process. A result edge whose destination
	// sits in another process is a configuration error, not a move.
	sourceTask, err := uc.catalog.TaskByID(ctx, result.SourceTaskID)
	if err != nil {
		return err
	}
	destTask, err := uc.catalog.TaskByID(ctx, result.DestTaskID)
	if err != nil {
		return err
	}
	if destTask.ProcessID != sourceTask.ProcessID {
		return errors.NewInvalidTransitionError(
			"result destination belongs to a different process")
	}

	allowed, err := uc.resolver.CanActOnTask(ctx, cmd.UserID, result.SourceTaskID)
	if err != nil {
		return err
	}
	if !allowed {
		return errors.NewPermissionError("no role grants acting on the ticket's current task")
	}

	if cmd.Billing != nil {
		canBill, err := uc.resolver.CanAddCost(ctx, cmd.UserID, result.SourceTaskID)
		if err != nil {
			return err
		}
		if !canBill {
			return errors.NewPermissionError("no role grants cost capture on this task")
		}
		if err := tkt.SetBilling(cmd.Billing.Billed, cmd.Billing.Currency, cmd.Billing.Amount); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	loadedVersion := tkt.Version()
	fromTaskID := tkt.CurrentTaskID()
	if err := tkt.MoveTo(result.DestTaskID); err != nil {
		return errors.NewValidationError(err.Error())
	}

	now := time.Now()
	entry, err := ticket.NewTransitionEntry(
		tkt.ID(), fromTaskID, result.DestTaskID, result.ID,
		result.Name, sanitize.Text(cmd.Comment), cmd.UserID, now)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	txErr := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, tkt, loadedVersion); err != nil {
			return err
		}
		return uc.logRepo.Append(txCtx, entry)
	})
	if txErr != nil {
		return txErr
	}

	if err := uc.cache.InvalidateTicket(ctx, tkt.ID()); err != nil {
		uc.logger.Warnw("failed to invalidate ticket detail cache",
			"ticket_id", tkt.ID(), "error", err)
	}

	uc.logger.Infow("result executed",
		"ticket_id", tkt.ID(),
		"result_id", result.ID,
		"from_task_id", fromTaskID,
		"to_task_id", result.DestTaskID,
		"user_id", cmd.UserID)

	return nil
}
