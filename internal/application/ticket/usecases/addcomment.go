package usecases

import (
	"context"
	"time"
	"unicode/utf8"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/sanitize"
)

type AddCommentCommand struct {
	TicketID uint
	UserID   uint
	Text     string
}

type AddCommentResult struct {
	EntryID    uint
	OccurredAt time.Time
}

// AddCommentUseCase appends a free-text comment to a ticket's log.
// Comments never touch the ticket row itself.
type AddCommentUseCase struct {
	ticketRepo ticket.Repository
	logRepo    ticket.LogRepository
	cache      DetailCache
	logger     logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.Repository,
	logRepo ticket.LogRepository,
	cache DetailCache,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		cache:      cache,
		logger:     logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	text := sanitize.Text(cmd.Text)
	if len(text) == 0 {
		return nil, errors.NewValidationError("comment text is required")
	}
	if utf8.RuneCountInString(text) > ticket.MaxCommentLen {
		return nil, errors.NewValidationError("comment exceeds maximum length")
	}

	tkt, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	entry, err := ticket.NewCommentEntry(tkt.ID(), tkt.CurrentTaskID(), cmd.UserID, text, time.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if err := uc.cache.InvalidateTicket(ctx, tkt.ID()); err != nil {
		uc.logger.Warnw("failed to invalidate ticket detail cache",
			"ticket_id", tkt.ID(), "error", err)
	}

	return &AddCommentResult{EntryID: entry.ID(), OccurredAt: entry.OccurredAt()}, nil
}
