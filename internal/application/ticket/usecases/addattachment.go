package usecases

import (
	"context"
	"io"
	"time"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
)

type AddAttachmentCommand struct {
	TicketID uint
	UserID   uint
	Name     string
	Reader   io.Reader
}

type AddAttachmentResult struct {
	EntryID  uint
	PathRef  string
	Size     int64
	MimeType string
}

// AddAttachmentUseCase stores an uploaded file and records it as a log
// event with an attachment row hanging off the entry. When the rows fail
// to commit the stored file is removed again.
type AddAttachmentUseCase struct {
	ticketRepo ticket.Repository
	logRepo    ticket.LogRepository
	attachRepo ticket.AttachmentRepository
	files      FileStore
	cache      DetailCache
	tx         TxManager
	logger     logger.Interface
}

func NewAddAttachmentUseCase(
	ticketRepo ticket.Repository,
	logRepo ticket.LogRepository,
	attachRepo ticket.AttachmentRepository,
	files FileStore,
	cache DetailCache,
	tx TxManager,
	logger logger.Interface,
) *AddAttachmentUseCase {
	return &AddAttachmentUseCase{
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		attachRepo: attachRepo,
		files:      files,
		cache:      cache,
		tx:         tx,
		logger:     logger,
	}
}

func (uc *AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if cmd.Name == "" {
		return nil, errors.NewValidationError("file name is required")
	}
	if cmd.Reader == nil {
		return nil, errors.NewValidationError("file content is required")
	}

	tkt, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	stored, err := uc.files.Store(tkt.ID(), cmd.Name, cmd.Reader)
	if err != nil {
		return nil, err
	}

	entry, err := ticket.NewEventEntry(tkt.ID(), tkt.CurrentTaskID(), cmd.UserID, "Attachment: "+cmd.Name, time.Now())
	if err != nil {
		uc.removeStored(stored.PathRef)
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.logRepo.Append(txCtx, entry); err != nil {
			return err
		}
		att, err := ticket.NewAttachment(cmd.Name, stored.PathRef, stored.Size, stored.MimeType, entry.ID())
		if err != nil {
			return err
		}
		return uc.attachRepo.Save(txCtx, att)
	})
	if txErr != nil {
		uc.removeStored(stored.PathRef)
		return nil, txErr
	}

	if err := uc.cache.InvalidateTicket(ctx, tkt.ID()); err != nil {
		uc.logger.Warnw("failed to invalidate ticket detail cache",
			"ticket_id", tkt.ID(), "error", err)
	}

	return &AddAttachmentResult{
		EntryID:  entry.ID(),
		PathRef:  stored.PathRef,
		Size:     stored.Size,
		MimeType: stored.MimeType,
	}, nil
}

func (uc *AddAttachmentUseCase) removeStored(pathRef string) {
	if err := uc.files.Delete(pathRef); err != nil {
		uc.logger.Warnw("failed to remove orphaned stored file", "path", pathRef, "error", err)
	}
}
