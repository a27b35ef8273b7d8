package usecases

import (
	"context"
	"io"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
)

type DownloadAttachmentQuery struct {
	TicketID     uint
	AttachmentID uint
	UserID       uint
}

// AttachmentDownload carries the stored file back to the caller. Content
// must be closed by the consumer.
type AttachmentDownload struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.ReadCloser
}

// DownloadAttachmentUseCase streams a stored attachment. The lookup is
// scoped to the ticket so an attachment id cannot be read through a
// foreign ticket URL.
type DownloadAttachmentUseCase struct {
	attachRepo ticket.AttachmentRepository
	files      FileStore
	logger     logger.Interface
}

func NewDownloadAttachmentUseCase(
	attachRepo ticket.AttachmentRepository,
	files FileStore,
	logger logger.Interface,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		attachRepo: attachRepo,
		files:      files,
		logger:     logger,
	}
}

func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, query DownloadAttachmentQuery) (*AttachmentDownload, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if query.AttachmentID == 0 {
		return nil, errors.NewValidationError("attachment ID is required")
	}

	att, err := uc.attachRepo.FindByTicket(ctx, query.TicketID, query.AttachmentID)
	if err != nil {
		return nil, err
	}

	content, err := uc.files.Open(att.PathRef())
	if err != nil {
		uc.logger.Errorw("failed to open stored attachment",
			"ticket_id", query.TicketID,
			"attachment_id", query.AttachmentID,
			"path", att.PathRef(),
			"error", err)
		return nil, errors.NewInternalError("attachment content unavailable")
	}

	return &AttachmentDownload{
		Name:     att.Name(),
		MimeType: att.MimeType(),
		Size:     att.Size(),
		Content:  content,
	}, nil
}
