package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/infrastructure/persistence/mappers"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/db"
	"fixdesk/internal/shared/errors"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *AttachmentRepository) Save(ctx context.Context, att *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(att)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	if att.ID() == 0 {
		if err := att.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

// FindByTicket scopes the lookup through the owning log entry so an
// attachment id from another ticket reads as absent.
func (r *AttachmentRepository) FindByTicket(ctx context.Context, ticketID, attachmentID uint) (*ticket.Attachment, error) {
	var row models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Joins("JOIN ticket_log ON ticket_log.id = ticket_files.log_entry_id").
		Where("ticket_files.id = ? AND ticket_log.ticket_id = ?", attachmentID, ticketID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("attachment not found")
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.AttachmentToDomain(&row)
}

// ListByTicket reaches attachments through their owning log entries,
// newest entry first.
func (r *AttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var rows []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Joins("JOIN ticket_log ON ticket_log.id = ticket_files.log_entry_id").
		Where("ticket_log.ticket_id = ?", ticketID).
		Order("ticket_log.occurred_at DESC, ticket_files.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, 0, len(rows))
	for i := range rows {
		att, err := r.mapper.AttachmentToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}

	return attachments, nil
}
