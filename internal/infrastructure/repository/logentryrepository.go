package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/infrastructure/persistence/mappers"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/db"
)

type LogEntryRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewLogEntryRepository(db *gorm.DB) *LogEntryRepository {
	return &LogEntryRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *LogEntryRepository) Append(ctx context.Context, entry *ticket.LogEntry) error {
	model := r.mapper.LogEntryToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}

	if entry.ID() == 0 {
		if err := entry.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *LogEntryRepository) ListByTicket(ctx context.Context, ticketID uint, limit int) ([]*ticket.LogEntry, error) {
	var rows []models.LogEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Where("ticket_id = ?", ticketID).
		Order("occurred_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}

	entries := make([]*ticket.LogEntry, 0, len(rows))
	for i := range rows {
		entry, err := r.mapper.LogEntryToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
